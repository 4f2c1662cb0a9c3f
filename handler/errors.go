package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)

// HTTPError is a transport-level failure with a status code and a stable
// machine-readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string { return e.Key }

// NewHTTPError builds an HTTPError.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest           = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrNotFound             = NewHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed     = NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrUnsupportedMediaType = NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUnprocessableEntity  = NewHTTPError(http.StatusUnprocessableEntity, "validation_error")
	ErrTooManyRequests      = NewHTTPError(http.StatusTooManyRequests, "too_many_requests")
	ErrInternalServerError  = NewHTTPError(http.StatusInternalServerError, "internal_error")
	ErrServiceUnavailable   = NewHTTPError(http.StatusServiceUnavailable, "service_unavailable")
)

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error { return e.err }

// Error returns a response that hands err to the error handler.
func Error(err error) Response {
	return errorResponse{err: err}
}
