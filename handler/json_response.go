package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/formlab/pkg/validator"
)

// JSONResponse is the envelope of every JSON body.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request. Details maps field names to
// their messages.
type ErrorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// JSON wraps v in the envelope. An error value becomes an error body with
// the status derived from it.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK}

	switch val := v.(type) {
	case JSONResponse:
		r.body = val
	case error:
		detail, status := errorToDetail(val)
		r.body, r.status = JSONResponse{Error: detail}, status
	default:
		r.body = JSONResponse{Data: v}
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders err in the error envelope.
func JSONError(err error, opts ...JSONOption) Response {
	return JSON(err, opts...)
}

// RawJSON writes v as is, without the envelope.
func RawJSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func errorToDetail(err error) (*ErrorDetail, int) {
	if fe, ok := validator.ExtractFieldErrors(err); ok {
		detail := &ErrorDetail{
			Code:    ErrUnprocessableEntity.Key,
			Message: "Validation failed",
			Details: make(map[string][]string, len(fe)),
		}
		for field, msg := range fe {
			detail.Details[field] = []string{msg}
		}
		return detail, http.StatusUnprocessableEntity
	}

	info := classifyError(err)
	return &ErrorDetail{Code: info.Key, Message: info.Message}, info.StatusCode
}
