package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formlab/handler"
	"github.com/dmitrymomot/formlab/pkg/binder"
	"github.com/dmitrymomot/formlab/pkg/requestid"
	"github.com/dmitrymomot/formlab/pkg/validator"
)

func errorPage(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "page %d: %s [%s]", p.StatusCode, p.Error, p.RequestID)
		return err
	})
}

func errorToast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="toast %s">%s</div>`, p.Type, p.Message)
		return err
	})
}

func newErrorHandler(buf *bytes.Buffer) handler.ErrorHandler[handler.Context] {
	log := slog.New(slog.NewTextHandler(buf, nil))
	return handler.NewErrorHandler(log, handler.ErrorHandlerConfig{ErrorPage: errorPage, ErrorToast: errorToast})
}

func TestNewErrorHandler_Page(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"generic", errors.New("boom"), http.StatusInternalServerError, "An error occurred processing your request"},
		{"http error", handler.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"bad form", fmt.Errorf("%w: bad escape", binder.ErrInvalidForm), http.StatusBadRequest, "Bad Request"},
		{"media type", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "Unsupported Media Type"},
		{"field errors", validator.FieldErrors{"email": "Invalid email address"}, http.StatusUnprocessableEntity, "email: Invalid email address"},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var logs bytes.Buffer
			req := httptest.NewRequest(http.MethodGet, "/basic", nil)
			req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
			rec := httptest.NewRecorder()

			newErrorHandler(&logs)(handler.NewContext(rec, req), tt.err)

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.Contains(t, rec.Body.String(), "[req-1]")
			assert.Contains(t, logs.String(), "request error")
		})
	}
}

func TestNewErrorHandler_LogLevels(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	h := newErrorHandler(&logs)

	h(handler.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrNotFound)
	assert.Contains(t, logs.String(), "level=WARN")

	logs.Reset()
	h(handler.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)), errors.New("boom"))
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestNewErrorHandler_JSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/basic", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newErrorHandler(&bytes.Buffer{})(handler.NewContext(rec, req), handler.ErrBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"bad_request","message":"Bad Request"}}`, rec.Body.String())
}

func TestNewErrorHandler_DataStar(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newErrorHandler(&bytes.Buffer{})(handler.NewContext(rec, datastarRequest(http.MethodPost, "/basic", "")), errors.New("boom"))

	out := rec.Body.String()
	assert.Contains(t, out, "datastar-patch-elements")
	assert.Contains(t, out, "#toast-container")
	assert.Contains(t, out, `<div class="toast error">`)
}

func TestNewErrorHandler_WithoutComponents(t *testing.T) {
	t.Parallel()

	h := handler.NewErrorHandler(slog.New(slog.DiscardHandler), handler.ErrorHandlerConfig{})

	rec := httptest.NewRecorder()
	h(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not Found")

	rec = httptest.NewRecorder()
	h(handler.NewContext(rec, datastarRequest(http.MethodPost, "/", "")), errors.New("boom"))
	assert.Contains(t, rec.Body.String(), `"submitting":false`)
}

func TestNewErrorHandler_Canceled(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	rec := httptest.NewRecorder()
	newErrorHandler(&logs)(handler.NewContext(rec, httptest.NewRequest(http.MethodPost, "/", nil)),
		fmt.Errorf("create user: %w", context.Canceled))

	require.Empty(t, rec.Body.String())
	assert.Contains(t, logs.String(), "request canceled by client")
}
