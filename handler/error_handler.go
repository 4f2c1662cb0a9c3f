package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/formlab/pkg/binder"
	"github.com/dmitrymomot/formlab/pkg/logger"
	"github.com/dmitrymomot/formlab/pkg/requestid"
	"github.com/dmitrymomot/formlab/pkg/validator"
)

// ErrorPageParams feeds the full-page error component.
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams feeds the toast patched into datastar pages.
type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

type ErrorHandlerConfig struct {
	ErrorPage  func(ErrorPageParams) templ.Component
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toast-container".
	ToastTarget string
	// ToastMode defaults to PatchPrepend.
	ToastMode datastar.ElementPatchMode
}

// ErrorInfo is the classification of an error for rendering and logging.
type ErrorInfo struct {
	StatusCode int
	Key        string
	Message    string
	Type       string
	LogLevel   slog.Level
}

const genericErrorMessage = "An error occurred processing your request"

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Key:        ErrInternalServerError.Key,
		Message:    genericErrorMessage,
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode, info.Key, info.Message = httpErr.Code, httpErr.Key, http.StatusText(httpErr.Code)

	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode, info.Key, info.Message = ErrUnsupportedMediaType.Code, ErrUnsupportedMediaType.Key, http.StatusText(ErrUnsupportedMediaType.Code)

	case errors.Is(err, binder.ErrInvalidForm), errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidPath), errors.Is(err, binder.ErrInvalidQuery):
		info.StatusCode, info.Key, info.Message = ErrBadRequest.Code, ErrBadRequest.Key, http.StatusText(ErrBadRequest.Code)

	case errors.Is(err, context.DeadlineExceeded):
		info.StatusCode, info.Key, info.Message = ErrServiceUnavailable.Code, ErrServiceUnavailable.Key, http.StatusText(ErrServiceUnavailable.Code)
	}

	if fe, ok := validator.ExtractFieldErrors(err); ok {
		info.StatusCode, info.Key = ErrUnprocessableEntity.Code, ErrUnprocessableEntity.Key
		info.Message = fe.Error()
	}

	if info.StatusCode < http.StatusInternalServerError {
		info.Type, info.LogLevel = "warning", slog.LevelWarn
	} else {
		info.Type, info.LogLevel = "error", slog.LevelError
	}
	return info
}

// WantsJSON reports whether the client asked for or sent JSON.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

// NewErrorHandler logs err and answers with a toast patch for datastar
// requests, a JSON error body for JSON clients and an error page otherwise.
// A cancelled request context is logged and nothing is written.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toast-container"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())

		if errors.Is(err, context.Canceled) {
			log.InfoContext(r.Context(), "request canceled by client",
				slog.String("path", r.URL.Path),
				logger.Component("error_handler"),
			)
			return
		}

		info := classifyError(err)
		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Bool("is_datastar", IsDataStar(r)),
			logger.Component("error_handler"),
		)

		var renderErr error
		switch {
		case IsDataStar(r):
			renderErr = renderToast(ctx, cfg, info, reqID)
		case WantsJSON(r):
			renderErr = JSON(JSONResponse{Error: &ErrorDetail{Code: info.Key, Message: info.Message}},
				WithJSONStatus(info.StatusCode)).Render(ctx.ResponseWriter(), r)
		default:
			renderErr = renderPage(ctx, cfg, info, reqID)
		}

		if renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}

func renderToast(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, reqID string) error {
	sse := ctx.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	if cfg.ErrorToast == nil {
		return sse.PatchSignals([]byte(`{"submitting":false}`))
	}
	component := cfg.ErrorToast(ErrorToastParams{Message: info.Message, Type: info.Type, RequestID: reqID})
	return sse.PatchElementTempl(component, WithTarget(cfg.ToastTarget), WithPatchMode(cfg.ToastMode))
}

func renderPage(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, reqID string) error {
	w := ctx.ResponseWriter()
	if cfg.ErrorPage == nil {
		http.Error(w, info.Message, info.StatusCode)
		return nil
	}

	component := cfg.ErrorPage(ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  reqID,
		RetryURL:   ctx.Request().URL.Path,
	})
	return TemplStatus(info.StatusCode, component, component).Render(w, ctx.Request())
}
