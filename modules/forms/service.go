package forms

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formlab/handler"
	"github.com/dmitrymomot/formlab/pkg/binder"
	"github.com/dmitrymomot/formlab/pkg/logger"
	"github.com/dmitrymomot/formlab/svc/registration"
	"github.com/dmitrymomot/formlab/svc/users"
)

// ErrUnknownField is returned by the validation endpoint for a field name
// that is not part of the registration form.
var ErrUnknownField = handler.NewHTTPError(http.StatusBadRequest, "unknown_field")

// Service serves the catalogue and every form variant.
type Service struct {
	validator    *registration.Validator
	creator      users.Creator
	views        *Views
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
	now          func() time.Time
	postMW       []func(http.Handler) http.Handler
}

// Option configures a Service.
type Option func(*Service)

func WithViews(v *Views) Option {
	return func(s *Service) {
		if v != nil {
			s.views = v
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the source of today's date shown in prefilled forms.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPostMiddleware wraps the submit and validation routes, typically with
// a rate limiter.
func WithPostMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(s *Service) {
		s.postMW = append(s.postMW, mw...)
	}
}

// NewService creates the form module.
func NewService(
	v *registration.Validator,
	creator users.Creator,
	errorHandler handler.ErrorHandler[handler.Context],
	opts ...Option,
) *Service {
	s := &Service{
		validator:    v,
		creator:      creator,
		views:        DefaultViews(),
		errorHandler: errorHandler,
		log:          logger.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle returns the module router.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	path := binder.Path(chi.URLParam)

	r.Get("/", handler.Wrap(s.catalogue,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))

	r.Route("/{variant}", func(r chi.Router) {
		r.Get("/", handler.Wrap(s.page,
			handler.WithBinders[handler.Context, pageRequest](path),
			handler.WithErrorHandler[handler.Context, pageRequest](s.errorHandler),
		))

		// Datastar posts every signal as one JSON object, so it gets its own
		// request shapes.
		posts := r.With(s.postMW...)

		posts.Post("/", byClient(
			handler.Wrap(s.submitSignals,
				handler.WithBinders[handler.Context, submitRequest](path, handler.Signals()),
				handler.WithErrorHandler[handler.Context, submitRequest](s.errorHandler),
			),
			handler.Wrap(s.submit,
				handler.WithBinders[handler.Context, submitRequest](path, binder.Form(), binder.JSON()),
				handler.WithErrorHandler[handler.Context, submitRequest](s.errorHandler),
			),
		))

		posts.Post("/validate", byClient(
			handler.Wrap(s.validateSignals,
				handler.WithBinders[handler.Context, signalsFieldRequest](path, binder.Query(), handler.Signals()),
				handler.WithErrorHandler[handler.Context, signalsFieldRequest](s.errorHandler),
			),
			handler.Wrap(s.validateField,
				handler.WithBinders[handler.Context, fieldRequest](path, binder.Query(), binder.Form(), binder.JSON()),
				handler.WithErrorHandler[handler.Context, fieldRequest](s.errorHandler),
			),
		))
	})

	return r
}

// byClient routes datastar requests to ds and everything else to plain.
func byClient(ds, plain http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if handler.IsDataStar(r) {
			ds(w, r)
			return
		}
		plain(w, r)
	}
}
