package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formlab/handler"
	"github.com/dmitrymomot/formlab/modules/forms"
	"github.com/dmitrymomot/formlab/pkg/clientip"
	"github.com/dmitrymomot/formlab/pkg/config"
	"github.com/dmitrymomot/formlab/pkg/environment"
	"github.com/dmitrymomot/formlab/pkg/httpserver"
	"github.com/dmitrymomot/formlab/pkg/logger"
	"github.com/dmitrymomot/formlab/pkg/ratelimiter"
	"github.com/dmitrymomot/formlab/pkg/requestid"
	"github.com/dmitrymomot/formlab/svc/registration"
	"github.com/dmitrymomot/formlab/svc/users"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"formlab"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		app       appConfig
		serverCfg httpserver.Config
		usersCfg  users.Config
		limitCfg  ratelimiter.Config
	)
	if err := config.Load(&app); err != nil {
		return err
	}
	if err := config.Load(&serverCfg); err != nil {
		return err
	}
	if err := config.Load(&usersCfg); err != nil {
		return err
	}
	if err := config.Load(&limitCfg); err != nil {
		return err
	}

	env := environment.Parse(app.Env)
	log := logger.New(
		logger.WithEnvironment(env, app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	views := forms.DefaultViews()
	errorHandler := handler.NewErrorHandler(log, views.ErrorHandlerConfig())

	limitStore := ratelimiter.NewMemoryStore()
	defer limitStore.Close()
	limiter, err := ratelimiter.NewBucket(limitStore, limitCfg)
	if err != nil {
		return err
	}
	throttle := ratelimiter.Middleware(limiter, ratelimiter.ByClientIP,
		ratelimiter.WithLimitedHandler(func(w http.ResponseWriter, r *http.Request, _ *ratelimiter.Result) {
			errorHandler(handler.NewContext(w, r), handler.ErrTooManyRequests)
		}),
	)

	creator := users.NewCreatorFromConfig(usersCfg, users.WithLogger(log))
	svc := forms.NewService(registration.New(), creator, errorHandler,
		forms.WithViews(views),
		forms.WithLogger(log),
		forms.WithPostMiddleware(throttle),
	)

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(environment.Middleware(env))

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, func(context.Context) error { return ctx.Err() }))
	r.Mount("/", svc.Handle())

	log.InfoContext(ctx, "starting formlab",
		slog.String("addr", serverCfg.Addr),
		logger.Duration(usersCfg.Delay),
	)

	return httpserver.New(serverCfg, httpserver.WithLogger(log)).Run(ctx, r)
}
