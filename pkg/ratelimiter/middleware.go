package ratelimiter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/formlab/pkg/clientip"
)

// KeyFunc names the bucket a request draws from. An empty key skips the
// check.
type KeyFunc func(r *http.Request) string

// ByClientIP keys requests by the address clientip.Middleware resolved,
// falling back to resolving it from the request.
func ByClientIP(r *http.Request) string {
	if ip := clientip.FromContext(r.Context()); ip != "" {
		return "ip:" + ip
	}
	if ip := clientip.GetIP(r); ip != "" {
		return "ip:" + ip
	}
	return ""
}

// LimitedHandler answers a rejected request.
type LimitedHandler func(w http.ResponseWriter, r *http.Request, res *Result)

type middlewareConfig struct {
	onLimited LimitedHandler
	onError   func(w http.ResponseWriter, r *http.Request, err error)
}

type MiddlewareOption func(*middlewareConfig)

func WithLimitedHandler(h LimitedHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.onLimited = h
		}
	}
}

// WithErrorHandler answers requests whose check failed in the store.
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.onError = h
		}
	}
}

// Middleware rejects requests once their bucket is empty.
func Middleware(l Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		onLimited: func(w http.ResponseWriter, _ *http.Request, _ *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
		onError: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := l.Allow(r.Context(), key)
			if err != nil {
				cfg.onError(w, r, err)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				if secs := int((res.RetryAfter() + time.Second - 1) / time.Second); secs > 0 {
					h.Set("Retry-After", strconv.Itoa(secs))
				}
				cfg.onLimited(w, r, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
