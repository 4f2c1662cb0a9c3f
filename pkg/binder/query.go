package binder

import "net/http"

// Query binds URL query parameters using `query` struct tags. It applies to
// every request.
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
