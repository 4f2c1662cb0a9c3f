package binder

import (
	"net/http"
)

// Path binds route parameters using `path` struct tags. extract returns the
// raw value for a parameter name, typically chi.URLParam.
func Path(extract func(r *http.Request, name string) string) Func {
	return func(r *http.Request, v any) error {
		if extract == nil {
			return ErrNotApplicable
		}
		return bindLookup(v, "path", func(name string) []string {
			if s := extract(r, name); s != "" {
				return []string{s}
			}
			return nil
		}, ErrInvalidPath)
	}
}
