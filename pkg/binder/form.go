package binder

import (
	"fmt"
	"net/http"
)

// DefaultMaxMemory caps the in-memory part of multipart bodies.
const DefaultMaxMemory = 10 << 20 // 10 MB

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies using `form` struct tags. Other content types are not applicable.
// Values are stored exactly as submitted.
func Form() Func {
	return func(r *http.Request, v any) error {
		var values map[string][]string

		switch mediaType(r) {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return ErrNotApplicable
		}

		return bindValues(v, "form", values, ErrInvalidForm)
	}
}
