package binder

import (
	"mime"
	"net/http"
)

// Func decodes part of a request into v, which must be a pointer to struct.
type Func func(r *http.Request, v any) error

// mediaType returns the lowercase media type of the request, or "".
func mediaType(r *http.Request) string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}
