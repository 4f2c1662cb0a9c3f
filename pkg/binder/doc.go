// Package binder decodes HTTP requests into structs.
//
// Form reads `form` tags from urlencoded or multipart bodies, JSON decodes
// application/json bodies, Query reads `query` tags from the URL and Path
// reads `path` tags from route parameters.
// Form and JSON return ErrNotApplicable for other content types, so a
// handler can run both and let the request pick one:
//
//	type Signup struct {
//		Username string `form:"username" json:"username"`
//		Variant  string `path:"variant"`
//	}
//
// Strings are bound verbatim. Nothing is trimmed or escaped.
package binder
