package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidForm          = errors.New("failed to parse form data")
	ErrInvalidJSON          = errors.New("failed to parse JSON request body")
	ErrInvalidPath          = errors.New("failed to parse path parameters")
	ErrInvalidQuery         = errors.New("failed to parse query parameters")

	// ErrNotApplicable tells a binder chain to skip a binder whose content
	// type does not match the request.
	ErrNotApplicable = errors.New("binder not applicable")
)
