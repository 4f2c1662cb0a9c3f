package validator

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FormKey is the catch-all key for failures that belong to no single field.
const FormKey = "_form"

// FieldErrors maps a field name to its single user-facing message.
// Fields absent from the map are valid.
type FieldErrors map[string]string

// Error implements the error interface with fields listed in sorted order.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(fe))
	for _, field := range fe.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, fe[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Set records msg for field unless the field already has a message.
func (fe FieldErrors) Set(field, msg string) {
	if _, ok := fe[field]; ok {
		return
	}
	fe[field] = msg
}

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

func (fe FieldErrors) Get(field string) string {
	return fe[field]
}

// Fields returns the invalid field names, sorted.
func (fe FieldErrors) Fields() []string {
	return slices.Sorted(maps.Keys(fe))
}

func (fe FieldErrors) IsEmpty() bool {
	return len(fe) == 0
}

// ExtractFieldErrors returns the FieldErrors carried by err.
// ValidationErrors are collapsed to their first message per field.
func ExtractFieldErrors(err error) (FieldErrors, bool) {
	if err == nil {
		return nil, false
	}

	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}

	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve.FieldErrors(), true
	}

	return nil, false
}
