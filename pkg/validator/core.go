package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single validation error with translation support.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// FieldErrors collapses the collection to the first message reported for each field.
func (ve ValidationErrors) FieldErrors() FieldErrors {
	fe := make(FieldErrors, len(ve))
	for _, err := range ve {
		if _, ok := fe[err.Field]; !ok {
			fe[err.Field] = err.Message
		}
	}
	return fe
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// WithMessage returns a copy of the rule reporting msg instead of its default message.
// The translation key is kept so translated catalogues still resolve.
func (r Rule) WithMessage(msg string) Rule {
	r.Error.Message = msg
	return r
}

// Apply executes multiple validation rules and returns any validation errors.
func Apply(rules ...Rule) error {
	var errors ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			errors = append(errors, rule.Error)
		}
	}

	if errors.IsEmpty() {
		return nil
	}

	return errors
}

// Chain is an ordered list of rules for one field.
// Evaluation stops at the first failing rule.
type Chain []Rule

// First returns the error of the first failing rule in the chain.
func (c Chain) First() (ValidationError, bool) {
	for _, rule := range c {
		if !rule.Check() {
			return rule.Error, true
		}
	}
	return ValidationError{}, false
}

// ApplyFirst evaluates each chain and reports at most one error per chain.
// It returns FieldErrors, or nil when every chain passes.
func ApplyFirst(chains ...Chain) error {
	fe := make(FieldErrors)
	for _, chain := range chains {
		if verr, failed := chain.First(); failed {
			fe.Set(verr.Field, verr.Message)
		}
	}

	if fe.IsEmpty() {
		return nil
	}

	return fe
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

// IsValidationError reports whether err carries ValidationErrors or FieldErrors.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return true
	}
	var fieldErr FieldErrors
	return errors.As(err, &fieldErr)
}
