package validator

import "regexp"

// emailShapeRegex accepts "non-whitespace@non-whitespace.non-whitespace".
// Whitespace is the browser set: ASCII space and controls, vertical tab,
// Unicode separators and the BOM.
var emailShapeRegex = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// EmailShape validates the loose a@b.c shape used by browser form checks.
// It does not implement RFC 5322; addresses such as "a@b.c" pass.
func EmailShape(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailShapeRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
