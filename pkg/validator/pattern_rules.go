package validator

import (
	"fmt"
	"regexp"
)

// MatchesRegex validates that the whole value satisfies re.
// Pass a package-level compiled expression so the pattern is compiled once.
func MatchesRegex(field, value string, re *regexp.Regexp, description string) Rule {
	return Rule{
		Check: func() bool {
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must match %s pattern", description),
			TranslationKey: "validation.regex_pattern",
			TranslationValues: map[string]any{
				"field":       field,
				"pattern":     re.String(),
				"description": description,
			},
		},
	}
}

// ContainsUppercase validates that a string contains at least one ASCII uppercase letter.
func ContainsUppercase(field, value string) Rule {
	return Rule{
		Check: func() bool {
			for i := 0; i < len(value); i++ {
				if value[i] >= 'A' && value[i] <= 'Z' {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain at least one uppercase letter",
			TranslationKey: "validation.contains_uppercase",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ContainsDigit validates that a string contains at least one ASCII digit.
func ContainsDigit(field, value string) Rule {
	return Rule{
		Check: func() bool {
			for i := 0; i < len(value); i++ {
				if value[i] >= '0' && value[i] <= '9' {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain at least one digit",
			TranslationKey: "validation.contains_digit",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ContainsSymbol validates that a string contains at least one character
// outside [A-Za-z0-9]. Non-ASCII letters count as symbols.
func ContainsSymbol(field, value string) Rule {
	return Rule{
		Check: func() bool {
			for _, r := range value {
				if !isASCIIAlnum(r) {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain at least one special character",
			TranslationKey: "validation.contains_symbol",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
