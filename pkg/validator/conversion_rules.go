package validator

// Converted validates that a preceding conversion of the field's raw value
// (parsing a date, a number) succeeded. Place it in a Chain before rules
// that read the converted value.
func Converted(field string, err error) Rule {
	return Rule{
		Check: func() bool {
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "has an invalid format",
			TranslationKey: "validation.format",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}
