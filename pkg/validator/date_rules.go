package validator

import (
	"fmt"
	"time"
)

// MinAge validates that birthdate falls on or before the day exactly minAge
// calendar years before today. Only calendar dates are compared, so a person
// whose birthday is today is already minAge years old. A boundary that does
// not exist (Feb 29 in a common year) rolls over to Mar 1.
func MinAge(field string, birthdate time.Time, minAge int, today time.Time) Rule {
	return Rule{
		Check: func() bool {
			return !CalendarDate(birthdate, today.Location()).After(AgeBoundary(today, minAge))
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("minimum age of %d years required", minAge),
			TranslationKey: "validation.min_age",
			TranslationValues: map[string]any{
				"field":   field,
				"min_age": minAge,
			},
		},
	}
}

// AgeBoundary returns the latest birth date that is at least years old on today.
func AgeBoundary(today time.Time, years int) time.Time {
	return time.Date(today.Year()-years, today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
}

// CalendarDate returns midnight of t's calendar date, placed in loc.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
