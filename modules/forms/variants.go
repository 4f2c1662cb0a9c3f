package forms

import (
	"slices"
	"time"

	"github.com/dmitrymomot/formlab/svc/registration"
)

// Variant is one way of driving the registration form. Every variant uses
// the same validator; they differ in when validation runs and in what a
// submit answers with.
type Variant struct {
	ID          string
	Title       string
	Description string
	Accent      string

	// BlurValidation checks a field when it loses focus.
	BlurValidation bool
	// LiveRevalidation re-checks fields on every input once the form has
	// been submitted.
	LiveRevalidation bool
	// ActionState answers every submit with the action state instead of a
	// plain success or error.
	ActionState bool
	// Prefill starts the form with the demonstration values.
	Prefill bool
}

// Path is the route of the variant's form page.
func (v Variant) Path() string { return "/" + v.ID }

// ValidatePath is the per-field validation route.
func (v Variant) ValidatePath() string { return v.Path() + "/validate" }

// Validates reports whether the variant exposes per-field validation.
func (v Variant) Validates() bool { return v.BlurValidation || v.LiveRevalidation }

var variants = []Variant{
	{
		ID:             "basic",
		Title:          "Basic",
		Description:    "Plain form state with every field checked on blur and on submit.",
		Accent:         "blue",
		BlurValidation: true,
		Prefill:        true,
	},
	{
		ID:             "schema",
		Title:          "Schema",
		Description:    "Form state checked against the shared registration schema on blur and on submit.",
		Accent:         "green",
		BlurValidation: true,
		Prefill:        true,
	},
	{
		ID:               "resolver",
		Title:            "Resolver",
		Description:      "Validation runs on submit, then touched fields are re-checked as you type.",
		Accent:           "purple",
		LiveRevalidation: true,
		Prefill:          true,
	},
	{
		ID:          "action",
		Title:       "Server Action",
		Description: "Submit-only form validated on the server, answered with an action state.",
		Accent:      "amber",
		ActionState: true,
	},
}

// Variants returns the catalogue in display order.
func Variants() []Variant {
	return slices.Clone(variants)
}

// LookupVariant finds a variant by id.
func LookupVariant(id string) (Variant, bool) {
	i := slices.IndexFunc(variants, func(v Variant) bool { return v.ID == id })
	if i < 0 {
		return Variant{}, false
	}
	return variants[i], true
}

// DefaultValues are the demonstration values the prefilled variants start
// with. They fail username, email, password and confirmPassword on purpose.
func DefaultValues(today time.Time) registration.Raw {
	return registration.Raw{
		Username:        "el",
		Email:           "eliebismuth",
		Password:        "elie1996",
		ConfirmPassword: "elie1997",
		DateOfBirth:     today.Format(registration.DateLayout),
	}
}

// initialValues is what a fresh form page shows for v.
func initialValues(v Variant, today time.Time) registration.Raw {
	if v.Prefill {
		return DefaultValues(today)
	}
	return registration.Raw{}
}
