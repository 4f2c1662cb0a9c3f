// Package registration validates user registration input.
//
// It is the single source of the registration rules. Every form variant, the
// per-field blur checks and the server-side submit path call into it instead
// of re-implementing rules.
//
//	v := registration.New(registration.WithClock(clock.Now))
//
//	// Whole form on submit
//	user, err := v.Validate(raw)
//	if fe, ok := validator.ExtractFieldErrors(err); ok {
//		// fe["password"] == "Password must contain at least one number"
//	}
//
//	// One field on blur
//	msg := v.ValidateField(registration.FieldConfirmPassword, value,
//		registration.FieldContext{Password: currentPassword})
//
// Each field reports at most one message, taken from the first rule it
// violates. The password equality check is reported against
// confirmPassword.
package registration
