// Package validator provides small, composable validation rules for strings,
// dates and comparable values, together with the error types used to report
// them.
//
// A Rule couples a boolean Check with translation-friendly error metadata.
// Rules are evaluated either with Apply, which collects every failure into a
// ValidationErrors slice, or grouped per field into a Chain and evaluated with
// ApplyFirst, which stops at the first failing rule of each chain and reports
// a FieldErrors map holding at most one message per field.
//
// # Usage
//
//	err := validator.ApplyFirst(
//	    validator.Chain{
//	        validator.MinLen("username", username, 3).WithMessage("too short"),
//	        validator.MaxLen("username", username, 50),
//	    },
//	    validator.Chain{
//	        validator.EmailShape("email", email),
//	    },
//	)
//	if fe, ok := validator.ExtractFieldErrors(err); ok {
//	    msg := fe.Get("username")
//	}
//
// # Error Handling
//
// Both ValidationErrors and FieldErrors implement error and can be detected
// with errors.As or IsValidationError. FieldErrors.Error lists fields in
// sorted order so messages are stable across runs.
//
// Every exported constructor returns a Rule value; there is no global state,
// so the package is goroutine-safe. Date rules take "today" as a parameter
// instead of reading the wall clock.
package validator
