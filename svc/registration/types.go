package registration

import "time"

// Field names a registration input. Values are the wire names used in
// forms, JSON payloads and FieldErrors keys.
type Field string

const (
	FieldUsername        Field = "username"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldDateOfBirth     Field = "dateOfBirth"
)

// fields lists every field in reporting order.
var fields = []Field{
	FieldUsername,
	FieldEmail,
	FieldPassword,
	FieldConfirmPassword,
	FieldDateOfBirth,
}

// Fields returns every registration field in reporting order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// ParseField maps a wire name to its Field.
func ParseField(name string) (Field, bool) {
	for _, f := range fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Raw is the untrusted registration input exactly as submitted.
type Raw struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirmPassword" json:"confirmPassword"`
	DateOfBirth     string `form:"dateOfBirth" json:"dateOfBirth"`
}

// Value returns the raw text of field.
func (r Raw) Value(field Field) string {
	switch field {
	case FieldUsername:
		return r.Username
	case FieldEmail:
		return r.Email
	case FieldPassword:
		return r.Password
	case FieldConfirmPassword:
		return r.ConfirmPassword
	case FieldDateOfBirth:
		return r.DateOfBirth
	default:
		return ""
	}
}

// UserRegistration is a validated registration with types coerced.
// Passwords never leave the process in serialized form.
type UserRegistration struct {
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Password        string    `json:"-"`
	ConfirmPassword string    `json:"-"`
	DateOfBirth     time.Time `json:"dateOfBirth"`
}

// Raw converts the record back to raw input. Validating the result succeeds
// for any record produced by Validate on the same day.
func (u UserRegistration) Raw() Raw {
	return Raw{
		Username:        u.Username,
		Email:           u.Email,
		Password:        u.Password,
		ConfirmPassword: u.ConfirmPassword,
		DateOfBirth:     u.DateOfBirth.Format(DateLayout),
	}
}

// FieldContext carries the sibling values a single-field check depends on.
type FieldContext struct {
	// Password is the current password, compared against confirmPassword.
	Password string
}
