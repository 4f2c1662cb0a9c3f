package registration

import (
	"errors"
	"regexp"
	"time"

	"github.com/dmitrymomot/formlab/pkg/validator"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

	// ErrInvalidDate is returned by ParseDate for text that is not a calendar date.
	ErrInvalidDate = errors.New("invalid date")
)

// dateLayouts are tried in order; HTML date inputs submit the first one.
var dateLayouts = []string{DateLayout, time.RFC3339, dateTimeLocalForm}

// Validator checks registration input against the registration rules.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	now func() time.Time
	loc *time.Location
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the source of "today" used by the age rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// WithLocation sets the location in which calendar dates are compared.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// New creates a Validator using the system clock and local time by default.
func New(opts ...Option) *Validator {
	v := &Validator{
		now: time.Now,
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = New()

// Validate checks raw with the default validator.
func Validate(raw Raw) (UserRegistration, error) {
	return defaultValidator.Validate(raw)
}

// ValidateField checks a single field with the default validator.
func ValidateField(field Field, value string, fc FieldContext) string {
	return defaultValidator.ValidateField(field, value, fc)
}

// Validate checks every field of raw. On success it returns the normalized
// record. On failure it returns validator.FieldErrors holding the first
// violated rule of each invalid field.
func (v *Validator) Validate(raw Raw) (UserRegistration, error) {
	today := v.today()
	fc := FieldContext{Password: raw.Password}

	chains := make([]validator.Chain, 0, len(fields))
	for _, f := range fields {
		chains = append(chains, v.rules(f, raw.Value(f), fc, today))
	}
	if err := validator.ApplyFirst(chains...); err != nil {
		return UserRegistration{}, err
	}

	// Already proven parseable by the chain above.
	dob, _ := ParseDate(raw.DateOfBirth, v.loc)

	return UserRegistration{
		Username:        raw.Username,
		Email:           raw.Email,
		Password:        raw.Password,
		ConfirmPassword: raw.ConfirmPassword,
		DateOfBirth:     dob,
	}, nil
}

// ValidateField returns the message for the first rule value violates, or ""
// when the value is valid. Unknown fields are always valid; use ParseField to
// reject them.
func (v *Validator) ValidateField(field Field, value string, fc FieldContext) string {
	verr, failed := v.rules(field, value, fc, v.today()).First()
	if !failed {
		return ""
	}
	return verr.Message
}

// ParseDate coerces text to midnight of its calendar date in loc. Zone-less
// text is read in loc; timestamps with an offset are converted to loc first.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return validator.CalendarDate(t.In(loc), loc), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func (v *Validator) today() time.Time {
	return v.now().In(v.loc)
}

// rules returns the ordered rule chain for one field.
func (v *Validator) rules(field Field, value string, fc FieldContext, today time.Time) validator.Chain {
	name := string(field)

	switch field {
	case FieldUsername:
		return validator.Chain{
			validator.MinLen(name, value, UsernameMinLen).WithMessage(MsgUsernameTooShort),
			validator.MaxLen(name, value, UsernameMaxLen).WithMessage(MsgUsernameTooLong),
			validator.MatchesRegex(name, value, usernameRegex, "username").WithMessage(MsgUsernameCharset),
		}

	case FieldEmail:
		return validator.Chain{
			validator.EmailShape(name, value).WithMessage(MsgEmailInvalid),
		}

	case FieldPassword:
		return validator.Chain{
			validator.MinLen(name, value, PasswordMinLen).WithMessage(MsgPasswordTooShort),
			validator.ContainsUppercase(name, value).WithMessage(MsgPasswordUppercase),
			validator.ContainsDigit(name, value).WithMessage(MsgPasswordDigit),
			validator.ContainsSymbol(name, value).WithMessage(MsgPasswordSymbol),
		}

	case FieldConfirmPassword:
		return validator.Chain{
			validator.NotEmpty(name, value).WithMessage(MsgConfirmRequired),
			validator.EqualTo(name, value, fc.Password).WithMessage(MsgPasswordsMismatch),
		}

	case FieldDateOfBirth:
		dob, err := ParseDate(value, v.loc)
		return validator.Chain{
			validator.NotEmpty(name, value).WithMessage(MsgDateOfBirthRequired),
			validator.Converted(name, err).WithMessage(MsgDateOfBirthInvalid),
			validator.MinAge(name, dob, MinimumAge, today).WithMessage(MsgUnderage),
		}

	default:
		return nil
	}
}
