package registration

// Rule limits.
const (
	UsernameMinLen    = 3
	UsernameMaxLen    = 50
	PasswordMinLen    = 8
	MinimumAge        = 18
	DateLayout        = "2006-01-02"
	dateTimeLocalForm = "2006-01-02T15:04"
)

// User-facing messages. They are part of the external contract and must not
// be reworded.
const (
	MsgUsernameTooShort    = "Username must contain at least 3 characters"
	MsgUsernameTooLong     = "Username cannot exceed 50 characters"
	MsgUsernameCharset     = "Username can only contain letters, numbers and underscores"
	MsgEmailInvalid        = "Invalid email address"
	MsgPasswordTooShort    = "Password must contain at least 8 characters"
	MsgPasswordUppercase   = "Password must contain at least one uppercase letter"
	MsgPasswordDigit       = "Password must contain at least one number"
	MsgPasswordSymbol      = "Password must contain at least one special character"
	MsgConfirmRequired     = "Please confirm your password"
	MsgPasswordsMismatch   = "Passwords don't match"
	MsgDateOfBirthRequired = "Date of birth is required"
	MsgDateOfBirthInvalid  = "Invalid date"
	MsgUnderage            = "You must be at least 18 years old"
	MsgUnexpected          = "An unexpected error occurred"
)
