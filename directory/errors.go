package directory

import "errors"

// Provider error codes. The set is closed; anything else maps to the
// operation's generic message.
var (
	ErrInvalidEmail  = errors.New("auth/invalid-email")
	ErrUserDisabled  = errors.New("auth/user-disabled")
	ErrUserNotFound  = errors.New("auth/user-not-found")
	ErrWrongPassword = errors.New("auth/wrong-password")
	ErrEmailInUse    = errors.New("auth/email-already-in-use")
	ErrWeakPassword  = errors.New("auth/weak-password")
	ErrNotAllowed    = errors.New("auth/operation-not-allowed")
)

// Operations, used to pick the right message table and fallback.
const (
	OpLogin  = "login"
	OpSignup = "signup"
	OpReset  = "reset"
)

// AuthError carries the user-facing message for a failed directory
// operation. Unwrap exposes the provider code for callers that care.
type AuthError struct {
	Op      string
	Message string
	err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.err }

type codeMessage struct {
	code    error
	message string
}

var loginMessages = []codeMessage{
	{ErrInvalidEmail, "Invalid email address."},
	{ErrUserDisabled, "This account has been disabled."},
	{ErrUserNotFound, "No account found with this email."},
	{ErrWrongPassword, "Incorrect password."},
}

var signupMessages = []codeMessage{
	{ErrEmailInUse, "Email already in use."},
	{ErrInvalidEmail, "Invalid email address."},
	{ErrNotAllowed, "Operation not allowed."},
	{ErrWeakPassword, "Password is too weak."},
}

var resetMessages = []codeMessage{
	{ErrInvalidEmail, "Invalid email address."},
	{ErrUserNotFound, "No account found with this email."},
}

var genericMessages = map[string]string{
	OpLogin:  "Login failed. Please try again.",
	OpSignup: "Signup failed. Please try again.",
	OpReset:  "Password reset failed. Please try again.",
}

// mapError wraps a provider error into the user-facing AuthError for
// the given operation.
func mapError(op string, err error) *AuthError {
	var table []codeMessage
	switch op {
	case OpLogin:
		table = loginMessages
	case OpSignup:
		table = signupMessages
	case OpReset:
		table = resetMessages
	}

	for _, cm := range table {
		if errors.Is(err, cm.code) {
			return &AuthError{Op: op, Message: cm.message, err: err}
		}
	}
	return &AuthError{Op: op, Message: genericMessages[op], err: err}
}
