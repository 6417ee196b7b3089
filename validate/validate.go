// Package validate implements the synchronous per-field form checks.
// Results are advisory UI feedback; the directory service re-validates
// on its own and returns its own errors.
package validate

import (
	"regexp"
	"strings"
)

// Field input types with dedicated rules.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypePassword = "password"
)

const minPasswordLen = 6

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Kenyan mobile numbers: +2547XXXXXXXX, 2547XXXXXXXX or 07XXXXXXXX.
	phoneRegex = regexp.MustCompile(`^(\+?254|0)[7][0-9]{8}$`)
)

// Field describes one form input at validation time.
type Field struct {
	Type     string
	Value    string
	Required bool
	Phone    bool // the field holds a mobile number (e.g. M-Pesa)
}

// Result is the validity flag plus the human-readable message shown
// next to the field.
type Result struct {
	Valid   bool
	Message string
}

// Validate applies the rules for the field. An empty optional field
// only ever fails the required check.
func Validate(f Field) Result {
	value := f.Value
	if f.Required && strings.TrimSpace(value) == "" {
		return Result{Valid: false, Message: "This field is required"}
	}

	if f.Type == TypeEmail && value != "" && !emailRegex.MatchString(value) {
		return Result{Valid: false, Message: "Please enter a valid email address"}
	}

	if f.Type == TypePassword && value != "" && len(value) < minPasswordLen {
		return Result{Valid: false, Message: "Password must be at least 6 characters"}
	}

	if f.Phone && value != "" && !phoneRegex.MatchString(value) {
		return Result{Valid: false, Message: "Please enter a valid Kenyan phone number"}
	}

	return Result{Valid: true}
}
