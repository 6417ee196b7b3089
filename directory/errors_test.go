package directory

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		op   string
		err  error
		want string
	}{
		{OpLogin, ErrInvalidEmail, "Invalid email address."},
		{OpLogin, ErrUserDisabled, "This account has been disabled."},
		{OpLogin, ErrUserNotFound, "No account found with this email."},
		{OpLogin, ErrWrongPassword, "Incorrect password."},
		{OpLogin, errors.New("network down"), "Login failed. Please try again."},
		// Codes outside an operation's table fall back to its generic message.
		{OpLogin, ErrEmailInUse, "Login failed. Please try again."},

		{OpSignup, ErrEmailInUse, "Email already in use."},
		{OpSignup, ErrInvalidEmail, "Invalid email address."},
		{OpSignup, ErrNotAllowed, "Operation not allowed."},
		{OpSignup, ErrWeakPassword, "Password is too weak."},
		{OpSignup, errors.New("boom"), "Signup failed. Please try again."},

		{OpReset, ErrInvalidEmail, "Invalid email address."},
		{OpReset, ErrUserNotFound, "No account found with this email."},
		{OpReset, errors.New("boom"), "Password reset failed. Please try again."},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.op, tt.err), func(t *testing.T) {
			authErr := mapError(tt.op, tt.err)
			assert.Equal(t, tt.want, authErr.Message)
			assert.Equal(t, tt.op, authErr.Op)
			// The provider code stays reachable for callers that check it.
			assert.ErrorIs(t, authErr, tt.err)
		})
	}
}

func TestMapErrorWrappedCode(t *testing.T) {
	wrapped := fmt.Errorf("provider: %w", ErrWrongPassword)
	assert.Equal(t, "Incorrect password.", mapError(OpLogin, wrapped).Message)
}
