package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapAuthError(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"there is no user record corresponding to this identifier", "No account found for this email."},
		{"INVALID PASSWORD provided", "The password is incorrect."},
		{"access to this account has been temporarily disabled due to many failed login attempts", "Access temporarily disabled. Too many failed attempts, try again later."},
		{"the email address is already in use by another account", "An account with this email already exists."},
		{"the email address is badly formatted", "The email address is not valid."},
		{"ID token has expired at 1700000000", "Your session has expired, please sign in again."},
		{"dial tcp: network is unreachable", "Please check your connection and try again."},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, MapAuthError(errors.New(tt.raw)))
		})
	}
}

func TestMapAuthErrorFallback(t *testing.T) {
	got := MapAuthError(errors.New("something odd happened"))
	assert.Contains(t, got, "Authentication failed")
	assert.Contains(t, got, "something odd happened")
}

func TestMapAuthErrorNil(t *testing.T) {
	assert.Equal(t, "", MapAuthError(nil))
}
