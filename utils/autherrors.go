package utils

import (
	"fmt"
	"strings"
)

// authErrorMessages maps known substrings of auth provider errors to short
// user-facing messages. Matching is case-insensitive and first-match wins.
var authErrorMessages = []struct {
	substr  string
	message string
}{
	{"no user record", "No account found for this email."},
	{"user-not-found", "No account found for this email."},
	{"invalid password", "The password is incorrect."},
	{"wrong-password", "The password is incorrect."},
	{"temporarily disabled", "Access temporarily disabled. Too many failed attempts, try again later."},
	{"too-many-requests", "Access temporarily disabled. Too many failed attempts, try again later."},
	{"email address is already in use", "An account with this email already exists."},
	{"email-already-exists", "An account with this email already exists."},
	{"badly formatted", "The email address is not valid."},
	{"invalid-email", "The email address is not valid."},
	{"user-disabled", "This account has been disabled."},
	{"id token has expired", "Your session has expired, please sign in again."},
	{"network", "Please check your connection and try again."},
}

// MapAuthError translates an auth provider error into a short human-readable
// message. Unrecognized errors fall back to a generic message carrying the
// underlying detail.
func MapAuthError(err error) string {
	if err == nil {
		return ""
	}
	lower := strings.ToLower(err.Error())
	for _, m := range authErrorMessages {
		if strings.Contains(lower, m.substr) {
			return m.message
		}
	}
	return fmt.Sprintf("Authentication failed: %v", err)
}
