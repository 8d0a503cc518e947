package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern defines the accepted username format:
// latin letters, digits and underscore, 3-32 characters.
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// emailPattern is a light sanity check, not a full RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 8

// ValidateUsername checks that username matches UsernamePattern.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username must be 3-32 characters: letters, numbers and underscores only")
	}

	return nil
}

// ValidateEmail checks that email looks like an address.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}

	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	return nil
}
