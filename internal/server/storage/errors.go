package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUsername indicates that the username is already taken
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrDuplicateEmail indicates that the email is already taken
	ErrDuplicateEmail = errors.New("email already exists")
)
