package users

import "errors"

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameRequired is returned when a lookup is made without a username
	ErrUsernameRequired = errors.New("username is required")
)
