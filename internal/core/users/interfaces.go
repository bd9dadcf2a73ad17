package users

import "context"

// UserRepository defines the read side of the users table
type UserRepository interface {
	// GetByUsername returns the account with the given username (username index)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// UserService defines user lookups used by the forum
type UserService interface {
	// GetProfile returns the public profile of username
	GetProfile(ctx context.Context, username string) (*Profile, error)

	// RoleOf returns username's role. Unknown users have RoleUser.
	RoleOf(ctx context.Context, username string) (Role, error)

	// IsAdmin reports whether username has RoleAdmin
	IsAdmin(ctx context.Context, username string) (bool, error)
}
