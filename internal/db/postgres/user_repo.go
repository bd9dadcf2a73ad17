package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Delver/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// GetByUsername retrieves a user by username
func (r *postgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	user := &users.User{}
	query := `SELECT username, email, role, about_me, profile_pic, creation_time FROM users WHERE username = $1`

	var role string
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.Username, &user.Email, &role, &user.AboutMe, &user.ProfilePic, &user.CreationTime)

	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	user.Role = users.Role(role)
	return user, nil
}
