package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultRoleCacheSize = 1024
	defaultRoleCacheTTL  = time.Minute
)

type userService struct {
	userRepo UserRepository
	roles    *expirable.LRU[string, Role]
	logger   *slog.Logger
}

// NewUserService creates a new user service. Roles are cached for ttl so
// deletes by admins don't hit the users table on every request; a demoted
// admin keeps their role for at most ttl. ttl <= 0 uses one minute.
func NewUserService(userRepo UserRepository, ttl time.Duration, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = defaultRoleCacheTTL
	}
	return &userService{
		userRepo: userRepo,
		roles:    expirable.NewLRU[string, Role](defaultRoleCacheSize, nil, ttl),
		logger:   logger,
	}
}

// GetProfile returns the public profile of username
func (s *userService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// RoleOf resolves username's role through the cache
func (s *userService) RoleOf(ctx context.Context, username string) (Role, error) {
	if username == "" {
		return "", ErrUsernameRequired
	}
	if role, ok := s.roles.Get(username); ok {
		return role, nil
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		// Token holders without an account row are plain users
		s.roles.Add(username, RoleUser)
		return RoleUser, nil
	case err != nil:
		return "", fmt.Errorf("failed to look up role for %s: %w", username, err)
	}

	role := user.Role
	if !role.Valid() {
		s.logger.Warn("unknown role in users table", "username", username, "role", string(role))
		role = RoleUser
	}
	s.roles.Add(username, role)
	return role, nil
}

// IsAdmin reports whether username is an admin
func (s *userService) IsAdmin(ctx context.Context, username string) (bool, error) {
	role, err := s.RoleOf(ctx, username)
	if err != nil {
		return false, err
	}
	return role == RoleAdmin, nil
}
