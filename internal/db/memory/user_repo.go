package memory

import (
	"context"
	"sync"

	"Delver/internal/core/users"
)

// UserRepository is an in-memory users.UserRepository, seeded at startup
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*users.User
}

// NewUserRepository creates a repository holding seed
func NewUserRepository(seed ...*users.User) *UserRepository {
	r := &UserRepository{users: make(map[string]*users.User)}
	for _, u := range seed {
		r.Put(u)
	}
	return r
}

var _ users.UserRepository = (*UserRepository)(nil)

// Put inserts or replaces a user
func (r *UserRepository) Put(u *users.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *u
	r.users[u.Username] = &c
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	c := *u
	return &c, nil
}
