package posts

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockRepository is a testify mock of Repository
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Get(ctx context.Context, key Key) (*Post, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, postID string) (*Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Post), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, post *Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *mockRepository) UpdateBody(ctx context.Context, key Key, author, body string) error {
	args := m.Called(ctx, key, author, body)
	return args.Error(0)
}

func (m *mockRepository) ApplyReaction(ctx context.Context, key Key, username string, from, to Reaction) error {
	args := m.Called(ctx, key, username, from, to)
	return args.Error(0)
}

func (m *mockRepository) ReparentChild(ctx context.Context, key Key, expectedParent, newParent string) error {
	args := m.Called(ctx, key, expectedParent, newParent)
	return args.Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, key Key) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockRepository) ListByParent(ctx context.Context, parentID string) ([]*Post, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *mockRepository) ListByAuthor(ctx context.Context, username string) ([]*Post, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

func (m *mockRepository) ListTopLevel(ctx context.Context) ([]*Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Post), args.Error(1)
}

// staticRoles resolves admins from a fixed set
type staticRoles map[string]bool

func (r staticRoles) IsAdmin(_ context.Context, username string) (bool, error) {
	return r[username], nil
}
