// Package stores opens the repositories of the configured backend.
package stores

import (
	"context"
	"fmt"

	"Delver/internal/config"
	"Delver/internal/core/posts"
	"Delver/internal/core/users"
	"Delver/internal/db/dynamo"
	"Delver/internal/db/memory"
	"Delver/internal/db/postgres"
)

// Stores bundles the repositories of one backend.
// Comments are posts with a parent_id and live in the same table, so the
// parent index can find them during a cascade.
type Stores struct {
	Posts posts.Repository
	Users users.UserRepository
	close func() error
}

// Close releases backend connections
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to cfg.Backend
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Backend {
	case config.BackendDynamo:
		client, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		postTable := dynamo.PostTable{Name: cfg.PostsTable, ParentIndex: cfg.ParentIndex, AuthorIndex: cfg.AuthorIndex}
		return &Stores{
			Posts: dynamo.NewPostRepository(client, postTable),
			Users: dynamo.NewUserRepository(client, cfg.UsersTable, cfg.UsernameIndex),
		}, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Posts: postgres.NewPostRepository(db),
			Users: postgres.NewUserRepository(db),
			close: db.Close,
		}, nil

	case config.BackendMemory:
		return &Stores{
			Posts: memory.NewPostRepository(),
			Users: memory.NewUserRepository(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
