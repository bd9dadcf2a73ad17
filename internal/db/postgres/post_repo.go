package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"Delver/internal/core/posts"
)

const postColumns = `post_id, creation_time, title, body, written_by, parent_id, liked_by, disliked_by`

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository.
// Each mutation is one UPDATE/DELETE whose WHERE clause carries the
// precondition, so it is atomic per row.
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Get retrieves a post by its composite key
func (r *postgresPostRepo) Get(ctx context.Context, key posts.Key) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM forum_posts WHERE post_id = $1 AND creation_time = $2`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, key.PostID, key.CreationTime))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// GetByID retrieves the earliest item with the given post_id
func (r *postgresPostRepo) GetByID(ctx context.Context, postID string) (*posts.Post, error) {
	query := `SELECT ` + postColumns + ` FROM forum_posts WHERE post_id = $1 ORDER BY creation_time LIMIT 1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, postID))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return post, nil
}

// Create inserts a new post
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	query := `
		INSERT INTO forum_posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
		ON CONFLICT (post_id, creation_time) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query,
		post.PostID, post.CreationTime, post.Title, post.Body, post.WrittenBy,
		post.ParentID, pq.Array(nonNil(post.LikedBy)), pq.Array(nonNil(post.DislikedBy)),
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return expectOne(res, posts.ErrAlreadyExists)
}

// UpdateBody sets the body if the row exists and is written by author
func (r *postgresPostRepo) UpdateBody(ctx context.Context, key posts.Key, author, body string) error {
	query := `
		UPDATE forum_posts SET body = $3
		WHERE post_id = $1 AND creation_time = $2 AND written_by = $4
	`

	res, err := r.db.ExecContext(ctx, query, key.PostID, key.CreationTime, body, author)
	if err != nil {
		return fmt.Errorf("failed to update post body: %w", err)
	}
	return r.checkWrite(ctx, res, key)
}

// ApplyReaction rewrites both reaction arrays in a single UPDATE.
// The WHERE clause asserts the membership implied by from; the
// chk_reactions_disjoint constraint backs the invariant.
func (r *postgresPostRepo) ApplyReaction(ctx context.Context, key posts.Key, username string, from, to posts.Reaction) error {
	query := `
		UPDATE forum_posts SET
			liked_by = CASE WHEN $4 THEN array_append(array_remove(liked_by, $3), $3)
			                ELSE array_remove(liked_by, $3) END,
			disliked_by = CASE WHEN $5 THEN array_append(array_remove(disliked_by, $3), $3)
			                   ELSE array_remove(disliked_by, $3) END
		WHERE post_id = $1 AND creation_time = $2
		  AND ($3 = ANY(liked_by)) = $6
		  AND ($3 = ANY(disliked_by)) = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		key.PostID, key.CreationTime, username,
		to == posts.ReactionLiked, to == posts.ReactionDisliked,
		from == posts.ReactionLiked, from == posts.ReactionDisliked,
	)
	if err != nil {
		return fmt.Errorf("failed to apply reaction: %w", err)
	}
	return r.checkWrite(ctx, res, key)
}

// ReparentChild swaps parent_id if it still equals expectedParent
func (r *postgresPostRepo) ReparentChild(ctx context.Context, key posts.Key, expectedParent, newParent string) error {
	query := `
		UPDATE forum_posts SET parent_id = NULLIF($3, '')
		WHERE post_id = $1 AND creation_time = $2 AND parent_id = $4
	`

	res, err := r.db.ExecContext(ctx, query, key.PostID, key.CreationTime, newParent, expectedParent)
	if err != nil {
		return fmt.Errorf("failed to reparent post: %w", err)
	}
	return r.checkWrite(ctx, res, key)
}

// Delete removes the row at key
func (r *postgresPostRepo) Delete(ctx context.Context, key posts.Key) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM forum_posts WHERE post_id = $1 AND creation_time = $2`,
		key.PostID, key.CreationTime)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return expectOne(res, posts.ErrNotFound)
}

// ListByParent returns direct children of parentID
func (r *postgresPostRepo) ListByParent(ctx context.Context, parentID string) ([]*posts.Post, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM forum_posts WHERE parent_id = $1`, parentID)
}

// ListByAuthor returns all posts written by username
func (r *postgresPostRepo) ListByAuthor(ctx context.Context, username string) ([]*posts.Post, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM forum_posts WHERE written_by = $1`, username)
}

// ListTopLevel returns posts without a parent
func (r *postgresPostRepo) ListTopLevel(ctx context.Context) ([]*posts.Post, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM forum_posts WHERE parent_id IS NULL`)
}

func (r *postgresPostRepo) list(ctx context.Context, query string, args ...any) ([]*posts.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]*posts.Post, 0)
	for rows.Next() {
		post, scanErr := scanPost(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan post: %w", scanErr)
		}
		result = append(result, post)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return result, nil
}

// checkWrite turns a zero-row conditional write into ErrNotFound or
// ErrPreconditionFailed depending on whether the row exists.
func (r *postgresPostRepo) checkWrite(ctx context.Context, res sql.Result, key posts.Key) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM forum_posts WHERE post_id = $1 AND creation_time = $2)`,
		key.PostID, key.CreationTime).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check post existence: %w", err)
	}
	if !exists {
		return posts.ErrNotFound
	}
	return posts.ErrPreconditionFailed
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*posts.Post, error) {
	var (
		post     posts.Post
		parentID sql.NullString
	)
	err := row.Scan(
		&post.PostID, &post.CreationTime, &post.Title, &post.Body, &post.WrittenBy,
		&parentID, pq.Array(&post.LikedBy), pq.Array(&post.DislikedBy),
	)
	if err != nil {
		return nil, err
	}
	post.ParentID = strings.TrimSpace(parentID.String)
	return post.Normalize(), nil
}

func expectOne(res sql.Result, zeroErr error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return zeroErr
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
