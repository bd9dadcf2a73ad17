package comments

import (
	"context"

	"Delver/internal/core/posts"
)

// Service defines the business logic interface for comments.
// Comments are stored as posts with a parent_id, so the store contract is
// posts.Repository.
type Service interface {
	// UpdateComment replaces the body of a comment written by username
	UpdateComment(ctx context.Context, username string, req UpdateCommentRequest) (*posts.Post, error)

	// DeleteComment removes a comment written by username, or by any admin
	DeleteComment(ctx context.Context, username string, key posts.Key) error

	// GetCommentsSorted returns the first CommentsPageSize*page comments
	// under parentID, oldest first
	GetCommentsSorted(ctx context.Context, parentID string, page int) ([]*posts.Post, error)
}

// UpdateCommentRequest is the PATCH /forums/comments payload
type UpdateCommentRequest struct {
	CommentID           string `json:"comment_id" validate:"required"`
	CommentCreationTime string `json:"comment_creation_time" validate:"required"`
	Body                string `json:"body" validate:"required"`
}

// Key returns the composite key the request addresses
func (r UpdateCommentRequest) Key() posts.Key {
	return posts.Key{PostID: r.CommentID, CreationTime: r.CommentCreationTime}
}
