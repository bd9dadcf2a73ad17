package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Delver/internal/core/posts"
)

type commentService struct {
	repo    posts.Repository
	remover *posts.Remover
	logger  *slog.Logger
}

// NewCommentService creates a comment service over repo.
// roles may be nil; deletes are then author-only.
func NewCommentService(repo posts.Repository, roles posts.RoleResolver, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:    repo,
		remover: posts.NewRemover(repo, roles, logger),
		logger:  logger,
	}
}

// UpdateComment replaces a comment's body.
// Flow:
// 1. Validate key and body
// 2. Fetch the comment (not found: no write is attempted)
// 3. Check authorship
// 4. Conditional write guarded on existence and author
func (s *commentService) UpdateComment(ctx context.Context, username string, req UpdateCommentRequest) (*posts.Post, error) {
	// 1. Validate
	key := req.Key()
	if !key.Valid() {
		return nil, posts.NewValidationError("comment_id", "comment_id and comment_creation_time are required")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, posts.NewValidationError("username", "username is required")
	}
	body, err := posts.NormalizeBody(req.Body)
	if err != nil {
		return nil, err
	}

	// 2. Fetch
	comment, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCommentNotFound, key.PostID)
		}
		return nil, posts.Upstream("comment store", err)
	}

	// 3. Authorize
	if !posts.CanMutate(posts.Actor{Username: username}, comment, posts.ActionUpdate) {
		s.logger.Info("comment update rejected", "comment_id", key.PostID, "user", username, "author", comment.WrittenBy)
		return nil, ErrNotAuthorized
	}

	// 4. Write
	if err := s.repo.UpdateBody(ctx, key, username, body); err != nil {
		if errors.Is(err, posts.ErrNotFound) || errors.Is(err, posts.ErrPreconditionFailed) {
			return nil, &posts.UpdateError{Key: key, Err: ErrConcurrentModification}
		}
		return nil, posts.Upstream("comment store", err)
	}

	s.logger.Info("comment updated", "comment_id", key.PostID, "user", username)
	comment.Body = body
	return comment.Normalize(), nil
}

// DeleteComment removes a comment and detaches its replies
func (s *commentService) DeleteComment(ctx context.Context, username string, key posts.Key) error {
	return s.remover.Remove(ctx, username, key, "comment")
}

// GetCommentsSorted lists comments under parentID oldest first
func (s *commentService) GetCommentsSorted(ctx context.Context, parentID string, page int) ([]*posts.Post, error) {
	parentID = strings.TrimSpace(parentID)
	if parentID == "" {
		return nil, posts.NewValidationError("id", "parent id is required")
	}
	if page < 1 {
		return nil, posts.NewValidationError("page", "page must be a positive integer")
	}

	list, err := s.repo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, posts.Upstream("comment store", err)
	}
	posts.SortByCreation(list, false)
	return posts.Paginate(list, page, posts.CommentsPageSize, "comments")
}
