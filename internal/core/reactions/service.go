package reactions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Delver/internal/core/posts"
)

type reactionService struct {
	repo   posts.Repository
	logger *slog.Logger
}

// NewService creates a new reaction service
func NewService(repo posts.Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &reactionService{repo: repo, logger: logger}
}

func (s *reactionService) Like(ctx context.Context, username, postID string) (*Outcome, error) {
	return s.React(ctx, username, postID, ActionLike)
}

func (s *reactionService) Dislike(ctx context.Context, username, postID string) (*Outcome, error) {
	return s.React(ctx, username, postID, ActionDislike)
}

// React applies action to the user's current state on the post.
// Flow:
// 1. Validate input
// 2. Read the post to learn the user's current state
// 3. Compute the target state from the transition table
// 4. Write both set memberships in one conditional update guarded on
// the state read in step 2
func (s *reactionService) React(ctx context.Context, username, postID string, action Action) (*Outcome, error) {
	// 1. Validate
	if !action.Valid() {
		return nil, posts.NewValidationError("action", ErrInvalidAction.Error())
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, posts.NewValidationError("username", "username is required")
	}
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return nil, posts.NewValidationError("post_id", "post_id is required.")
	}

	// 2. Read
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, posts.ErrNotFound) {
			return nil, posts.NewNotFoundError("post", postID)
		}
		return nil, posts.Upstream("post store", err)
	}

	// 3. Transition
	from := post.ReactionOf(username)
	to := Next(from, action)

	// 4. Conditional write
	if err := s.repo.ApplyReaction(ctx, post.Key(), username, from, to); err != nil {
		switch {
		case errors.Is(err, posts.ErrNotFound):
			// Deleted between the read and the write
			return nil, posts.NewNotFoundError("post", postID)
		case errors.Is(err, posts.ErrPreconditionFailed):
			s.logger.Warn("reaction lost a race", "post_id", postID, "user", username, "action", string(action))
			return nil, &posts.UpdateError{Key: post.Key(), Err: posts.ErrConcurrentModification}
		default:
			return nil, &posts.UpdateError{Key: post.Key(), Err: fmt.Errorf("failed to apply %s: %w", action, err)}
		}
	}

	outcome := &Outcome{
		PostID: postID,
		Action: action,
		From:   from,
		To:     to,
		Change: ChangeOf(from, to),
	}
	s.logger.Info("reaction applied",
		"post_id", postID,
		"user", username,
		"from", from.String(),
		"to", to.String(),
		"change", string(outcome.Change))
	return outcome, nil
}
