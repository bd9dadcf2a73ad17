package reactions

import "context"

// Service defines the like/dislike operations
type Service interface {
	// Like applies a LikeAction by username on postID
	Like(ctx context.Context, username, postID string) (*Outcome, error)

	// Dislike applies a DislikeAction by username on postID
	Dislike(ctx context.Context, username, postID string) (*Outcome, error)

	// React applies action by username on postID
	React(ctx context.Context, username, postID string, action Action) (*Outcome, error)
}
