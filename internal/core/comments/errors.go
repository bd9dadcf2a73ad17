package comments

import (
	"fmt"

	"Delver/internal/core/posts"
)

// Comments share the post error taxonomy so handlers classify both with
// posts.KindOf. These wrap the post sentinels with comment wording.
var (
	// ErrCommentNotFound indicates the requested comment doesn't exist
	ErrCommentNotFound = fmt.Errorf("comment: %w", posts.ErrNotFound)

	// ErrNotAuthorized indicates the caller is not the comment's author
	ErrNotAuthorized = fmt.Errorf("comment: %w", posts.ErrNotAuthorized)

	// ErrConcurrentModification indicates the comment changed or vanished
	// between the read and the conditional write
	ErrConcurrentModification = fmt.Errorf("comment: %w", posts.ErrConcurrentModification)
)
