package reactions

import "errors"

var (
	// ErrInvalidAction indicates the action is neither "like" nor "dislike"
	ErrInvalidAction = errors.New("invalid action: must be 'like' or 'dislike'")
)
