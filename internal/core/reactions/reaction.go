package reactions

import "Delver/internal/core/posts"

// Action is a like or dislike signal from a user
type Action string

const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
)

// Valid reports whether a is a known action
func (a Action) Valid() bool {
	return a == ActionLike || a == ActionDislike
}

// Change describes which branch of the state machine was taken
type Change string

const (
	// ChangeAdded is a first-time like or dislike
	ChangeAdded Change = "added"
	// ChangeRemoved is an unlike or undislike
	ChangeRemoved Change = "removed"
	// ChangeSwitched moves the user from one set to the other
	ChangeSwitched Change = "switched"
)

// Outcome is the result of a successful like or dislike
type Outcome struct {
	PostID string         `json:"post_id"`
	Action Action         `json:"action"`
	From   posts.Reaction `json:"-"`
	To     posts.Reaction `json:"-"`
	Change Change         `json:"change"`
}

// State returns the user's reaction after the action, as a string
func (o *Outcome) State() string {
	return o.To.String()
}

// Message is the human-readable summary used by the HTTP layer
func (o *Outcome) Message() string {
	switch {
	case o.Change == ChangeSwitched && o.To == posts.ReactionLiked:
		return "Post switched from disliked to liked."
	case o.Change == ChangeSwitched:
		return "Post switched from liked to disliked."
	case o.Action == ActionLike && o.Change == ChangeAdded:
		return "Post liked successfully."
	case o.Action == ActionLike:
		return "Post unliked successfully."
	case o.Change == ChangeAdded:
		return "Post disliked successfully."
	default:
		return "Post undisliked successfully."
	}
}

// Next is the like/dislike transition table.
//
//	current   | like     | dislike
//	neutral   | liked    | disliked
//	liked     | neutral  | disliked
//	disliked  | liked    | neutral
func Next(current posts.Reaction, action Action) posts.Reaction {
	target := posts.ReactionLiked
	if action == ActionDislike {
		target = posts.ReactionDisliked
	}
	if current == target {
		return posts.ReactionNeutral
	}
	return target
}

// ChangeOf classifies a transition
func ChangeOf(from, to posts.Reaction) Change {
	switch {
	case from == posts.ReactionNeutral:
		return ChangeAdded
	case to == posts.ReactionNeutral:
		return ChangeRemoved
	default:
		return ChangeSwitched
	}
}
