package posts

// Action is a mutation a caller wants to perform on a post
type Action int

const (
	ActionUpdate Action = iota
	ActionDelete
)

// Actor is the caller of a mutating operation
type Actor struct {
	Username string
	IsAdmin  bool
}

// CanMutate reports whether actor may perform action on post.
// Authors may update and delete; admins may only delete.
func CanMutate(actor Actor, post *Post, action Action) bool {
	if actor.Username == "" || post == nil {
		return false
	}
	if post.WrittenBy == actor.Username {
		return true
	}
	return action == ActionDelete && actor.IsAdmin
}
