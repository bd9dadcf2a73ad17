package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// CreatePost validates and stores a new top-level post.
	// The author starts out in liked_by.
	CreatePost(ctx context.Context, username string, req CreatePostRequest) (*Post, error)

	// CreateReply stores a reply under parentID.
	// Returns NotFoundError if the parent does not exist.
	CreateReply(ctx context.Context, username, parentID string, req CreateReplyRequest) (*Post, error)

	// GetPost returns the post with the given partition key
	GetPost(ctx context.Context, postID string) (*Post, error)

	// DeletePost removes the post at key if username is its author or an admin.
	// Direct children are re-parented to DeletedParent first.
	DeletePost(ctx context.Context, username string, key Key) error

	// DeletePostByID resolves postID to its key and deletes it like DeletePost
	DeletePostByID(ctx context.Context, username, postID string) error

	// GetPostsSorted returns the first PostsPageSize*page top-level posts, newest first
	GetPostsSorted(ctx context.Context, page int) ([]*Post, error)

	// GetPostsByAuthor returns every post written by username, newest first
	GetPostsByAuthor(ctx context.Context, username string) ([]*Post, error)
}

// Repository is the store contract for posts and comments.
// Every mutation is a single conditional write on one item.
type Repository interface {
	// Get returns the item at key, or ErrNotFound
	Get(ctx context.Context, key Key) (*Post, error)

	// GetByID returns the item with the given partition key, or ErrNotFound.
	// If several sort keys exist the earliest wins.
	GetByID(ctx context.Context, postID string) (*Post, error)

	// Create inserts the post, failing with ErrAlreadyExists if the key is taken
	Create(ctx context.Context, post *Post) error

	// UpdateBody sets body on the item at key.
	// Precondition: the item exists and is written by author.
	UpdateBody(ctx context.Context, key Key, author, body string) error

	// ApplyReaction moves username from reaction state from to state to.
	// Precondition: the item exists and username's membership still matches from.
	ApplyReaction(ctx context.Context, key Key, username string, from, to Reaction) error

	// ReparentChild sets parent_id on the item at key.
	// Precondition: the item exists and parent_id equals expectedParent.
	ReparentChild(ctx context.Context, key Key, expectedParent, newParent string) error

	// Delete removes the item at key. Precondition: the item exists.
	Delete(ctx context.Context, key Key) error

	// ListByParent returns the direct children of parentID (parent index)
	ListByParent(ctx context.Context, parentID string) ([]*Post, error)

	// ListByAuthor returns posts written by username (author index)
	ListByAuthor(ctx context.Context, username string) ([]*Post, error)

	// ListTopLevel returns posts without a parent_id
	ListTopLevel(ctx context.Context) ([]*Post, error)
}

// RoleResolver looks up a user's role from the user directory
type RoleResolver interface {
	IsAdmin(ctx context.Context, username string) (bool, error)
}
