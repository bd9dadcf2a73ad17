package posts

import (
	"slices"
	"time"
)

// TimeLayout is the ISO-8601 layout used for creation_time sort keys.
// Millisecond precision in UTC keeps lexical and chronological order equal.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// DeletedParent marks a child whose parent post was removed.
const DeletedParent = "deleted"

// Page sizes for sorted retrieval
const (
	PostsPageSize    = 4
	CommentsPageSize = 8
)

// Key is the composite store identity of a post or comment.
// Both fields are required for point reads and writes.
type Key struct {
	PostID       string `json:"post_id" dynamodbav:"post_id"`
	CreationTime string `json:"creation_time" dynamodbav:"creation_time"`
}

// Valid reports whether both key components are present
func (k Key) Valid() bool {
	return k.PostID != "" && k.CreationTime != ""
}

func (k Key) String() string {
	return k.PostID + "@" + k.CreationTime
}

// Post is a forum post or a reply to one.
// Replies carry ParentID; top-level posts leave it empty.
type Post struct {
	PostID       string   `json:"post_id" dynamodbav:"post_id" db:"post_id"`
	CreationTime string   `json:"creation_time" dynamodbav:"creation_time" db:"creation_time"`
	Title        string   `json:"title,omitempty" dynamodbav:"title,omitempty" db:"title"`
	Body         string   `json:"body" dynamodbav:"body" db:"body"`
	WrittenBy    string   `json:"written_by" dynamodbav:"written_by" db:"written_by"`
	ParentID     string   `json:"parent_id,omitempty" dynamodbav:"parent_id,omitempty" db:"parent_id"`
	LikedBy      []string `json:"liked_by" dynamodbav:"liked_by,stringset,omitempty" db:"liked_by"`
	DislikedBy   []string `json:"disliked_by" dynamodbav:"disliked_by,stringset,omitempty" db:"disliked_by"`
}

// Key returns the composite identity of the post
func (p *Post) Key() Key {
	return Key{PostID: p.PostID, CreationTime: p.CreationTime}
}

// IsReply reports whether the post hangs under a parent (live or deleted)
func (p *Post) IsReply() bool {
	return p.ParentID != ""
}

// CreatedAt parses CreationTime. Zero time on malformed values.
func (p *Post) CreatedAt() time.Time {
	t, err := time.Parse(time.RFC3339Nano, p.CreationTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Normalize replaces nil reaction sets with empty ones so the post
// serializes with [] instead of null.
func (p *Post) Normalize() *Post {
	if p.LikedBy == nil {
		p.LikedBy = []string{}
	}
	if p.DislikedBy == nil {
		p.DislikedBy = []string{}
	}
	return p
}

// Clone returns a deep copy of the post
func (p *Post) Clone() *Post {
	c := *p
	c.LikedBy = slices.Clone(p.LikedBy)
	c.DislikedBy = slices.Clone(p.DislikedBy)
	return &c
}

// Reaction is a user's standing on a single post
type Reaction int

const (
	ReactionNeutral Reaction = iota
	ReactionLiked
	ReactionDisliked
)

func (r Reaction) String() string {
	switch r {
	case ReactionLiked:
		return "liked"
	case ReactionDisliked:
		return "disliked"
	default:
		return "neutral"
	}
}

// ReactionOf returns the username's current reaction to the post.
// liked_by wins if the sets were ever found overlapping.
func (p *Post) ReactionOf(username string) Reaction {
	switch {
	case slices.Contains(p.LikedBy, username):
		return ReactionLiked
	case slices.Contains(p.DislikedBy, username):
		return ReactionDisliked
	default:
		return ReactionNeutral
	}
}

// WithReaction returns a copy of the post with username moved into the
// set matching r and removed from the other one.
func (p *Post) WithReaction(username string, r Reaction) *Post {
	c := p.Clone()
	c.LikedBy = slices.DeleteFunc(c.LikedBy, func(u string) bool { return u == username })
	c.DislikedBy = slices.DeleteFunc(c.DislikedBy, func(u string) bool { return u == username })
	switch r {
	case ReactionLiked:
		c.LikedBy = append(c.LikedBy, username)
	case ReactionDisliked:
		c.DislikedBy = append(c.DislikedBy, username)
	}
	return c
}

// View is the API representation of a post with reaction counts
type View struct {
	*Post
	BodyHTML string `json:"body_html"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// NewView builds a View from a post
func NewView(p *Post) *View {
	p.Normalize()
	return &View{
		Post:     p,
		BodyHTML: RenderBody(p.Body),
		Likes:    len(p.LikedBy),
		Dislikes: len(p.DislikedBy),
	}
}

// NewViews builds views for a slice of posts
func NewViews(list []*Post) []*View {
	views := make([]*View, 0, len(list))
	for _, p := range list {
		views = append(views, NewView(p))
	}
	return views
}

// CreatePostRequest is the input for a new top-level post
type CreatePostRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// CreateReplyRequest is the input for a reply under a parent post
type CreateReplyRequest struct {
	Body string `json:"body" validate:"required"`
}
