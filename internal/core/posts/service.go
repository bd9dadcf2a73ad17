package posts

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type postService struct {
	repo    Repository
	remover *Remover
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// NewPostService creates a new post service.
// roles may be nil when no user directory is configured; nobody is admin then.
func NewPostService(repo Repository, roles RoleResolver, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:    repo,
		remover: NewRemover(repo, roles, logger),
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Timestamp formats t as a creation_time sort key
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// CreatePost creates a new top-level post
// Flow:
// 1. Validate author, title and body
// 2. Assign id and timestamp; the author auto-likes
// 3. Persist
func (s *postService) CreatePost(ctx context.Context, username string, req CreatePostRequest) (*Post, error) {
	// 1. Validate
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, NewValidationError("written_by", "username is required")
	}
	title, err := NormalizeTitle(req.Title)
	if err != nil {
		return nil, err
	}
	body, err := NormalizeBody(req.Body)
	if err != nil {
		return nil, err
	}

	// 2. Build
	post := &Post{
		PostID:       s.newID(),
		CreationTime: Timestamp(s.now()),
		Title:        title,
		Body:         body,
		WrittenBy:    username,
		LikedBy:      []string{username},
		DislikedBy:   []string{},
	}

	// 3. Persist
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, Upstream("post store", err)
	}

	s.logger.Info("post created", "post_id", post.PostID, "author", username)
	return post, nil
}

// CreateReply creates a reply under parentID. The parent is not modified;
// children are found through the parent index.
func (s *postService) CreateReply(ctx context.Context, username, parentID string, req CreateReplyRequest) (*Post, error) {
	username = strings.TrimSpace(username)
	parentID = strings.TrimSpace(parentID)
	if username == "" {
		return nil, NewValidationError("written_by", "username is required")
	}
	if parentID == "" {
		return nil, NewValidationError("parent_id", "parent_id is required")
	}
	body, err := NormalizeBody(req.Body)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewNotFoundError("parent post", parentID)
		}
		return nil, Upstream("post store", err)
	}

	reply := &Post{
		PostID:       s.newID(),
		CreationTime: Timestamp(s.now()),
		Body:         body,
		WrittenBy:    username,
		ParentID:     parentID,
		LikedBy:      []string{},
		DislikedBy:   []string{},
	}
	if err := s.repo.Create(ctx, reply); err != nil {
		return nil, Upstream("post store", err)
	}

	s.logger.Info("reply created", "post_id", reply.PostID, "parent_id", parentID, "author", username)
	return reply, nil
}

// GetPost returns a post by its partition key
func (s *postService) GetPost(ctx context.Context, postID string) (*Post, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, NewValidationError("post_id", "post_id is required")
	}
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NewNotFoundError("post", postID)
		}
		return nil, Upstream("post store", err)
	}
	return post.Normalize(), nil
}

// DeletePost deletes a post by composite key
func (s *postService) DeletePost(ctx context.Context, username string, key Key) error {
	return s.remover.Remove(ctx, username, key, "post")
}

// DeletePostByID deletes a post by partition key
func (s *postService) DeletePostByID(ctx context.Context, username, postID string) error {
	return s.remover.RemoveByID(ctx, username, postID, "post")
}

// GetPostsSorted returns top-level posts newest first, PostsPageSize per page
func (s *postService) GetPostsSorted(ctx context.Context, page int) ([]*Post, error) {
	if page < 1 {
		return nil, NewValidationError("page", "page must be a positive integer")
	}
	list, err := s.repo.ListTopLevel(ctx)
	if err != nil {
		return nil, Upstream("post store", err)
	}
	SortByCreation(list, true)
	return Paginate(list, page, PostsPageSize, "posts")
}

// GetPostsByAuthor returns all posts and replies by username, newest first
func (s *postService) GetPostsByAuthor(ctx context.Context, username string) ([]*Post, error) {
	if strings.TrimSpace(username) == "" {
		return nil, NewValidationError("username", "username is required")
	}
	list, err := s.repo.ListByAuthor(ctx, username)
	if err != nil {
		return nil, Upstream("post store", err)
	}
	SortByCreation(list, true)
	return list, nil
}
