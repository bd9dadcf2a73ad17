package comments_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Delver/internal/core/comments"
	"Delver/internal/core/posts"
	"Delver/internal/core/users"
	"Delver/internal/db/memory"
)

// countingRepo records writes so tests can assert none happened
type countingRepo struct {
	*memory.PostRepository
	writes int
}

func (r *countingRepo) UpdateBody(ctx context.Context, key posts.Key, author, body string) error {
	r.writes++
	return r.PostRepository.UpdateBody(ctx, key, author, body)
}

func (r *countingRepo) Delete(ctx context.Context, key posts.Key) error {
	r.writes++
	return r.PostRepository.Delete(ctx, key)
}

func (r *countingRepo) ReparentChild(ctx context.Context, key posts.Key, expected, parent string) error {
	r.writes++
	return r.PostRepository.ReparentChild(ctx, key, expected, parent)
}

type fixture struct {
	repo     *countingRepo
	posts    posts.Service
	comments comments.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := &countingRepo{PostRepository: memory.NewPostRepository()}
	userRepo := memory.NewUserRepository(
		&users.User{Username: "alice", Role: users.RoleUser},
		&users.User{Username: "mallory", Role: users.RoleUser},
		&users.User{Username: "admin_user", Role: users.RoleAdmin},
	)
	roles := users.NewUserService(userRepo, time.Minute, nil)
	return &fixture{
		repo:     repo,
		posts:    posts.NewPostService(repo, roles, nil),
		comments: comments.NewCommentService(repo, roles, nil),
	}
}

func TestScenario_MalloryCannotUpdateAdminCanDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p1, err := f.posts.CreatePost(ctx, "alice", posts.CreatePostRequest{Title: "P1", Body: "original"})
	require.NoError(t, err)

	_, err = f.comments.UpdateComment(ctx, "mallory", comments.UpdateCommentRequest{
		CommentID:           p1.PostID,
		CommentCreationTime: p1.CreationTime,
		Body:                "defaced",
	})
	require.Error(t, err)
	assert.Equal(t, posts.KindUnauthorized, posts.ResultOf(err).Kind)
	assert.Equal(t, 0, f.repo.writes)

	stored, err := f.repo.Get(ctx, p1.Key())
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Body)

	err = f.comments.DeleteComment(ctx, "mallory", p1.Key())
	assert.Equal(t, posts.KindUnauthorized, posts.KindOf(err))
	assert.Equal(t, 0, f.repo.writes)

	err = f.posts.DeletePost(ctx, "admin_user", p1.Key())
	require.NoError(t, err)
	_, err = f.repo.Get(ctx, p1.Key())
	assert.ErrorIs(t, err, posts.ErrNotFound)
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p1, err := f.posts.CreatePost(ctx, "alice", posts.CreatePostRequest{Title: "P1", Body: "body"})
	require.NoError(t, err)
	reply, err := f.posts.CreateReply(ctx, "alice", p1.PostID, posts.CreateReplyRequest{Body: "first draft"})
	require.NoError(t, err)

	updated, err := f.comments.UpdateComment(ctx, "alice", comments.UpdateCommentRequest{
		CommentID:           reply.PostID,
		CommentCreationTime: reply.CreationTime,
		Body:                "second draft",
	})
	require.NoError(t, err)
	assert.Equal(t, "second draft", updated.Body)

	stored, err := f.repo.Get(ctx, reply.Key())
	require.NoError(t, err)
	assert.Equal(t, "second draft", stored.Body)
	assert.Equal(t, p1.PostID, stored.ParentID)
}

func TestUpdateComment_NeverExisted(t *testing.T) {
	f := newFixture(t)

	_, err := f.comments.UpdateComment(context.Background(), "alice", comments.UpdateCommentRequest{
		CommentID:           "no-such-comment",
		CommentCreationTime: "2024-01-01T00:00:00.000Z",
		Body:                "hello",
	})
	require.Error(t, err)
	assert.True(t, posts.IsNotFound(err))
	assert.ErrorIs(t, err, comments.ErrCommentNotFound)
	assert.Equal(t, 0, f.repo.writes)
}

func TestUpdateComment_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  comments.UpdateCommentRequest
	}{
		{"missing id", comments.UpdateCommentRequest{CommentCreationTime: "t", Body: "b"}},
		{"missing creation time", comments.UpdateCommentRequest{CommentID: "c", Body: "b"}},
		{"empty body", comments.UpdateCommentRequest{CommentID: "c", CommentCreationTime: "t", Body: " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.comments.UpdateComment(context.Background(), "alice", tt.req)
			assert.True(t, posts.IsValidationError(err))
		})
	}
}

func TestDeleteComment_CascadeMarksChildren(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p1, err := f.posts.CreatePost(ctx, "alice", posts.CreatePostRequest{Title: "P1", Body: "body"})
	require.NoError(t, err)

	const n = 3
	children := make([]*posts.Post, 0, n)
	for i := 0; i < n; i++ {
		c, err := f.posts.CreateReply(ctx, "mallory", p1.PostID, posts.CreateReplyRequest{Body: fmt.Sprintf("reply %d", i)})
		require.NoError(t, err)
		children = append(children, c)
	}

	require.NoError(t, f.comments.DeleteComment(ctx, "alice", p1.Key()))

	for _, c := range children {
		stored, err := f.repo.Get(ctx, c.Key())
		require.NoError(t, err)
		assert.Equal(t, posts.DeletedParent, stored.ParentID)
	}

	left, err := f.repo.ListByParent(ctx, p1.PostID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestDeleteComment_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.comments.DeleteComment(context.Background(), "alice", posts.Key{PostID: "x", CreationTime: "y"})
	assert.Equal(t, posts.KindNotFound, posts.KindOf(err))
	assert.Equal(t, 0, f.repo.writes)
}

func TestGetCommentsSorted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	parent := &posts.Post{PostID: "p1", CreationTime: "2024-01-01T00:00:00.000Z", Title: "t", Body: "b", WrittenBy: "alice"}
	require.NoError(t, f.repo.Create(ctx, parent))

	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 9; i >= 0; i-- {
		require.NoError(t, f.repo.Create(ctx, &posts.Post{
			PostID:       fmt.Sprintf("c%d", i),
			CreationTime: posts.Timestamp(base.Add(time.Duration(i) * time.Second)),
			Body:         "reply",
			WrittenBy:    "bob",
			ParentID:     "p1",
		}))
	}

	page1, err := f.comments.GetCommentsSorted(ctx, "p1", 1)
	require.NoError(t, err)
	require.Len(t, page1, 8)
	assert.Equal(t, "c0", page1[0].PostID)
	assert.Equal(t, "c7", page1[7].PostID)

	page2, err := f.comments.GetCommentsSorted(ctx, "p1", 2)
	require.NoError(t, err)
	assert.Len(t, page2, 10)

	_, err = f.comments.GetCommentsSorted(ctx, "p1", 3)
	assert.True(t, posts.IsRangeError(err))

	_, err = f.comments.GetCommentsSorted(ctx, "empty", 1)
	assert.True(t, posts.IsNotFound(err))

	_, err = f.comments.GetCommentsSorted(ctx, "p1", 0)
	assert.True(t, posts.IsValidationError(err))
}
