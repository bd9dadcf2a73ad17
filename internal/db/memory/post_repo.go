package memory

import (
	"context"
	"sync"

	"Delver/internal/core/posts"
)

// PostRepository is an in-memory posts.Repository.
// Each method holds the lock for its whole read-check-write, which gives
// the same single-item atomicity the document stores provide.
type PostRepository struct {
	mu       sync.RWMutex
	items    map[posts.Key]*posts.Post
	byParent map[string]map[posts.Key]struct{}
	byAuthor map[string]map[posts.Key]struct{}
}

// NewPostRepository creates an empty repository
func NewPostRepository() *PostRepository {
	return &PostRepository{
		items:    make(map[posts.Key]*posts.Post),
		byParent: make(map[string]map[posts.Key]struct{}),
		byAuthor: make(map[string]map[posts.Key]struct{}),
	}
}

var _ posts.Repository = (*PostRepository)(nil)

func (r *PostRepository) Get(_ context.Context, key posts.Key) (*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[key]
	if !ok {
		return nil, posts.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *PostRepository) GetByID(_ context.Context, postID string) (*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *posts.Post
	for key, p := range r.items {
		if key.PostID != postID {
			continue
		}
		if found == nil || key.CreationTime < found.CreationTime {
			found = p
		}
	}
	if found == nil {
		return nil, posts.ErrNotFound
	}
	return found.Clone(), nil
}

func (r *PostRepository) Create(_ context.Context, post *posts.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := post.Key()
	if _, exists := r.items[key]; exists {
		return posts.ErrAlreadyExists
	}
	r.items[key] = post.Clone()
	addIndex(r.byAuthor, post.WrittenBy, key)
	if post.ParentID != "" {
		addIndex(r.byParent, post.ParentID, key)
	}
	return nil
}

func (r *PostRepository) UpdateBody(_ context.Context, key posts.Key, author, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[key]
	if !ok {
		return posts.ErrNotFound
	}
	if p.WrittenBy != author {
		return posts.ErrPreconditionFailed
	}
	p.Body = body
	return nil
}

func (r *PostRepository) ApplyReaction(_ context.Context, key posts.Key, username string, from, to posts.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[key]
	if !ok {
		return posts.ErrNotFound
	}
	if p.ReactionOf(username) != from {
		return posts.ErrPreconditionFailed
	}
	r.items[key] = p.WithReaction(username, to)
	return nil
}

func (r *PostRepository) ReparentChild(_ context.Context, key posts.Key, expectedParent, newParent string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[key]
	if !ok {
		return posts.ErrNotFound
	}
	if p.ParentID != expectedParent {
		return posts.ErrPreconditionFailed
	}
	removeIndex(r.byParent, p.ParentID, key)
	p.ParentID = newParent
	if newParent != "" {
		addIndex(r.byParent, newParent, key)
	}
	return nil
}

func (r *PostRepository) Delete(_ context.Context, key posts.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[key]
	if !ok {
		return posts.ErrNotFound
	}
	delete(r.items, key)
	removeIndex(r.byAuthor, p.WrittenBy, key)
	removeIndex(r.byParent, p.ParentID, key)
	return nil
}

func (r *PostRepository) ListByParent(_ context.Context, parentID string) ([]*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(r.byParent[parentID]), nil
}

func (r *PostRepository) ListByAuthor(_ context.Context, username string) ([]*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(r.byAuthor[username]), nil
}

func (r *PostRepository) ListTopLevel(_ context.Context) ([]*posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*posts.Post, 0)
	for _, p := range r.items {
		if p.ParentID == "" {
			list = append(list, p.Clone())
		}
	}
	return list, nil
}

func (r *PostRepository) collect(keys map[posts.Key]struct{}) []*posts.Post {
	list := make([]*posts.Post, 0, len(keys))
	for key := range keys {
		if p, ok := r.items[key]; ok {
			list = append(list, p.Clone())
		}
	}
	return list
}

func addIndex(index map[string]map[posts.Key]struct{}, value string, key posts.Key) {
	set, ok := index[value]
	if !ok {
		set = make(map[posts.Key]struct{})
		index[value] = set
	}
	set[key] = struct{}{}
}

func removeIndex(index map[string]map[posts.Key]struct{}, value string, key posts.Key) {
	set, ok := index[value]
	if !ok {
		return
	}
	delete(set, key)
	if len(set) == 0 {
		delete(index, value)
	}
}
