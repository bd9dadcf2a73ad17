package posts

import (
	"context"
	"errors"
	"log/slog"
)

// Remover deletes posts or comments after an author/admin check and
// detaches their direct children. Posts and comments share it so both
// delete paths enforce the same rules.
type Remover struct {
	repo   Repository
	roles  RoleResolver
	logger *slog.Logger
}

// NewRemover creates a Remover. roles may be nil, in which case nobody is admin.
func NewRemover(repo Repository, roles RoleResolver, logger *slog.Logger) *Remover {
	if logger == nil {
		logger = slog.Default()
	}
	return &Remover{repo: repo, roles: roles, logger: logger}
}

// Remove deletes the item at key on behalf of username.
// Flow:
// 1. Fetch the target (NotFoundError if absent)
// 2. Authorize: author, or admin via the role resolver
// 3. Mark every direct child's parent_id as DeletedParent
// 4. Delete the record with an existence precondition
func (r *Remover) Remove(ctx context.Context, username string, key Key, resource string) error {
	if !key.Valid() {
		return NewValidationError("key", resource+" id and creation_time are required")
	}
	if username == "" {
		return NewValidationError("username", "username is required")
	}

	// 1. Fetch
	target, err := r.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return NewNotFoundError(resource, key.PostID)
		}
		return Upstream("post store", err)
	}

	// 2. Authorize
	return r.remove(ctx, username, target, resource)
}

// RemoveByID resolves postID to its key before removing it
func (r *Remover) RemoveByID(ctx context.Context, username, postID, resource string) error {
	if postID == "" {
		return NewValidationError("post_id", "post_id is required")
	}
	target, err := r.repo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return NewNotFoundError(resource, postID)
		}
		return Upstream("post store", err)
	}
	return r.remove(ctx, username, target, resource)
}

func (r *Remover) remove(ctx context.Context, username string, target *Post, resource string) error {
	actor := Actor{Username: username}
	if target.WrittenBy != username && r.roles != nil {
		isAdmin, err := r.roles.IsAdmin(ctx, username)
		if err != nil {
			return &UpstreamError{Collaborator: "user directory", Err: err}
		}
		actor.IsAdmin = isAdmin
	}
	if !CanMutate(actor, target, ActionDelete) {
		r.logger.Info("delete rejected", "resource", resource, "key", target.Key().String(), "user", username)
		return ErrNotAuthorized
	}

	key := target.Key()

	// 3. Detach children before the record goes away so none ever points
	// at a missing parent.
	children, err := r.repo.ListByParent(ctx, target.PostID)
	if err != nil {
		return &DeletionError{Key: key, Stage: "children", Err: err}
	}
	for _, child := range children {
		err := r.repo.ReparentChild(ctx, child.Key(), target.PostID, DeletedParent)
		switch {
		case err == nil:
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrPreconditionFailed):
			// Removed or re-parented concurrently; it no longer references target.
			r.logger.Warn("child changed during cascade", "parent", target.PostID, "child", child.PostID)
		default:
			return &DeletionError{Key: key, Stage: "children", Err: err}
		}
	}

	// 4. Delete the record itself
	if err := r.repo.Delete(ctx, key); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPreconditionFailed) {
			err = ErrConcurrentModification
		}
		return &DeletionError{Key: key, Stage: "record", Err: err}
	}

	r.logger.Info("deleted", "resource", resource, "key", key.String(), "by", username, "children", len(children))
	return nil
}
