package posts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	post := &Post{PostID: "p1", WrittenBy: "alice"}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		want   bool
	}{
		{"author updates", Actor{Username: "alice"}, ActionUpdate, true},
		{"author deletes", Actor{Username: "alice"}, ActionDelete, true},
		{"stranger updates", Actor{Username: "mallory"}, ActionUpdate, false},
		{"stranger deletes", Actor{Username: "mallory"}, ActionDelete, false},
		{"admin deletes", Actor{Username: "admin_user", IsAdmin: true}, ActionDelete, true},
		{"admin cannot edit others' text", Actor{Username: "admin_user", IsAdmin: true}, ActionUpdate, false},
		{"anonymous", Actor{}, ActionDelete, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutate(tt.actor, post, tt.action))
		})
	}

	assert.False(t, CanMutate(Actor{Username: "alice"}, nil, ActionDelete))
}

func TestKindOf(t *testing.T) {
	key := Key{PostID: "p1", CreationTime: "t"}

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindSuccess},
		{"validation", NewValidationError("body", "required"), KindInvalid},
		{"wrapped validation", fmt.Errorf("create: %w", NewValidationError("body", "required")), KindInvalid},
		{"not found", NewNotFoundError("comment", "c1"), KindNotFound},
		{"bare not found", ErrNotFound, KindNotFound},
		{"unauthorized", ErrNotAuthorized, KindUnauthorized},
		{"range", &RangeError{Page: 3, PageSize: 4, Total: 5}, KindOutOfRange},
		{"update wrapping not found", &UpdateError{Key: key, Err: ErrNotFound}, KindFailure},
		{"deletion", &DeletionError{Key: key, Stage: "record", Err: ErrConcurrentModification}, KindFailure},
		{"upstream", Upstream("post store", errors.New("timeout")), KindFailure},
		{"unknown", errors.New("boom"), KindFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestUpstreamKeepsClassifiedErrors(t *testing.T) {
	valErr := NewValidationError("title", "required")
	assert.Same(t, valErr, Upstream("post store", valErr))
	assert.Nil(t, Upstream("post store", nil))

	var up *UpstreamError
	assert.ErrorAs(t, Upstream("post store", errors.New("dial tcp")), &up)
	assert.Equal(t, "post store", up.Collaborator)
}

func TestResultOf(t *testing.T) {
	assert.True(t, ResultOf(nil).OK())

	res := ResultOf(NewNotFoundError("comment", "c1"))
	assert.Equal(t, KindNotFound, res.Kind)
	assert.Equal(t, "comment not found: c1", res.Message)
	assert.Equal(t, "NotFound", res.Kind.String())
}
