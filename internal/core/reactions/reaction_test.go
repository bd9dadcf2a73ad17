package reactions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Delver/internal/core/posts"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from   posts.Reaction
		action Action
		want   posts.Reaction
		change Change
	}{
		{posts.ReactionNeutral, ActionLike, posts.ReactionLiked, ChangeAdded},
		{posts.ReactionNeutral, ActionDislike, posts.ReactionDisliked, ChangeAdded},
		{posts.ReactionLiked, ActionLike, posts.ReactionNeutral, ChangeRemoved},
		{posts.ReactionLiked, ActionDislike, posts.ReactionDisliked, ChangeSwitched},
		{posts.ReactionDisliked, ActionLike, posts.ReactionLiked, ChangeSwitched},
		{posts.ReactionDisliked, ActionDislike, posts.ReactionNeutral, ChangeRemoved},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_"+string(tt.action), func(t *testing.T) {
			got := Next(tt.from, tt.action)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.change, ChangeOf(tt.from, got))
		})
	}
}

func TestOutcomeMessage(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Outcome{Action: ActionLike, From: posts.ReactionNeutral, To: posts.ReactionLiked, Change: ChangeAdded}, "Post liked successfully."},
		{Outcome{Action: ActionLike, From: posts.ReactionLiked, To: posts.ReactionNeutral, Change: ChangeRemoved}, "Post unliked successfully."},
		{Outcome{Action: ActionLike, From: posts.ReactionDisliked, To: posts.ReactionLiked, Change: ChangeSwitched}, "Post switched from disliked to liked."},
		{Outcome{Action: ActionDislike, From: posts.ReactionNeutral, To: posts.ReactionDisliked, Change: ChangeAdded}, "Post disliked successfully."},
		{Outcome{Action: ActionDislike, From: posts.ReactionDisliked, To: posts.ReactionNeutral, Change: ChangeRemoved}, "Post undisliked successfully."},
		{Outcome{Action: ActionDislike, From: posts.ReactionLiked, To: posts.ReactionDisliked, Change: ChangeSwitched}, "Post switched from liked to disliked."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.outcome.Message())
	}
}

func TestActionValid(t *testing.T) {
	assert.True(t, ActionLike.Valid())
	assert.True(t, ActionDislike.Valid())
	assert.False(t, Action("upvote").Valid())
}
