package api

import (
	"testing"

	"vidshare/backend/model"

	"github.com/stretchr/testify/assert"
)

func TestReactionTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		want    string
		remove  bool
		exp     reactionChange
	}{
		{
			name: "first like",
			want: model.ReactionLike,
			exp:  reactionChange{op: reactInsert, newType: "like", likes: 1},
		},
		{
			name: "first dislike",
			want: model.ReactionDislike,
			exp:  reactionChange{op: reactInsert, newType: "dislike", dislikes: 1},
		},
		{
			name:    "like again toggles off",
			current: model.ReactionLike,
			want:    model.ReactionLike,
			exp:     reactionChange{op: reactDelete, likes: -1},
		},
		{
			name:    "dislike again toggles off",
			current: model.ReactionDislike,
			want:    model.ReactionDislike,
			exp:     reactionChange{op: reactDelete, dislikes: -1},
		},
		{
			name:    "like while disliked flips both counters",
			current: model.ReactionDislike,
			want:    model.ReactionLike,
			exp:     reactionChange{op: reactUpdate, newType: "like", likes: 1, dislikes: -1},
		},
		{
			name:    "dislike while liked flips both counters",
			current: model.ReactionLike,
			want:    model.ReactionDislike,
			exp:     reactionChange{op: reactUpdate, newType: "dislike", likes: -1, dislikes: 1},
		},
		{
			name:    "unlike removes a like",
			current: model.ReactionLike,
			want:    model.ReactionLike,
			remove:  true,
			exp:     reactionChange{op: reactDelete, likes: -1},
		},
		{
			name:    "unlike without a like is a noop",
			current: "",
			want:    model.ReactionLike,
			remove:  true,
			exp:     reactionChange{op: reactNoop},
		},
		{
			name:    "unlike while disliked is a noop",
			current: model.ReactionDislike,
			want:    model.ReactionLike,
			remove:  true,
			exp:     reactionChange{op: reactNoop},
		},
		{
			name:    "undislike removes a dislike",
			current: model.ReactionDislike,
			want:    model.ReactionDislike,
			remove:  true,
			exp:     reactionChange{op: reactDelete, dislikes: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reactionTransition(tt.current, tt.want, tt.remove)
			assert.Equal(t, tt.exp, got)
		})
	}
}

func TestReactionTransitionCountersNeverDriftOnToggle(t *testing.T) {
	// A like followed by a second like must cancel out
	first := reactionTransition("", model.ReactionLike, false)
	second := reactionTransition(model.ReactionLike, model.ReactionLike, false)

	assert.Equal(t, 0, first.likes+second.likes)
	assert.Equal(t, 0, first.dislikes+second.dislikes)
}
