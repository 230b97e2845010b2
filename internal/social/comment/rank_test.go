// Copyright (c) 2026 Litho Press. All rights reserved.

package comment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithopress/litho/internal/social/comment"
)

// buildThread returns a small fixed thread for ordering assertions.
//
// Creation times step one minute apart; "mid" carries the highest weight.
func buildThread() []*comment.Comment {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	return []*comment.Comment{
		{
			ID:        "old",
			Body:      "first!",
			Reactions: comment.ReactionTally{Like: 1},
			CreatedAt: base,
		},
		{
			ID:        "mid",
			Body:      "detailed answer",
			Reactions: comment.ReactionTally{Like: 3, Helpful: 2},
			CreatedAt: base.Add(time.Minute),
		},
		{
			ID:        "new",
			Body:      "late reply",
			Reactions: comment.ReactionTally{Funny: 4},
			CreatedAt: base.Add(2 * time.Minute),
		},
	}
}

func orderOf(comments []*comment.Comment) []string {
	ids := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	return ids
}

/*
TestRank_Modes verifies the three sort orders over the same thread.
*/
func TestRank_Modes(t *testing.T) {
	tests := []struct {
		name      string
		mode      comment.SortMode
		wantOrder []string
	}{
		{"newest_descending_created", comment.SortNewest, []string{"new", "mid", "old"}},
		{"oldest_ascending_created", comment.SortOldest, []string{"old", "mid", "new"}},
		// Weights: mid = 2*3+2*2 = 10, new = 4, old = 2.
		{"top_descending_weight", comment.SortTop, []string{"mid", "new", "old"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thread := buildThread()
			comment.Rank(thread, tt.mode)

			assert.Equal(t, tt.wantOrder, orderOf(thread))
		})
	}
}

/*
TestRank_TopTieBreaksNewerFirst checks that equal-weight comments fall back
to descending creation time under the top sort.
*/
func TestRank_TopTieBreaksNewerFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	thread := []*comment.Comment{
		{ID: "earlier", Reactions: comment.ReactionTally{Like: 2, Funny: 1}, CreatedAt: base},
		{ID: "later", Reactions: comment.ReactionTally{Helpful: 2, Funny: 1}, CreatedAt: base.Add(time.Hour)},
	}

	// Both weigh 5.
	require.Equal(t, thread[0].Reactions.Weight(), thread[1].Reactions.Weight())

	comment.Rank(thread, comment.SortTop)

	assert.Equal(t, []string{"later", "earlier"}, orderOf(thread))
}

/*
TestWeight confirms the reaction weighting: like and helpful count double,
funny counts single.
*/
func TestWeight(t *testing.T) {
	tally := comment.ReactionTally{Like: 2, Helpful: 1, Funny: 3}

	assert.Equal(t, 9, tally.Weight())
	assert.Zero(t, comment.ReactionTally{}.Weight())
}

/*
TestAnnotate verifies the viewer overlay: ledger hits are stamped, misses
cleared, and an empty ledger leaves no annotations behind.
*/
func TestAnnotate(t *testing.T) {
	thread := buildThread()
	thread[2].ViewerReaction = "stale"

	comment.Annotate(thread, map[string]comment.ReactionKind{
		"old": comment.ReactionLike,
		"mid": comment.ReactionHelpful,
	})

	assert.Equal(t, "like", thread[0].ViewerReaction)
	assert.Equal(t, "helpful", thread[1].ViewerReaction)
	assert.Empty(t, thread[2].ViewerReaction, "comments outside the ledger must be cleared")

	// A different viewer with no reactions sees a clean thread.
	comment.Annotate(thread, map[string]comment.ReactionKind{})
	for _, c := range thread {
		assert.Empty(t, c.ViewerReaction)
	}
}
