// Copyright (c) 2026 Litho Press. All rights reserved.

/*
Package comment implements the discussion layer attached to posts.

It owns the comment entity, the heuristic spam scorer applied at submission
time, the reaction ledger (one active reaction per user per comment), and
the ranking logic used by the public listing endpoints.

# Architecture

  - Entities: Comment, ReactionTally.
  - Moderation: Score (pure spam heuristic) gates submissions.
  - Ranking: Rank orders a fetched comment set; the viewer overlay is
    recomputed per request and never cached across viewers.
*/
package comment

import "time"

// # Reaction Kinds

// ReactionKind enumerates the reactions a reader can hold on a comment.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionHelpful ReactionKind = "helpful"
	ReactionFunny   ReactionKind = "funny"
)

// Valid reports whether the kind is one of the supported reactions.
func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionLike, ReactionHelpful, ReactionFunny:
		return true
	}
	return false
}

// # Domain Entities

// ReactionTally holds the aggregate per-kind reaction counts for a comment.
//
// # Invariant
//
// Each count equals the number of ledger rows of that kind, maintained
// transactionally by the store's toggle operation.
type ReactionTally struct {
	Like    int `json:"like"`
	Helpful int `json:"helpful"`
	Funny   int `json:"funny"`
}

// Weight returns the ranking weight used by the "top" sort mode.
//
// Like and helpful carry double weight; funny counts single.
func (t ReactionTally) Weight() int {
	return 2*t.Like + 2*t.Helpful + t.Funny
}

// Comment represents a single reader comment on a post.
//
// Authorship is immutable after creation. SpamScore and SpamFlags are
// computed once at submission time and never recomputed afterward.
type Comment struct {
	ID         string        `json:"id"`
	PostID     string        `json:"post_id"`
	UserID     string        `json:"user_id"`
	AuthorName string        `json:"author_name,omitempty"`
	Body       string        `json:"body"`
	SpamScore  int           `json:"spam_score"`
	SpamFlags  []string      `json:"spam_flags,omitempty"`
	Reactions  ReactionTally `json:"reactions"`

	// ViewerReaction is the requesting viewer's own active reaction
	// ("" when none or unauthenticated). It is a per-request annotation,
	// never persisted and never shared between viewers.
	ViewerReaction string `json:"viewer_reaction"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// # Field Identifiers

const (
	FieldBody = "body"
	FieldKind = "kind"
	FieldSort = "sort"
)
