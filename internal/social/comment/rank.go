// Copyright (c) 2026 Litho Press. All rights reserved.

package comment

import "sort"

// # Sort Modes

// SortMode selects the ordering of a comment listing.
type SortMode string

const (
	SortNewest SortMode = "newest"
	SortOldest SortMode = "oldest"
	SortTop    SortMode = "top"
)

// Valid reports whether the mode is one of the supported sort orders.
func (m SortMode) Valid() bool {
	switch m {
	case SortNewest, SortOldest, SortTop:
		return true
	}
	return false
}

// Rank orders the comment slice in place according to the sort mode.
//
// # Orderings
//
//   - newest: descending by creation time.
//   - oldest: ascending by creation time.
//   - top: descending by reaction weight (see [ReactionTally.Weight]),
//     ties broken by descending creation time.
//
// The final ID comparison makes the order fully deterministic for comments
// created in the same instant.
func Rank(comments []*Comment, mode SortMode) {
	switch mode {
	case SortOldest:
		sort.SliceStable(comments, func(i, j int) bool {
			if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
				return comments[i].CreatedAt.Before(comments[j].CreatedAt)
			}
			return comments[i].ID < comments[j].ID
		})

	case SortTop:
		sort.SliceStable(comments, func(i, j int) bool {
			wi, wj := comments[i].Reactions.Weight(), comments[j].Reactions.Weight()
			if wi != wj {
				return wi > wj
			}
			if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
				return comments[i].CreatedAt.After(comments[j].CreatedAt)
			}
			return comments[i].ID < comments[j].ID
		})

	default: // SortNewest
		sort.SliceStable(comments, func(i, j int) bool {
			if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
				return comments[i].CreatedAt.After(comments[j].CreatedAt)
			}
			return comments[i].ID < comments[j].ID
		})
	}
}

// Annotate stamps each comment with the viewer's own active reaction.
//
// The ledger maps comment ID to the viewer's reaction kind. Comments absent
// from the ledger get an empty annotation. Annotation is viewer-specific
// and must be recomputed for every request.
func Annotate(comments []*Comment, viewerLedger map[string]ReactionKind) {
	for _, c := range comments {
		if kind, ok := viewerLedger[c.ID]; ok {
			c.ViewerReaction = string(kind)
		} else {
			c.ViewerReaction = ""
		}
	}
}
