// Copyright (c) 2026 Litho Press. All rights reserved.

package comment

import (
	"context"

	"github.com/lithopress/litho/pkg/pagination"
)

// Repository defines the data access contract for comments and the
// reaction ledger.
type Repository interface {

	/*
		Create persists a brand-new comment, including its submission-time
		spam score and flags.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		FindByID returns the comment with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Hydrated entity with aggregate reaction tallies
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		ListByPost returns all visible comments for a post, unordered.
		Ranking is applied by the service layer.

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - []*Comment: Comment set with aggregate reaction tallies
		  - error: Database errors
	*/
	ListByPost(context context.Context, postID string) ([]*Comment, error)

	/*
		ListFlagged returns stored comments that triggered at least one
		spam flag, newest first, for staff audit.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*Comment: Flagged comments
		  - int: Total flagged count
		  - error: Database errors
	*/
	ListFlagged(context context.Context, params pagination.Params) ([]*Comment, int, error)

	/*
		SoftDelete hides a comment without removing the row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id string) error

	/*
		ToggleReaction applies a viewer's reaction as a single atomic
		read-modify-write:

		  - no existing reaction: the kind is set.
		  - same kind already held: the reaction is cleared.
		  - different kind held: the old kind is decremented and the new
		    kind incremented in one transaction.

		Parameters:
		  - context: context.Context
		  - commentID: string
		  - userID: string
		  - kind: ReactionKind

		Returns:
		  - *Comment: The comment with refreshed tallies and the viewer
		    annotation already applied
		  - error: apperr.NotFound or database errors
	*/
	ToggleReaction(context context.Context, commentID, userID string, kind ReactionKind) (*Comment, error)

	/*
		ViewerLedger returns the viewer's active reactions across all
		comments of a post, keyed by comment ID.

		Parameters:
		  - context: context.Context
		  - postID: string
		  - userID: string

		Returns:
		  - map[string]ReactionKind: The viewer's ledger slice
		  - error: Database errors
	*/
	ViewerLedger(context context.Context, postID, userID string) (map[string]ReactionKind, error)
}
