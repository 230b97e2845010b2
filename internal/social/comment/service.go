// Copyright (c) 2026 Litho Press. All rights reserved.

package comment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/internal/platform/validate"
	"github.com/lithopress/litho/pkg/pagination"
	"github.com/lithopress/litho/pkg/uuid"
)

// PostChecker is the minimal post-domain contract the comment service needs:
// confirming that the post a comment targets actually exists.
type PostChecker interface {
	Exists(context context.Context, postID string) (bool, error)
}

// Service implements the comment use cases: spam-gated submission, ranked
// listing with viewer overlay, reaction toggling, and moderation.
type Service struct {
	repo   Repository
	posts  PostChecker
	logger *slog.Logger
}

// NewService constructs a new comment [Service] with its dependencies.
func NewService(repo Repository, posts PostChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		posts:  posts,
		logger: logger,
	}
}

// CreateInput holds the data required to submit a comment.
type CreateInput struct {
	PostID string
	UserID string
	Body   string
}

/*
Create validates, spam-scores, and persists a new comment.

Description: The spam score is computed exactly once, here. Submissions at
or above [RejectThreshold] are refused with a user-facing error; everything
below is stored together with its score and flags for later audit and is
never auto-deleted or re-scored.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Comment: Created entity
  - error: Validation, spam rejection, missing post, or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldBody, input.Body).
		MaxLen(FieldBody, input.Body, 4000)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Confirm the target post exists before running any heuristics.
	exists, err := service.posts.Exists(context, input.PostID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_post_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Post")
	}

	score, flags := Score(input.Body)
	if score >= RejectThreshold {
		service.logger.Info("comment_rejected_as_spam",
			slog.String("post_id", input.PostID),
			slog.Int("score", score),
			slog.Any("flags", flags),
		)
		return nil, apperr.SpamRejected()
	}

	comment := &Comment{
		ID:        uuid.New(),
		PostID:    input.PostID,
		UserID:    input.UserID,
		Body:      input.Body,
		SpamScore: score,
		SpamFlags: flags,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	return comment, nil
}

/*
ListForPost returns a post's comments ranked for the requesting viewer.

Description: Fetches the comment set, overlays the viewer's own reactions
(skipped entirely for anonymous viewers), then applies the sort mode. The
overlay is request-scoped; nothing viewer-specific is cached.

Parameters:
  - context: context.Context
  - postID: string
  - mode: SortMode ("" defaults to newest)
  - viewerID: string ("" for anonymous viewers)

Returns:
  - []*Comment: Ranked, annotated comments
  - error: Validation or storage errors
*/
func (service *Service) ListForPost(context context.Context, postID string, mode SortMode, viewerID string) ([]*Comment, error) {
	if mode == "" {
		mode = SortNewest
	}
	if !mode.Valid() {
		return nil, validate.RequiredError(FieldSort, "Must be one of: newest, oldest, top")
	}

	comments, err := service.repo.ListByPost(context, postID)
	if err != nil {
		return nil, fmt.Errorf("comment_service_list_failed: %w", err)
	}

	ledger := map[string]ReactionKind{}
	if viewerID != "" {
		ledger, err = service.repo.ViewerLedger(context, postID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("comment_service_ledger_failed: %w", err)
		}
	}

	Annotate(comments, ledger)
	Rank(comments, mode)

	return comments, nil
}

/*
ToggleReaction applies or clears the viewer's reaction on a comment.

Description: Delegates the atomic read-modify-write to the repository.
Applying the same kind twice in a row nets out to no reaction.

Parameters:
  - context: context.Context
  - commentID: string
  - viewerID: string
  - kind: ReactionKind

Returns:
  - *Comment: Refreshed tallies with the viewer annotation applied
  - error: Validation, not-found, or storage errors
*/
func (service *Service) ToggleReaction(context context.Context, commentID, viewerID string, kind ReactionKind) (*Comment, error) {
	if !kind.Valid() {
		return nil, validate.RequiredError(FieldKind, "Must be one of: like, helpful, funny")
	}

	return service.repo.ToggleReaction(context, commentID, viewerID, kind)
}

/*
Delete hides a comment.

Description: Admins may delete any comment; other actors only their own.

Parameters:
  - context: context.Context
  - commentID: string
  - actor: *sec.AuthClaims

Returns:
  - error: Forbidden, not-found, or storage errors
*/
func (service *Service) Delete(context context.Context, commentID string, actor *sec.AuthClaims) error {
	comment, err := service.repo.FindByID(context, commentID)
	if err != nil {
		return err
	}

	isAdmin := sec.FromStored(actor.Role).AtLeast(sec.RoleAdmin)
	if !isAdmin && comment.UserID != actor.UserID {
		return apperr.Forbidden("You may only delete your own comments")
	}

	return service.repo.SoftDelete(context, commentID)
}

/*
ListFlagged returns the staff audit view of comments that triggered at
least one spam flag.
*/
func (service *Service) ListFlagged(context context.Context, params pagination.Params) ([]*Comment, int, error) {
	return service.repo.ListFlagged(context, params)
}
