// Copyright (c) 2026 Litho Press. All rights reserved.

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/internal/social/comment"
	"github.com/lithopress/litho/pkg/pagination"
)

// # Test Doubles

// fakeRepository is an in-memory [comment.Repository] honouring the same
// toggle and ledger contract as the Postgres implementation.
type fakeRepository struct {
	comments map[string]*comment.Comment
	// ledger is keyed by commentID+"/"+userID.
	ledger map[string]comment.ReactionKind
	clock  time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		comments: map[string]*comment.Comment{},
		ledger:   map[string]comment.ReactionKind{},
		clock:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (repository *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	repository.clock = repository.clock.Add(time.Second)
	stored := *c
	stored.CreatedAt = repository.clock
	repository.comments[c.ID] = &stored
	c.CreatedAt = stored.CreatedAt
	return nil
}

func (repository *fakeRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	stored, ok := repository.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	clone := *stored
	return &clone, nil
}

func (repository *fakeRepository) ListByPost(_ context.Context, postID string) ([]*comment.Comment, error) {
	var result []*comment.Comment
	for _, stored := range repository.comments {
		if stored.PostID == postID {
			clone := *stored
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (repository *fakeRepository) ListFlagged(_ context.Context, _ pagination.Params) ([]*comment.Comment, int, error) {
	var result []*comment.Comment
	for _, stored := range repository.comments {
		if len(stored.SpamFlags) > 0 {
			clone := *stored
			result = append(result, &clone)
		}
	}
	return result, len(result), nil
}

func (repository *fakeRepository) SoftDelete(_ context.Context, id string) error {
	if _, ok := repository.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repository.comments, id)
	return nil
}

func (repository *fakeRepository) ToggleReaction(context context.Context, commentID, userID string, kind comment.ReactionKind) (*comment.Comment, error) {
	stored, ok := repository.comments[commentID]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}

	key := commentID + "/" + userID
	current, held := repository.ledger[key]

	switch {
	case held && current == kind:
		delete(repository.ledger, key)
		repository.bump(stored, current, -1)
	case held:
		repository.ledger[key] = kind
		repository.bump(stored, current, -1)
		repository.bump(stored, kind, +1)
	default:
		repository.ledger[key] = kind
		repository.bump(stored, kind, +1)
	}

	refreshed := *stored
	if active, ok := repository.ledger[key]; ok {
		refreshed.ViewerReaction = string(active)
	}
	return &refreshed, nil
}

func (repository *fakeRepository) bump(c *comment.Comment, kind comment.ReactionKind, delta int) {
	switch kind {
	case comment.ReactionLike:
		c.Reactions.Like += delta
	case comment.ReactionHelpful:
		c.Reactions.Helpful += delta
	case comment.ReactionFunny:
		c.Reactions.Funny += delta
	}
}

func (repository *fakeRepository) ViewerLedger(_ context.Context, postID, userID string) (map[string]comment.ReactionKind, error) {
	result := map[string]comment.ReactionKind{}
	for key, kind := range repository.ledger {
		for id, stored := range repository.comments {
			if key == id+"/"+userID && stored.PostID == postID {
				result[id] = kind
			}
		}
	}
	return result, nil
}

// fakePostChecker reports existence from a fixed allow set.
type fakePostChecker struct {
	known map[string]bool
}

func (checker *fakePostChecker) Exists(_ context.Context, postID string) (bool, error) {
	return checker.known[postID], nil
}

func newTestService(repository *fakeRepository) *comment.Service {
	checker := &fakePostChecker{known: map[string]bool{"post-1": true, "post-2": true}}
	return comment.NewService(repository, checker, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func claimsFor(userID, role string) *sec.AuthClaims {
	return &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		UserID:           userID,
		Role:             role,
	}
}

// # Submission Tests

/*
TestService_Create_StoresScoreAndFlags verifies that a suspicious-but-
acceptable comment is stored with its submission-time score and flags, and
that both survive a read back unchanged.
*/
func TestService_Create_StoresScoreAndFlags(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)

	created, err := service.Create(context.Background(), comment.CreateInput{
		PostID: "post-1",
		UserID: "user-1",
		Body:   "Background reading: https://example.com/writeup covers the details.",
	})
	require.NoError(t, err)

	assert.Equal(t, 22, created.SpamScore)
	assert.Equal(t, []string{comment.FlagContainsLinks}, created.SpamFlags)

	fetched, err := repository.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.SpamScore, fetched.SpamScore)
	assert.Equal(t, created.SpamFlags, fetched.SpamFlags)

	flagged, total, err := service.ListFlagged(context.Background(), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, flagged, 1)
	assert.Equal(t, created.ID, flagged[0].ID)
}

/*
TestService_Create_RejectsSpam checks that a submission at or above the
threshold is refused with the spam error code and never persisted.
*/
func TestService_Create_RejectsSpam(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)

	_, err := service.Create(context.Background(), comment.CreateInput{
		PostID: "post-1",
		UserID: "user-1",
		Body:   "win big at https://a.example https://b.example https://c.example",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "SPAM_REJECTED", appError.Code)
	assert.Equal(t, 400, appError.HTTPStatus)

	assert.Empty(t, repository.comments, "rejected submissions must not be stored")
}

/*
TestService_Create_UnknownPost ensures submissions to missing posts fail
with a not-found error before any scoring side effects.
*/
func TestService_Create_UnknownPost(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)

	_, err := service.Create(context.Background(), comment.CreateInput{
		PostID: "post-missing",
		UserID: "user-1",
		Body:   "a perfectly reasonable comment",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestService_Create_ValidatesBody covers the empty-body validation path.
*/
func TestService_Create_ValidatesBody(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.Create(context.Background(), comment.CreateInput{
		PostID: "post-1",
		UserID: "user-1",
		Body:   "   ",
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

// # Listing Tests

/*
TestService_ListForPost_ViewerOverlay checks that a logged-in viewer sees
their own reactions annotated while a different viewer of the same thread
sees none.
*/
func TestService_ListForPost_ViewerOverlay(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)

	created, err := service.Create(context.Background(), comment.CreateInput{
		PostID: "post-1",
		UserID: "author",
		Body:   "what did everyone think of the ending?",
	})
	require.NoError(t, err)

	_, err = service.ToggleReaction(context.Background(), created.ID, "viewer-a", comment.ReactionHelpful)
	require.NoError(t, err)

	// Viewer A sees their own reaction.
	thread, err := service.ListForPost(context.Background(), "post-1", comment.SortNewest, "viewer-a")
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "helpful", thread[0].ViewerReaction)
	assert.Equal(t, 1, thread[0].Reactions.Helpful)

	// Viewer B sees the tally but no personal annotation.
	thread, err = service.ListForPost(context.Background(), "post-1", comment.SortNewest, "viewer-b")
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Empty(t, thread[0].ViewerReaction)
	assert.Equal(t, 1, thread[0].Reactions.Helpful)

	// Anonymous viewers likewise.
	thread, err = service.ListForPost(context.Background(), "post-1", "", "")
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Empty(t, thread[0].ViewerReaction)
}

/*
TestService_ListForPost_InvalidSort rejects unknown sort modes.
*/
func TestService_ListForPost_InvalidSort(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.ListForPost(context.Background(), "post-1", "spiciest", "")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

// # Reaction Tests

/*
TestService_ToggleReaction_Idempotent verifies the toggle contract: the
same kind twice nets out to nothing, and switching kinds moves the count
without inflating totals.
*/
func TestService_ToggleReaction_Idempotent(t *testing.T) {
	repository := newFakeRepository()
	service := newTestService(repository)

	created, err := service.Create(context.Background(), comment.CreateInput{
		PostID: "post-1",
		UserID: "author",
		Body:   "solid write-up, saved for later",
	})
	require.NoError(t, err)

	// First toggle sets the reaction.
	updated, err := service.ToggleReaction(context.Background(), created.ID, "viewer-a", comment.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Reactions.Like)
	assert.Equal(t, "like", updated.ViewerReaction)

	// Same kind again clears it.
	updated, err = service.ToggleReaction(context.Background(), created.ID, "viewer-a", comment.ReactionLike)
	require.NoError(t, err)
	assert.Zero(t, updated.Reactions.Like)
	assert.Empty(t, updated.ViewerReaction)

	// Like then helpful: the like moves, totals never exceed one.
	_, err = service.ToggleReaction(context.Background(), created.ID, "viewer-a", comment.ReactionLike)
	require.NoError(t, err)
	updated, err = service.ToggleReaction(context.Background(), created.ID, "viewer-a", comment.ReactionHelpful)
	require.NoError(t, err)
	assert.Zero(t, updated.Reactions.Like)
	assert.Equal(t, 1, updated.Reactions.Helpful)
	assert.Equal(t, "helpful", updated.ViewerReaction)
}

/*
TestService_ToggleReaction_InvalidKind rejects unsupported kinds before
touching storage.
*/
func TestService_ToggleReaction_InvalidKind(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.ToggleReaction(context.Background(), "any", "viewer-a", "angry")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

// # Deletion Tests

/*
TestService_Delete_Authorization covers the three deletion outcomes:
author allowed, admin allowed, stranger forbidden.
*/
func TestService_Delete_Authorization(t *testing.T) {
	tests := []struct {
		name     string
		actor    *sec.AuthClaims
		wantCode string
	}{
		{"author_may_delete", claimsFor("author", "commenter"), ""},
		{"admin_may_delete", claimsFor("someone-else", "admin"), ""},
		{"stranger_forbidden", claimsFor("someone-else", "commenter"), "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := newFakeRepository()
			service := newTestService(repository)

			created, err := service.Create(context.Background(), comment.CreateInput{
				PostID: "post-1",
				UserID: "author",
				Body:   "deleting this later probably",
			})
			require.NoError(t, err)

			err = service.Delete(context.Background(), created.ID, tt.actor)

			if tt.wantCode == "" {
				require.NoError(t, err)
				_, err = repository.FindByID(context.Background(), created.ID)
				require.Error(t, err, "deleted comment must be hidden")
				return
			}

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, tt.wantCode, appError.Code)
		})
	}
}
