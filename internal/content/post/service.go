// Copyright (c) 2026 Litho Press. All rights reserved.

package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/internal/platform/validate"
	"github.com/lithopress/litho/pkg/pagination"
	"github.com/lithopress/litho/pkg/slug"
	"github.com/lithopress/litho/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the editorial catalogue.
// It owns slug generation, lifecycle transitions, and the authorship
// checks that gate every mutation.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

// # Post Lookups

/*
List retrieves a paginated and filtered collection of posts.

Description: This method orchestrates the discovery phase of the
catalogue. Filter criteria are passed directly to the repository
layer for database-level filtering, newest first.

Parameters:
  - context: context.Context
  - filter: Filter (Criteria for status and category)
  - params: pagination.Params (Page cursor and size)

Returns:
  - []*Post: Slice of matching editorial records
  - int: Total count of records matching the filter (for pagination metadata)
  - error: System or repository level errors
*/
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Post, int, error) {
	return service.repository.List(context, filter, params)
}

/*
Get fetches a single post by UUID or SEO slug.

Description: The service determines the lookup strategy from the
identifier format. A UUID-shaped identifier resolves by primary
key; anything else resolves via the unique URL slug.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)

Returns:
  - *Post: The hydrated domain entity
  - error: ErrNotFound if no match is found
*/
func (service *Service) Get(context context.Context, identifier string) (*Post, error) {

	// Identity format detection
	if isUUID(identifier) {
		return service.repository.FindByID(context, identifier)
	}

	// Slug resolution
	return service.repository.FindBySlug(context, identifier)
}

// # Post Management

// CreateInput carries the attributes for a new post.
type CreateInput struct {
	Title       string
	Excerpt     string
	Blocks      []Block
	Status      Status
	ReleaseDate *time.Time
	ReleaseType string
	CategoryIDs []string
}

/*
Create initialises a new post authored by the acting user.

Description: Performs deep business validation on the metadata,
generates a stable UUID v7 identity and a unique SEO slug, and
records the actor as the strong author reference before
persisting to the repository.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (The authenticated author)
  - input: CreateInput (The attributes to persist)

Returns:
  - *Post: The persisted entity
  - error: Validation or persistence errors
*/
func (service *Service) Create(context context.Context, actor *sec.AuthClaims, input CreateInput) (*Post, error) {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 500)
	validator.MaxLen(FieldExcerpt, input.Excerpt, 1000)

	// Lifecycle state validation
	if input.Status == "" {
		input.Status = StatusDraft
	}
	validator.OneOf(FieldStatus, string(input.Status), string(StatusDraft), string(StatusPublished))

	// Subject type validation
	if input.ReleaseType != "" {
		validator.OneOf(FieldReleaseType, input.ReleaseType, ReleaseTypeGame, ReleaseTypeTech)
	}

	validateBlocks(validator, input.Blocks)

	// Return validation errors if any constraints failed
	if err := validator.Err(); err != nil {
		return nil, err
	}

	post := &Post{
		ID:          uuid.New(),
		Title:       input.Title,
		Excerpt:     input.Excerpt,
		Blocks:      input.Blocks,
		Status:      input.Status,
		AuthorID:    &actor.UserID,
		AuthorName:  actor.DisplayName,
		ReleaseDate: truncateToDay(input.ReleaseDate),
		ReleaseType: input.ReleaseType,
	}
	if post.Blocks == nil {
		post.Blocks = make([]Block, 0)
	}

	// Slug generation with uniqueness guarantee
	uniqueSlug, err := service.uniqueSlug(context, slug.From(input.Title))
	if err != nil {
		return nil, err
	}
	post.Slug = uniqueSlug

	if post.Status == StatusPublished {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	// Persistence via Repository
	if err := service.repository.Create(context, post, input.CategoryIDs); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("title", post.Title),
		slog.String("author_id", actor.UserID),
	)

	return service.repository.FindByID(context, post.ID)
}

// UpdateInput carries partial modifications to an existing post.
// Zero-valued fields leave the stored value untouched; a nil
// CategoryIDs slice keeps the existing category links.
type UpdateInput struct {
	Title       string
	Excerpt     string
	Blocks      []Block
	Status      Status
	ReleaseDate *time.Time
	ReleaseType string
	CategoryIDs []string
}

/*
Update applies modifications to an existing post.

Description: Supports partial updates. Non-empty fields in the
input overwrite existing values. The acting user must be an
admin or count as the post's author.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (The authenticated user)
  - id: string (UUID of the post)
  - input: UpdateInput (Updated attributes)

Returns:
  - *Post: The entity after the update
  - error: Authorization, validation, or persistence errors
*/
func (service *Service) Update(context context.Context, actor *sec.AuthClaims, id string, input UpdateInput) (*Post, error) {
	post, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, post); err != nil {
		return nil, err
	}

	// Integrity validation for updated fields
	validator := &validate.Validator{}
	if input.Title != "" {
		validator.MaxLen(FieldTitle, input.Title, 500)
	}
	if input.Excerpt != "" {
		validator.MaxLen(FieldExcerpt, input.Excerpt, 1000)
	}
	if input.Status != "" {
		validator.OneOf(FieldStatus, string(input.Status), string(StatusDraft), string(StatusPublished))
	}
	if input.ReleaseType != "" {
		validator.OneOf(FieldReleaseType, input.ReleaseType, ReleaseTypeGame, ReleaseTypeTech)
	}
	if input.Blocks != nil {
		validateBlocks(validator, input.Blocks)
	}

	// Return validation errors if any constraints failed
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.Title != "" && input.Title != post.Title {
		post.Title = input.Title

		uniqueSlug, err := service.uniqueSlug(context, slug.From(input.Title))
		if err != nil {
			return nil, err
		}
		post.Slug = uniqueSlug
	}
	if input.Excerpt != "" {
		post.Excerpt = input.Excerpt
	}
	if input.Blocks != nil {
		post.Blocks = input.Blocks
	}
	if input.Status != "" {
		if input.Status == StatusPublished && post.PublishedAt == nil {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}
		post.Status = input.Status
	}
	if input.ReleaseDate != nil {
		post.ReleaseDate = truncateToDay(input.ReleaseDate)
	}
	if input.ReleaseType != "" {
		post.ReleaseType = input.ReleaseType
	}

	categoryIDs := input.CategoryIDs
	if categoryIDs == nil {
		categoryIDs = collectCategoryIDs(post.Categories)
	}

	// Execute storage update
	if err := service.repository.Update(context, post, categoryIDs); err != nil {
		return nil, err
	}

	service.logger.Info("post_updated", slog.String("post_id", post.ID))

	return service.repository.FindByID(context, post.ID)
}

/*
Publish transitions a post into the published state.

Description: Idempotent. The first publication stamps the moment
the post went live; republishing an already-published post keeps
the original timestamp.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (The authenticated user)
  - id: string (UUID of the post)

Returns:
  - *Post: The entity after the transition
  - error: Authorization or persistence errors
*/
func (service *Service) Publish(context context.Context, actor *sec.AuthClaims, id string) (*Post, error) {
	post, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, post); err != nil {
		return nil, err
	}

	if post.Status == StatusPublished {
		return post, nil
	}

	post.Status = StatusPublished
	if post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := service.repository.Update(context, post, collectCategoryIDs(post.Categories)); err != nil {
		return nil, err
	}

	service.logger.Info("post_published", slog.String("post_id", post.ID))

	return post, nil
}

/*
Delete removes a post from active discovery.

Description: Implements soft-delete logic. The record remains in
the database but is excluded from every lookup. The acting user
must be an admin or count as the post's author.

Parameters:
  - context: context.Context
  - actor: *sec.AuthClaims (The authenticated user)
  - id: string (UUID of the post)

Returns:
  - error: Authorization or persistence errors
*/
func (service *Service) Delete(context context.Context, actor *sec.AuthClaims, id string) error {
	post, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := Authorize(actor, post); err != nil {
		return err
	}

	if err := service.repository.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Warn("post_deleted",
		slog.String("post_id", id),
		slog.String("actor_id", actor.UserID),
	)

	return nil
}

// # Internal Helpers

// uniqueSlug probes the repository for a free slug, suffixing a
// counter when the base is already taken.
func (service *Service) uniqueSlug(context context.Context, base string) (string, error) {
	candidate := base
	for attempt := 2; ; attempt++ {
		taken, err := service.repository.SlugExists(context, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if attempt > 50 {
			return fmt.Sprintf("%s-%s", base, uuid.New()[:8]), nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
}

func validateBlocks(validator *validate.Validator, blocks []Block) {
	for i, block := range blocks {
		field := fmt.Sprintf("%s[%d]", FieldBlocks, i)
		if !block.Type.Valid() {
			validator.Custom(field, true, "Unknown block type")
			continue
		}
		switch block.Type {
		case BlockParagraph:
			validator.Required(field, block.Text)
		case BlockImage, BlockEmbed:
			validator.Required(field, block.URL)
		}
	}
}

func collectCategoryIDs(refs []CategoryRef) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}
	return ids
}

func truncateToDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	day := t.UTC().Truncate(24 * time.Hour)
	return &day
}

// isUUID returns true if the string matches the standard UUID length.
func isUUID(s string) bool {
	return len(s) == 36
}
