// Copyright (c) 2026 Litho Press. All rights reserved.

package post

import (
	"context"

	"github.com/lithopress/litho/pkg/pagination"
)

// Filter narrows post listings.
type Filter struct {
	// Status restricts to one lifecycle state ("" means all).
	Status Status

	// CategorySlug restricts to posts attached to one category.
	CategorySlug string
}

// Repository defines the data access contract for posts.
type Repository interface {

	// Create persists a new post and its category links.
	// Duplicate slugs surface as apperr.Conflict.
	Create(context context.Context, post *Post, categoryIDs []string) error

	// Update persists changed fields and replaces the category links.
	Update(context context.Context, post *Post, categoryIDs []string) error

	// FindByID returns one post with hydrated categories.
	FindByID(context context.Context, id string) (*Post, error)

	// FindBySlug returns one post with hydrated categories.
	FindBySlug(context context.Context, slug string) (*Post, error)

	// List returns matching posts newest first, with hydrated categories.
	List(context context.Context, filter Filter, params pagination.Params) ([]*Post, int, error)

	// SoftDelete hides a post without removing the row.
	SoftDelete(context context.Context, id string) error

	// SlugExists reports whether any live post uses the slug.
	SlugExists(context context.Context, slug string) (bool, error)

	// Exists reports whether the post is live. Used by other domains
	// (comments) to validate references cheaply.
	Exists(context context.Context, id string) (bool, error)
}
