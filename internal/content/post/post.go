// Copyright (c) 2026 Litho Press. All rights reserved.

/*
Package post implements the article catalogue of the publication.

It owns the post entity with its ordered typed content blocks, the slug
lifecycle, the draft/published state machine, and the ownership guard that
decides who may mutate a given post.

# Authorship

A post carries two authorship fields. The strong one is AuthorID, set for
posts created through the API. The weak one is AuthorName, a free-text
byline label kept for imported archives whose author never had an account.
The ownership guard consults the label only when no AuthorID is present.
*/
package post

import "time"

// # Lifecycle States

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// # Content Blocks

// BlockType enumerates the supported content block kinds.
type BlockType string

const (
	BlockParagraph BlockType = "paragraph"
	BlockImage     BlockType = "image"
	BlockEmbed     BlockType = "embed"
)

// Valid reports whether the block type is supported.
func (t BlockType) Valid() bool {
	switch t {
	case BlockParagraph, BlockImage, BlockEmbed:
		return true
	}
	return false
}

// Block is a single ordered unit of post content.
//
// The full block slice is persisted as one JSONB document; order in the
// slice is display order.
type Block struct {
	Type BlockType `json:"type"`

	// Text carries paragraph content (may contain inline markup).
	Text string `json:"text,omitempty"`

	// URL is the target of image and embed blocks.
	URL string `json:"url,omitempty"`

	// Alt is the accessibility text for image blocks.
	Alt string `json:"alt,omitempty"`

	// Caption is an optional display caption for image and embed blocks.
	Caption string `json:"caption,omitempty"`
}

// # Release Metadata

// Release type values. Empty means "not set"; the release inferencer
// classifies such posts from their text.
const (
	ReleaseTypeGame = "game"
	ReleaseTypeTech = "tech"
)

// # Domain Entities

// CategoryRef is the slice of a category a post carries after hydration.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Post represents a single article.
type Post struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Excerpt string  `json:"excerpt,omitempty"`
	Blocks  []Block `json:"blocks"`
	Status  Status  `json:"status"`

	// AuthorID is the account that owns the post; nil for imported
	// archive posts whose author predates the account system.
	AuthorID *string `json:"author_id,omitempty"`

	// AuthorName is the free-text byline label.
	AuthorName string `json:"author_name,omitempty"`

	// ReleaseDate and ReleaseType are optional explicit release metadata;
	// when unset, the release inferencer derives both from the content.
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	ReleaseType string     `json:"release_type,omitempty"`

	Categories []CategoryRef `json:"categories"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldExcerpt     = "excerpt"
	FieldBlocks      = "blocks"
	FieldStatus      = "status"
	FieldReleaseType = "release_type"
	FieldCategoryIDs = "category_ids"
)
