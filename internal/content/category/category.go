package category

import "time"

// Category is a flat editorial grouping applied to posts.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`

	// PostCount is populated by listing queries.
	PostCount int `json:"post_count"`
}

const (
	FieldName = "name"
	FieldSlug = "slug"
)
