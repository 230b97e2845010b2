package schema

// ContentPostTable represents the 'content.post' table
type ContentPostTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Blocks      string
	Status      string
	AuthorID    string
	AuthorName  string
	ReleaseDate string
	ReleaseType string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// ContentPost is the schema definition for content.post
var ContentPost = ContentPostTable{
	Table:       "content.post",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Excerpt:     "excerpt",
	Blocks:      "blocks",
	Status:      "status",
	AuthorID:    "authorid",
	AuthorName:  "authorname",
	ReleaseDate: "releasedate",
	ReleaseType: "releasetype",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}
