package schema

// SocialCommentTable represents the 'social.comment' table
type SocialCommentTable struct {
	Table        string
	ID           string
	PostID       string
	UserID       string
	Body         string
	SpamScore    string
	SpamFlags    string
	LikeCount    string
	HelpfulCount string
	FunnyCount   string
	IsDeleted    string
	CreatedAt    string
	UpdatedAt    string
}

// SocialComment is the schema definition for social.comment
var SocialComment = SocialCommentTable{
	Table:        "social.comment",
	ID:           "id",
	PostID:       "postid",
	UserID:       "userid",
	Body:         "body",
	SpamScore:    "spamscore",
	SpamFlags:    "spamflags",
	LikeCount:    "likecount",
	HelpfulCount: "helpfulcount",
	FunnyCount:   "funnycount",
	IsDeleted:    "isdeleted",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}
