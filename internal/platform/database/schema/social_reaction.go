package schema

// SocialReactionTable represents the 'social.reaction' table.
//
// One row per (comment, user) pair — the reaction ledger. The primary key
// enforces the single-active-reaction invariant at the storage level.
type SocialReactionTable struct {
	Table     string
	CommentID string
	UserID    string
	Kind      string
	CreatedAt string
}

// SocialReaction is the schema definition for social.reaction
var SocialReaction = SocialReactionTable{
	Table:     "social.reaction",
	CommentID: "commentid",
	UserID:    "userid",
	Kind:      "kind",
	CreatedAt: "createdat",
}
