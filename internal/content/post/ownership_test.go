// Copyright (c) 2026 Litho Press. All rights reserved.

package post_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithopress/litho/internal/content/post"
	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/pkg/pointer"
)

func actor(userID, email, displayName, role string) *sec.AuthClaims {
	return &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		UserID:           userID,
		Email:            email,
		DisplayName:      displayName,
		Role:             role,
	}
}

/*
TestCanMutate pins the full ownership decision table: role gates, strong
AuthorID ownership, and the byline-label fallback.
*/
func TestCanMutate(t *testing.T) {
	staffWriter := actor("u-1", "ada@litho.press", "Ada Deline", "staff")

	tests := []struct {
		name   string
		actor  *sec.AuthClaims
		target *post.Post
		want   bool
	}{
		// Role gates.
		{
			name:   "admin_mutates_anything",
			actor:  actor("u-9", "root@litho.press", "Root", "admin"),
			target: &post.Post{AuthorID: pointer.To("someone-else")},
			want:   true,
		},
		{
			name:   "commenter_never_mutates",
			actor:  actor("u-1", "ada@litho.press", "Ada Deline", "commenter"),
			target: &post.Post{AuthorID: pointer.To("u-1")},
			want:   false,
		},
		{
			name:   "anonymous_never_mutates",
			actor:  nil,
			target: &post.Post{},
			want:   false,
		},
		{
			name:   "legacy_uploader_counts_as_staff",
			actor:  actor("u-1", "ada@litho.press", "Ada Deline", "uploader"),
			target: &post.Post{AuthorID: pointer.To("u-1")},
			want:   true,
		},

		// Strong authorship.
		{
			name:   "staff_owns_by_author_id",
			actor:  staffWriter,
			target: &post.Post{AuthorID: pointer.To("u-1")},
			want:   true,
		},
		{
			name:   "staff_denied_on_foreign_author_id",
			actor:  staffWriter,
			target: &post.Post{AuthorID: pointer.To("u-2")},
			want:   false,
		},
		{
			// The label must not rescue a mismatched AuthorID.
			name:   "label_cannot_override_author_id",
			actor:  staffWriter,
			target: &post.Post{AuthorID: pointer.To("u-2"), AuthorName: "Ada Deline"},
			want:   false,
		},

		// Byline-label fallback (AuthorID absent).
		{
			name:   "label_matches_display_name",
			actor:  staffWriter,
			target: &post.Post{AuthorName: "ada deline"},
			want:   true,
		},
		{
			name:   "label_matches_email_case_insensitive",
			actor:  staffWriter,
			target: &post.Post{AuthorName: "  ADA@Litho.Press "},
			want:   true,
		},
		{
			name:   "label_mismatch_denied",
			actor:  staffWriter,
			target: &post.Post{AuthorName: "Grace"},
			want:   false,
		},
		{
			name:   "empty_author_fields_denied",
			actor:  staffWriter,
			target: &post.Post{},
			want:   false,
		},
		{
			// An empty-string AuthorID counts as absent, not as ownership.
			name:   "empty_author_id_falls_back_to_label",
			actor:  staffWriter,
			target: &post.Post{AuthorID: pointer.To(""), AuthorName: "Ada Deline"},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, post.CanMutate(tt.actor, tt.target))
		})
	}
}

/*
TestAuthorize verifies that denials surface as explicit 403 errors.
*/
func TestAuthorize(t *testing.T) {
	writer := actor("u-1", "ada@litho.press", "Ada Deline", "staff")

	require.NoError(t, post.Authorize(writer, &post.Post{AuthorID: pointer.To("u-1")}))

	err := post.Authorize(writer, &post.Post{AuthorID: pointer.To("u-2")})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FORBIDDEN", appError.Code)
	assert.Equal(t, 403, appError.HTTPStatus)
}
