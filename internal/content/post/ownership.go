// Copyright (c) 2026 Litho Press. All rights reserved.

package post

import (
	"strings"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/sec"
)

// # Ownership Guard

// CanMutate reports whether the actor may modify or delete the post.
//
// # Rules
//
//   - Admins mutate anything.
//   - Staff mutate posts they own. Ownership is decided by AuthorID when
//     the post has one; the free-text byline label is consulted only when
//     AuthorID is absent, matched case-insensitively against the actor's
//     display name or email.
//   - Commenters and anonymous actors never mutate posts.
func CanMutate(actor *sec.AuthClaims, target *Post) bool {
	if actor == nil {
		return false
	}

	role := sec.FromStored(actor.Role)
	if role.AtLeast(sec.RoleAdmin) {
		return true
	}
	if !role.AtLeast(sec.RoleStaff) {
		return false
	}

	// Strong authorship wins outright when present; a label match cannot
	// override a mismatched AuthorID.
	if target.AuthorID != nil && *target.AuthorID != "" {
		return *target.AuthorID == actor.UserID
	}

	label := normalizeLabel(target.AuthorName)
	if label == "" {
		return false
	}

	return label == normalizeLabel(actor.DisplayName) || label == normalizeLabel(actor.Email)
}

// Authorize wraps [CanMutate] into the error the HTTP layer returns.
//
// Denials are always explicit 403s, never silent no-ops.
func Authorize(actor *sec.AuthClaims, target *Post) error {
	if !CanMutate(actor, target) {
		return apperr.Forbidden("You do not have permission to modify this post")
	}
	return nil
}

// normalizeLabel applies the canonical byline comparison form.
func normalizeLabel(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
