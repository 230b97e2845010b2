// Copyright (c) 2026 Litho Press. All rights reserved.

package staff_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/internal/users/staff"
)

// fakeOverrides serves access grants from a fixed map keyed by normalized
// email.
type fakeOverrides struct {
	grants map[string]sec.UserRole
}

func (overrides *fakeOverrides) FindByEmail(_ context.Context, email string) (*staff.AccessGrant, error) {
	role, ok := overrides.grants[email]
	if !ok {
		return nil, apperr.NotFound("Access grant")
	}
	return &staff.AccessGrant{Email: email, Role: role}, nil
}

func newTestResolver(allowList []string, grants map[string]sec.UserRole) *staff.Resolver {
	if grants == nil {
		grants = map[string]sec.UserRole{}
	}
	return staff.NewResolver(allowList, &fakeOverrides{grants: grants})
}

/*
TestResolver_Precedence pins the full source ordering: allow-list beats the
stored role, the stored role beats the override table, and the override
table beats the commenter default.
*/
func TestResolver_Precedence(t *testing.T) {
	allowList := []string{"root@litho.press"}
	grants := map[string]sec.UserRole{
		"editor@litho.press": sec.RoleStaff,
		"chief@litho.press":  sec.RoleAdmin,
	}

	tests := []struct {
		name       string
		email      string
		storedRole string
		want       sec.UserRole
	}{
		// 1. Allow-list wins regardless of what the row says.
		{"allowlist_over_commenter_row", "root@litho.press", "commenter", sec.RoleAdmin},
		{"allowlist_over_staff_row", "root@litho.press", "staff", sec.RoleAdmin},

		// 2. Elevated stored roles stand without any grant.
		{"stored_admin", "anyone@example.com", "admin", sec.RoleAdmin},
		{"stored_staff", "anyone@example.com", "staff", sec.RoleStaff},

		// 3. Grants elevate rows still marked commenter.
		{"grant_staff", "editor@litho.press", "commenter", sec.RoleStaff},
		{"grant_admin", "chief@litho.press", "commenter", sec.RoleAdmin},

		// Stored role shadows a weaker grant.
		{"stored_admin_over_staff_grant", "editor@litho.press", "admin", sec.RoleAdmin},

		// 4. Everyone else comments.
		{"default_commenter", "reader@example.com", "commenter", sec.RoleCommenter},
		{"unknown_stored_value", "reader@example.com", "wizard", sec.RoleCommenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := newTestResolver(allowList, grants)

			role, err := resolver.Resolve(context.Background(), tt.email, tt.storedRole)

			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

/*
TestResolver_EmailNormalization verifies that casing and surrounding
whitespace never affect resolution, for both the allow-list and grants.
*/
func TestResolver_EmailNormalization(t *testing.T) {
	resolver := newTestResolver(
		[]string{"  Root@Litho.Press  "},
		map[string]sec.UserRole{"editor@litho.press": sec.RoleStaff},
	)

	tests := []struct {
		name  string
		email string
		want  sec.UserRole
	}{
		{"allowlist_mixed_case", "ROOT@litho.press", sec.RoleAdmin},
		{"allowlist_padded", "  root@LITHO.press\t", sec.RoleAdmin},
		{"grant_mixed_case", "Editor@Litho.Press", sec.RoleStaff},
		{"near_miss_is_commenter", "root+x@litho.press", sec.RoleCommenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := resolver.Resolve(context.Background(), tt.email, "commenter")

			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

/*
TestResolver_LegacyUploaderRole checks the deprecated stored value: an
"uploader" row resolves to staff with no grant involved.
*/
func TestResolver_LegacyUploaderRole(t *testing.T) {
	resolver := newTestResolver(nil, nil)

	role, err := resolver.Resolve(context.Background(), "veteran@example.com", "uploader")

	require.NoError(t, err)
	assert.Equal(t, sec.RoleStaff, role)

	// Casing of the stored value is irrelevant too.
	role, err = resolver.Resolve(context.Background(), "veteran@example.com", " Uploader ")

	require.NoError(t, err)
	assert.Equal(t, sec.RoleStaff, role)
}

/*
TestResolver_GrantFloorsAtStaff ensures a grant row with an unrecognized
role still confers at least staff, never commenter.
*/
func TestResolver_GrantFloorsAtStaff(t *testing.T) {
	resolver := newTestResolver(nil, map[string]sec.UserRole{
		"odd@example.com": sec.UserRole("contributor"),
	})

	role, err := resolver.Resolve(context.Background(), "odd@example.com", "commenter")

	require.NoError(t, err)
	assert.Equal(t, sec.RoleStaff, role)
}
