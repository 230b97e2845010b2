// Copyright (c) 2026 Litho Press. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lithopress/litho/internal/platform/sec"
)

/*
TestUserRole_AtLeast verifies the role hierarchy ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.UserRole
		target  sec.UserRole
		allowed bool
	}{
		{"admin_meets_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"admin_meets_staff", sec.RoleAdmin, sec.RoleStaff, true},
		{"staff_meets_staff", sec.RoleStaff, sec.RoleStaff, true},
		{"staff_below_admin", sec.RoleStaff, sec.RoleAdmin, false},
		{"commenter_below_staff", sec.RoleCommenter, sec.RoleStaff, false},
		{"unknown_below_commenter", sec.UserRole("ghost"), sec.RoleCommenter, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestFromStored verifies stored-role normalization, including the legacy
"uploader" value which must map to staff.
*/
func TestFromStored(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want sec.UserRole
	}{
		{"admin", "admin", sec.RoleAdmin},
		{"admin_mixed_case", "  Admin ", sec.RoleAdmin},
		{"staff", "staff", sec.RoleStaff},
		{"legacy_uploader", "uploader", sec.RoleStaff},
		{"legacy_uploader_upper", "UPLOADER", sec.RoleStaff},
		{"commenter", "commenter", sec.RoleCommenter},
		{"empty", "", sec.RoleCommenter},
		{"garbage", "superuser", sec.RoleCommenter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.FromStored(tt.raw))
		})
	}
}
