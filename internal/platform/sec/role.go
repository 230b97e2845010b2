// Copyright (c) 2026 Litho Press. All rights reserved.

package sec

import "strings"

// # User Roles

// UserRole represents the authorization tier granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can author and manage their own posts
	RoleStaff UserRole = "staff"

	// Default role for standard registered users
	RoleCommenter UserRole = "commenter"
)

// legacyUploaderRole is a deprecated stored-role value that predates the
// current three-tier ladder. It is read-compatible only: nothing writes it.
const legacyUploaderRole = "uploader"

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleStaff:
		return 20
	case RoleCommenter:
		return 10
	default:
		return 0
	}
}

// IsAdmin reports whether the token carries administrator rights.
func (claims *AuthClaims) IsAdmin() bool {
	return FromStored(claims.Role).AtLeast(RoleAdmin)
}

// IsStaff reports whether the token carries staff rights or above.
func (claims *AuthClaims) IsStaff() bool {
	return FromStored(claims.Role).AtLeast(RoleStaff)
}

// FromStored normalizes a raw stored-role value into a [UserRole].
//
// Comparison is case-insensitive and whitespace-trimmed. The legacy
// "uploader" value normalizes to [RoleStaff]. Anything unrecognized
// normalizes to [RoleCommenter].
func FromStored(raw string) UserRole {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleStaff), legacyUploaderRole:
		return RoleStaff
	default:
		return RoleCommenter
	}
}
