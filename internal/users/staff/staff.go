// Copyright (c) 2026 Litho Press. All rights reserved.

/*
Package staff implements editorial access control.

It owns the access-grant override table and the role resolver that decides,
for any email address, whether the holder is an administrator, a staff
writer, or a plain commenter.

# Architecture

  - Resolver: pure precedence logic over the three role sources.
  - Service: admin-only management of access grants.
  - Repository: Postgres storage for the override table.
*/
package staff

import (
	"time"

	"github.com/lithopress/litho/internal/platform/sec"
)

// # Domain Entities

// AccessGrant is a standing role override keyed by email address.
//
// Grants are created before a matching account necessarily exists, so the
// grant takes effect the moment the holder first logs in.
type AccessGrant struct {
	Email     string       `json:"email"`
	Role      sec.UserRole `json:"role"`
	GrantedBy string       `json:"granted_by"`
	CreatedAt time.Time    `json:"created_at"`
}

// # Field Identifiers

const (
	FieldEmail = "email"
	FieldRole  = "role"
)
