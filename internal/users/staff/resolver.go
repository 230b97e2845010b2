// Copyright (c) 2026 Litho Press. All rights reserved.

package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/sec"
)

// # Role Resolution

// OverrideSource is the slice of the repository the resolver needs: looking
// up a standing access grant by email.
type OverrideSource interface {
	FindByEmail(context context.Context, email string) (*AccessGrant, error)
}

// Resolver computes the effective role for an account.
//
// # Precedence
//
// Sources are consulted in strict order; the first match wins:
//
//  1. The environment allow-list. Membership grants admin unconditionally
//     and cannot be revoked at runtime.
//  2. The account's stored role, normalized through [sec.FromStored]
//     (the legacy "uploader" value reads as staff). Only elevated stored
//     roles short-circuit; a stored "commenter" falls through.
//  3. The access-grant override table.
//  4. Default: commenter.
//
// All email comparisons are case-insensitive and whitespace-trimmed.
type Resolver struct {
	allowList map[string]struct{}
	overrides OverrideSource
}

// NewResolver constructs a [Resolver] from the admin allow-list and the
// grant override source.
func NewResolver(allowList []string, overrides OverrideSource) *Resolver {
	set := make(map[string]struct{}, len(allowList))
	for _, email := range allowList {
		normalized := normalizeEmail(email)
		if normalized != "" {
			set[normalized] = struct{}{}
		}
	}

	return &Resolver{
		allowList: set,
		overrides: overrides,
	}
}

/*
Resolve returns the effective role for the given email and stored role.

Parameters:
  - context: context.Context
  - email: string (compared case-insensitively, trimmed)
  - storedRole: string (raw value from the account row)

Returns:
  - sec.UserRole: The effective role
  - error: Override-table lookup failures only
*/
func (resolver *Resolver) Resolve(context context.Context, email, storedRole string) (sec.UserRole, error) {
	normalized := normalizeEmail(email)

	// 1. Environment allow-list wins over everything.
	if _, ok := resolver.allowList[normalized]; ok {
		return sec.RoleAdmin, nil
	}

	// 2. Elevated stored roles stand on their own.
	if stored := sec.FromStored(storedRole); stored.AtLeast(sec.RoleStaff) {
		return stored, nil
	}

	// 3. A standing access grant elevates accounts whose row still says
	// commenter. Grants floor at staff even if the stored grant role is
	// somehow unrecognized.
	grant, err := resolver.overrides.FindByEmail(context, normalized)
	if err == nil {
		granted := sec.FromStored(string(grant.Role))
		if !granted.AtLeast(sec.RoleStaff) {
			granted = sec.RoleStaff
		}
		return granted, nil
	}
	if apperr.As(err) == nil || apperr.As(err).Code != "NOT_FOUND" {
		return sec.RoleCommenter, fmt.Errorf("staff_resolver_override_lookup_failed: %w", err)
	}

	// 4. Everyone else comments.
	return sec.RoleCommenter, nil
}

// normalizeEmail applies the canonical email comparison form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
