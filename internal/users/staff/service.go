// Copyright (c) 2026 Litho Press. All rights reserved.

package staff

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/internal/platform/validate"
	"github.com/lithopress/litho/pkg/pagination"
)

// Service implements access-grant management use cases.
//
// All operations here are admin-only; the HTTP layer enforces that before
// the service is reached.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new staff [Service] with its dependencies.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

/*
Grant creates or replaces a role override for an email address.

Description: The grant is keyed by the normalized email, so it applies to
an account that registers later with any casing of the same address. Only
admin and staff are grantable; the environment allow-list is not writable
through this path.

Parameters:
  - context: context.Context
  - email: string
  - role: string (admin or staff)
  - grantedBy: string (acting admin's user ID)

Returns:
  - *AccessGrant: The stored grant
  - error: Validation or storage errors
*/
func (service *Service) Grant(context context.Context, email, role, grantedBy string) (*AccessGrant, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		OneOf(FieldRole, role, string(sec.RoleAdmin), string(sec.RoleStaff))

	if err := validator.Err(); err != nil {
		return nil, err
	}

	grant := &AccessGrant{
		Email:     normalizeEmail(email),
		Role:      sec.FromStored(role),
		GrantedBy: grantedBy,
	}

	if err := service.repo.Upsert(context, grant); err != nil {
		return nil, fmt.Errorf("staff_service_grant_failed: %w", err)
	}

	service.logger.Info("staff_access_granted",
		slog.String("email", grant.Email),
		slog.String("role", string(grant.Role)),
		slog.String("granted_by", grantedBy),
	)

	return grant, nil
}

/*
Revoke removes the role override for an email address.

Description: Revoking only removes the grant row. An account whose stored
role was already synced to staff keeps that role until the next login
re-runs resolution; allow-list admins are unaffected entirely.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: apperr.NotFound or storage errors
*/
func (service *Service) Revoke(context context.Context, email string) error {
	normalized := normalizeEmail(email)

	if err := service.repo.Delete(context, normalized); err != nil {
		return err
	}

	service.logger.Info("staff_access_revoked", slog.String("email", normalized))

	return nil
}

/*
List returns the page of standing grants, newest first.
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]*AccessGrant, int, error) {
	return service.repo.List(context, params)
}
