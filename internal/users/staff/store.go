// Copyright (c) 2026 Litho Press. All rights reserved.

package staff

import (
	"context"

	"github.com/lithopress/litho/pkg/pagination"
)

// Repository defines the data access contract for access grants.
type Repository interface {

	/*
		FindByEmail returns the grant for a normalized email address.

		Parameters:
		  - context: context.Context
		  - email: string (already normalized)

		Returns:
		  - *AccessGrant: The standing grant
		  - error: apperr.NotFound or database errors
	*/
	FindByEmail(context context.Context, email string) (*AccessGrant, error)

	/*
		Upsert creates or replaces the grant for an email address.

		Parameters:
		  - context: context.Context
		  - grant: *AccessGrant

		Returns:
		  - error: Persistence failures
	*/
	Upsert(context context.Context, grant *AccessGrant) error

	/*
		Delete removes the grant for an email address.

		Parameters:
		  - context: context.Context
		  - email: string (already normalized)

		Returns:
		  - error: apperr.NotFound or database errors
	*/
	Delete(context context.Context, email string) error

	/*
		List returns grants ordered by creation time, newest first.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []*AccessGrant: Page of grants
		  - int: Total grant count
		  - error: Database errors
	*/
	List(context context.Context, params pagination.Params) ([]*AccessGrant, int, error)
}
