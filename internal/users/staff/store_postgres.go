// Copyright (c) 2026 Litho Press. All rights reserved.

package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/pkg/pagination"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByEmail retrieves the access grant for an email address.

Parameters:
  - context: context.Context
  - email: string (already normalized)

Returns:
  - *AccessGrant: Hydrated grant
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*AccessGrant, error) {
	const query = `
		SELECT email, role, grantedby, createdat
		FROM users.staffaccess
		WHERE email = $1`

	grant := &AccessGrant{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&grant.Email,
		&grant.Role,
		&grant.GrantedBy,
		&grant.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Access grant")
		}
		return nil, fmt.Errorf("postgres_staff_repo_find_by_email_failed: %w", err)
	}

	return grant, nil
}

/*
Upsert creates or replaces the grant for an email address.

Description: Re-granting an email simply replaces the role; the original
creation time is preserved.

Parameters:
  - context: context.Context
  - grant: *AccessGrant

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, grant *AccessGrant) error {
	const query = `
		INSERT INTO users.staffaccess (email, role, grantedby, createdat)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email)
		DO UPDATE SET role = EXCLUDED.role, grantedby = EXCLUDED.grantedby`

	if grant.CreatedAt.IsZero() {
		grant.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		grant.Email,
		grant.Role,
		grant.GrantedBy,
		grant.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_staff_repo_upsert_failed: %w", err)
	}

	return nil
}

/*
Delete removes the grant for an email address.

Parameters:
  - context: context.Context
  - email: string (already normalized)

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) Delete(context context.Context, email string) error {
	const query = "DELETE FROM users.staffaccess WHERE email = $1"

	tag, err := repository.pool.Exec(context, query, email)
	if err != nil {
		return fmt.Errorf("postgres_staff_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Access grant")
	}

	return nil
}

/*
List returns access grants newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []*AccessGrant: Page of grants
  - int: Total grant count
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]*AccessGrant, int, error) {
	const countQuery = "SELECT COUNT(*) FROM users.staffaccess"

	var total int
	if err := repository.pool.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_staff_repo_count_failed: %w", err)
	}

	const query = `
		SELECT email, role, grantedby, createdat
		FROM users.staffaccess
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_staff_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var grants []*AccessGrant
	for rows.Next() {
		grant := &AccessGrant{}
		if err := rows.Scan(&grant.Email, &grant.Role, &grant.GrantedBy, &grant.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("postgres_staff_repo_scan_failed: %w", err)
		}
		grants = append(grants, grant)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_staff_repo_rows_failed: %w", err)
	}

	return grants, total, nil
}
