// Copyright (c) 2026 Litho Press. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Emails are stored lowercased so the unique index enforces
case-insensitive uniqueness. Duplicate registrations surface as Conflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, email, passwordhash, displayname, avatarurl, role, createdat, updatedat
		) VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.DisplayName,
		user.AvatarURL,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_user_repo_create_failed")
	}

	return nil
}

/*
FindByEmail retrieves a user record by their email address.

Description: The comparison lowercases both sides, so any casing of a
registered address resolves to the same account.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, email, passwordhash, displayname, avatarurl, role, lastloginat, createdat, updatedat
		FROM users.account
		WHERE email = LOWER(TRIM($1)) AND deletedat IS NULL`

	return repository.scanUser(repository.pool.QueryRow(context, query, email), "find_by_email")
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, email, passwordhash, displayname, avatarurl, role, lastloginat, createdat, updatedat
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	return repository.scanUser(repository.pool.QueryRow(context, query, id), "find_by_id")
}

// scanUser hydrates a User from a single-row query.
func (repository *PostgresUserRepository) scanUser(row pgx.Row, operation string) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Role,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_user_repo_%s_failed: %w", operation, err)
	}

	return user, nil
}

/*
UpdateRole persists the account's stored role.

Description: Called by the login-time sync when the resolved role differs
from the stored one.

Parameters:
  - context: context.Context
  - userID: string
  - role: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdateRole(context context.Context, userID, role string) error {
	const query = `
		UPDATE users.account
		SET role = $2, updatedat = $3
		WHERE id = $1 AND deletedat IS NULL`

	_, err := repository.pool.Exec(context, query, userID, role, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_role_failed: %w", err)
	}

	return nil
}

/*
UpdatePassword updates only the password hash for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = $3
		WHERE id = $1 AND deletedat IS NULL`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

/*
TouchLastLogin stamps the account's last successful login time.

Parameters:
  - context: context.Context
  - userID: string
  - at: time.Time

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) TouchLastLogin(context context.Context, userID string, at time.Time) error {
	const query = "UPDATE users.account SET lastloginat = $2 WHERE id = $1"

	_, err := repository.pool.Exec(context, query, userID, at)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_touch_last_login_failed: %w", err)
	}

	return nil
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Create persists a new session record into the users.session table.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	const query = `
		INSERT INTO users.session (
			id, userid, tokenhash, useragent, ipaddress, expiresat, isrevoked, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID,
		session.UserID,
		session.TokenHash,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
		session.IsRevoked,
		session.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_session_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash retrieves an active session by its unique token hash.

Description: Expired and revoked sessions are invisible to this lookup.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	const query = `
		SELECT id, userid, tokenhash, useragent, ipaddress, expiresat, isrevoked, createdat
		FROM users.session
		WHERE tokenhash = $1 AND isrevoked = FALSE AND expiresat > NOW()`

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.UserAgent,
		&session.IPAddress,
		&session.ExpiresAt,
		&session.IsRevoked,
		&session.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("postgres_session_repo_find_failed: %w", err)
	}

	return session, nil
}

/*
Revoke marks a specific session as revoked.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE id = $1"

	_, err := repository.pool.Exec(context, query, sessionID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeAll marks all active sessions for a user as revoked.

Description: Security cleanup after password resets.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch revocation failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE WHERE userid = $1 AND isrevoked = FALSE"

	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_session_repo_revoke_all_failed: %w", err)
	}

	return nil
}
