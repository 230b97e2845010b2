// Copyright (c) 2026 Litho Press. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # Storage Contracts

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate email, or database errors
	*/
	Create(context context.Context, user *User) error

	/*
		FindByEmail retrieves a user by email address.

		The lookup is case-insensitive; callers do not need to normalize.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound or database errors
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByID retrieves a user by primary key.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *User: Hydrated account entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		UpdateRole persists the account's stored role.

		Used by the login-time role sync side effect.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - role: string

		Returns:
		  - error: Update failures
	*/
	UpdateRole(context context.Context, userID, role string) error

	/*
		UpdatePassword updates only the password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Update failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		TouchLastLogin stamps the account's last successful login time.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - at: time.Time

		Returns:
		  - error: Update failures
	*/
	TouchLastLogin(context context.Context, userID string, at time.Time) error
}

// SessionRepository defines the data access contract for refresh sessions.
type SessionRepository interface {

	// Create persists a new session record.
	Create(context context.Context, session *Session) error

	// FindByTokenHash resolves an active, unexpired session by token hash.
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	// Revoke marks a single session as revoked.
	Revoke(context context.Context, sessionID string) error

	// RevokeAll marks every active session of a user as revoked.
	RevokeAll(context context.Context, userID string) error
}

// ResetTokenRepository defines volatile storage for password reset tokens.
type ResetTokenRepository interface {

	// Set stores a reset token mapped to a user ID with a TTL.
	Set(context context.Context, token, userID string, ttl time.Duration) error

	// Get resolves a reset token back to its user ID.
	Get(context context.Context, token string) (string, error)

	// Delete removes a used or abandoned token.
	Delete(context context.Context, token string) error
}
