// Copyright (c) 2026 Litho Press. All rights reserved.

/*
Package auth implements the identity and session management layer.

It covers registration, credential verification, RS256 access tokens with
rotating refresh sessions, and password recovery. Effective roles are not
decided here: login delegates to the staff resolver and synchronizes the
stored role with its verdict.

# Architecture

  - Service: Orchestrates the flows (Register, Login, Refresh, Reset).
  - Repository: Abstracted interfaces for Postgres (users, sessions) and
    Redis (reset tokens).
  - Security: bcrypt hashing and RSA-signed JWTs via the platform sec layer.
*/
package auth

import (
	"time"

	"github.com/lithopress/litho/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account on the platform.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	AvatarURL    string       `json:"avatar_url,omitempty"`
	Role         sec.UserRole `json:"role"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the
// authentication domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldToken       = "token"
	FieldNewPassword = "new_password"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
	FieldMessage     = "message"
)
