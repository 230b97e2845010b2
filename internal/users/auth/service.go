// Copyright (c) 2026 Litho Press. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/internal/platform/validate"
	"github.com/lithopress/litho/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - email: The email of the account.
	//   - displayName: The public name of the account.
	//   - role: The effective (resolved) role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, email, displayName, role string, timeToLive time.Duration) (string, error)
}

// RoleResolver decides the effective role for an email and stored role.
// Implemented by the staff package's resolver.
type RoleResolver interface {
	Resolve(context context.Context, email, storedRole string) (sec.UserRole, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login, or
// role synchronization logic must be reviewed carefully.
type Service struct {
	userRepository       UserRepository
	sessionRepository    SessionRepository
	resetTokenRepository ResetTokenRepository
	roleResolver         RoleResolver
	tokenProvider        TokenProvider
	logger               *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	resetRepo ResetTokenRepository,
	resolver RoleResolver,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:       userRepo,
		sessionRepository:    sessionRepo,
		resetTokenRepository: resetRepo,
		roleResolver:         resolver,
		tokenProvider:        tokenProv,
		logger:               logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: New accounts always start as commenters; elevated roles are
conferred at login time by the role resolver, never at registration.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Validation, Conflict (if email exists), or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldDisplayName, input.DisplayName).
		MaxLen(FieldDisplayName, input.DisplayName, 80).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  input.DisplayName,
		Role:         sec.RoleCommenter,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, resolves the effective role, and
initializes a new session. Role resolution happens on every login; when
the resolved role differs from the stored one, the stored role is updated
so the account row reflects reality (the legacy "uploader" value is
rewritten to "staff" this way, and fresh access grants take effect).

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Resolve the effective role from all three sources.
	resolved, err := service.roleResolver.Resolve(context, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_role_resolution_failed: %w", err)
	}

	// Sync side effect: persist the resolved role when it differs, so the
	// stored value converges and future resolutions short-circuit.
	if string(user.Role) != string(resolved) {
		if err := service.userRepository.UpdateRole(context, user.ID, string(resolved)); err != nil {
			return nil, fmt.Errorf("auth_service_role_sync_failed: %w", err)
		}
		service.logger.Info("stored_role_synced",
			slog.String("user_id", user.ID),
			slog.String("from", string(user.Role)),
			slog.String("to", string(resolved)),
		)
	}
	user.Role = resolved

	// Generate short-lived Access Token carrying the effective role.
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, user.DisplayName, string(resolved), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Create and persist the tracking session
	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: input.UserAgent,
		IPAddress: input.IPAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	// Best-effort bookkeeping; a failed stamp never blocks the login.
	_ = service.userRepository.TouchLastLogin(context, user.ID, time.Now())

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

/*
Logout permanently revokes the user's active session.

Description: Ensures that a tracked refresh token can never be used again.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	// If the session is already gone or invalid, logout is considered
	// successful (idempotent operation).
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent
reuse (replay attack mitigation), and issues a fresh pair of rotated
tokens. The new access token carries the account's current stored role;
full resolution only re-runs at login.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) the token is either expired, already revoked, or completely invalid.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: Revoke the old session to prevent replay attacks
	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// Fetch the user associated with this session
	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	// Generate a fresh Access Token
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Email, user.DisplayName, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_access_token_failed: %w", err)
	}

	// Generate a fresh Refresh Token for the rotation
	newRefreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_secure_token_failed: %w", err)
	}

	// Persist the new session
	expiresAt := time.Now().Add(RefreshTokenTTL)
	newSession := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(newRefreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		IsRevoked: false,
	}

	if err := service.sessionRepository.Create(context, newSession); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          newRefreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves it to Redis.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Discovery token
  - error: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// Look up user.
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent user enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, updates the DB,
and revokes all active sessions for security cleanup.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	validator := &validate.Validator{}
	validator.MinLen(FieldNewPassword, newPassword, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	// Retrieve the userID associated with the reset token from Redis
	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Security Cleanup: Revoke EVERY active session for this user
	_ = service.sessionRepository.RevokeAll(context, userID)

	// Delete the used token from Redis
	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}
