// Copyright (c) 2026 Litho Press. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithopress/litho/internal/platform/apperr"
	"github.com/lithopress/litho/internal/platform/sec"
	"github.com/lithopress/litho/internal/users/auth"
	"github.com/lithopress/litho/internal/users/staff"
)

// # Test Doubles

type fakeUserRepository struct {
	users       map[string]*auth.User // keyed by lowercased email
	roleUpdates []string              // "userID:role" audit of UpdateRole calls
}

func (repository *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	key := strings.ToLower(user.Email)
	if _, exists := repository.users[key]; exists {
		return apperr.Conflict("Resource already exists")
	}
	repository.users[key] = user
	return nil
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repository.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) UpdateRole(_ context.Context, userID, role string) error {
	repository.roleUpdates = append(repository.roleUpdates, userID+":"+role)
	for _, user := range repository.users {
		if user.ID == userID {
			user.Role = sec.UserRole(role)
		}
	}
	return nil
}

func (repository *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	for _, user := range repository.users {
		if user.ID == userID {
			user.PasswordHash = newHash
		}
	}
	return nil
}

func (repository *fakeUserRepository) TouchLastLogin(_ context.Context, _ string, _ time.Time) error {
	return nil
}

type fakeSessionRepository struct {
	sessions map[string]*auth.Session // keyed by token hash
}

func (repository *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	repository.sessions[session.TokenHash] = session
	return nil
}

func (repository *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := repository.sessions[tokenHash]
	if !ok || session.IsRevoked {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (repository *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	for _, session := range repository.sessions {
		if session.ID == sessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repository *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, session := range repository.sessions {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

type fakeResetTokenRepository struct {
	tokens map[string]string
}

func (repository *fakeResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repository.tokens[token] = userID
	return nil
}

func (repository *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	userID, ok := repository.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token is invalid or expired")
	}
	return userID, nil
}

func (repository *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(repository.tokens, token)
	return nil
}

// fakeTokenProvider records the role embedded in the last issued token.
type fakeTokenProvider struct {
	lastRole string
}

func (provider *fakeTokenProvider) GenerateAccessToken(userID, _, _, role string, _ time.Duration) (string, error) {
	provider.lastRole = role
	return "signed." + userID + "." + role, nil
}

// emptyOverrides is an override source with no grants.
type emptyOverrides struct{}

func (emptyOverrides) FindByEmail(_ context.Context, _ string) (*staff.AccessGrant, error) {
	return nil, apperr.NotFound("Access grant")
}

// # Fixture

type fixture struct {
	service  *auth.Service
	users    *fakeUserRepository
	sessions *fakeSessionRepository
	resets   *fakeResetTokenRepository
	tokens   *fakeTokenProvider
}

// newFixture wires the service against the real staff resolver so the
// login-time sync is exercised end to end.
func newFixture(t *testing.T, allowList []string) *fixture {
	t.Helper()

	users := &fakeUserRepository{users: map[string]*auth.User{}}
	sessions := &fakeSessionRepository{sessions: map[string]*auth.Session{}}
	resets := &fakeResetTokenRepository{tokens: map[string]string{}}
	tokens := &fakeTokenProvider{}

	resolver := staff.NewResolver(allowList, emptyOverrides{})
	service := auth.NewService(users, sessions, resets, resolver, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &fixture{service: service, users: users, sessions: sessions, resets: resets, tokens: tokens}
}

func (f *fixture) seedUser(t *testing.T, email, password string, role sec.UserRole) *auth.User {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	user := &auth.User{
		ID:           "user-" + email,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Tester",
		Role:         role,
	}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

// # Login & Role Sync

/*
TestService_Login_SyncsLegacyUploaderRole verifies that an account whose
row still says "uploader" logs in as staff and has the row rewritten.
*/
func TestService_Login_SyncsLegacyUploaderRole(t *testing.T) {
	f := newFixture(t, nil)
	user := f.seedUser(t, "veteran@example.com", "correct horse", sec.UserRole("uploader"))

	session, err := f.service.Login(context.Background(), auth.LoginInput{
		Email:    "veteran@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleStaff, session.User.Role)
	assert.Equal(t, "staff", f.tokens.lastRole)
	assert.Equal(t, []string{user.ID + ":staff"}, f.users.roleUpdates)
}

/*
TestService_Login_AllowListPromotesToAdmin checks that allow-list members
are promoted to admin at login even when the stored row says commenter,
regardless of email casing.
*/
func TestService_Login_AllowListPromotesToAdmin(t *testing.T) {
	f := newFixture(t, []string{"Root@Litho.Press"})
	user := f.seedUser(t, "root@litho.press", "correct horse", sec.RoleCommenter)

	session, err := f.service.Login(context.Background(), auth.LoginInput{
		Email:    "ROOT@litho.press",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleAdmin, session.User.Role)
	assert.Equal(t, []string{user.ID + ":admin"}, f.users.roleUpdates)
}

/*
TestService_Login_NoSyncWhenConverged ensures the role update is skipped
entirely once the stored role already matches resolution.
*/
func TestService_Login_NoSyncWhenConverged(t *testing.T) {
	f := newFixture(t, nil)
	f.seedUser(t, "writer@example.com", "correct horse", sec.RoleStaff)

	session, err := f.service.Login(context.Background(), auth.LoginInput{
		Email:    "writer@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	assert.Equal(t, sec.RoleStaff, session.User.Role)
	assert.Empty(t, f.users.roleUpdates)
}

/*
TestService_Login_RejectsBadCredentials covers the wrong-password and
unknown-email paths; both return the same generic unauthorized error.
*/
func TestService_Login_RejectsBadCredentials(t *testing.T) {
	f := newFixture(t, nil)
	f.seedUser(t, "reader@example.com", "correct horse", sec.RoleCommenter)

	for _, input := range []auth.LoginInput{
		{Email: "reader@example.com", Password: "wrong"},
		{Email: "ghost@example.com", Password: "correct horse"},
	} {
		_, err := f.service.Login(context.Background(), input)
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
		assert.Equal(t, "Invalid login credentials", appError.Message)
	}

	assert.Empty(t, f.sessions.sessions, "failed logins must not create sessions")
}

// # Registration

/*
TestService_Register enforces commenter default role and email uniqueness.
*/
func TestService_Register(t *testing.T) {
	f := newFixture(t, nil)

	user, err := f.service.Register(context.Background(), auth.RegisterInput{
		Email:       "new@example.com",
		Password:    "long enough",
		DisplayName: "Newcomer",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleCommenter, user.Role)
	assert.NotEqual(t, "long enough", user.PasswordHash)

	_, err = f.service.Register(context.Background(), auth.RegisterInput{
		Email:       "new@example.com",
		Password:    "long enough",
		DisplayName: "Imposter",
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

// # Session Rotation

/*
TestService_RefreshSession_Rotates verifies that refreshing revokes the
old session and the replaced token can never be reused.
*/
func TestService_RefreshSession_Rotates(t *testing.T) {
	f := newFixture(t, nil)
	f.seedUser(t, "reader@example.com", "correct horse", sec.RoleCommenter)

	login, err := f.service.Login(context.Background(), auth.LoginInput{
		Email:    "reader@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	rotated, err := f.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "ip")
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)

	// Replay of the original token fails.
	_, err = f.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "ip")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

// # Password Recovery

/*
TestService_PasswordReset walks the full recovery flow and checks that
every session is revoked afterwards.
*/
func TestService_PasswordReset(t *testing.T) {
	f := newFixture(t, nil)
	f.seedUser(t, "reader@example.com", "correct horse", sec.RoleCommenter)

	login, err := f.service.Login(context.Background(), auth.LoginInput{
		Email:    "reader@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)

	token, err := f.service.RequestPasswordReset(context.Background(), "reader@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, f.service.ResetPassword(context.Background(), token, "brand new phrase"))

	// Old password no longer works; the new one does.
	_, err = f.service.Login(context.Background(), auth.LoginInput{
		Email:    "reader@example.com",
		Password: "correct horse",
	})
	require.Error(t, err)

	_, err = f.service.Login(context.Background(), auth.LoginInput{
		Email:    "reader@example.com",
		Password: "brand new phrase",
	})
	require.NoError(t, err)

	// The pre-reset session is dead.
	_, err = f.service.RefreshSession(context.Background(), login.RefreshToken, "ua", "ip")
	require.Error(t, err)

	// Unknown emails produce no token and no error.
	token, err = f.service.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, token)
}
