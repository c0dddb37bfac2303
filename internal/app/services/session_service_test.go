package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/config"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/auth"
)

type sessionTestEnv struct {
	userRepo    *fakeUserRepo
	sessionRepo *fakeSessionRepo
	tokens      *auth.TokenService
	sessions    *SessionService
}

func newSessionTestEnv(policy config.PolicyConfig, ttl time.Duration) *sessionTestEnv {
	userRepo := newFakeUserRepo()
	sessionRepo := newFakeSessionRepo()
	tokens := auth.NewTokenService(auth.TokenConfig{
		SecretKey:   "test-secret",
		SessionTTL:  ttl,
		TokenIssuer: "codewisehub.test",
	})
	return &sessionTestEnv{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		sessions:    NewSessionService(sessionRepo, userRepo, tokens, policy, zerolog.Nop()),
	}
}

func (env *sessionTestEnv) addUser(t *testing.T, user *models.User) *models.User {
	t.Helper()
	require.NoError(t, env.userRepo.Create(context.Background(), user))
	return user
}

func activeUser(email string) *models.User {
	hash := "x"
	return &models.User{
		Email:              email,
		PasswordHash:       &hash,
		Name:               "Test User",
		Role:               models.RoleStudent,
		SubscriptionStatus: models.SubscriptionPending,
		IsActive:           true,
	}
}

func TestSessionIssueAndResolve(t *testing.T) {
	env := newSessionTestEnv(config.PolicyConfig{}, time.Hour)
	user := env.addUser(t, activeUser("kid@example.com"))

	token, err := env.sessions.Issue(context.Background(), user, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := env.sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)
}

func TestSessionResolveRevoked(t *testing.T) {
	env := newSessionTestEnv(config.PolicyConfig{}, time.Hour)
	user := env.addUser(t, activeUser("kid@example.com"))

	token, err := env.sessions.Issue(context.Background(), user, nil, nil)
	require.NoError(t, err)

	require.NoError(t, env.sessions.Revoke(context.Background(), token))

	// The signature still verifies, but the row is gone.
	_, err = env.sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)
}

func TestSessionRevokeIdempotent(t *testing.T) {
	env := newSessionTestEnv(config.PolicyConfig{}, time.Hour)

	assert.NoError(t, env.sessions.Revoke(context.Background(), "never-issued"))
}

func TestSessionResolveGarbage(t *testing.T) {
	env := newSessionTestEnv(config.PolicyConfig{}, time.Hour)

	_, err := env.sessions.Resolve(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)

	_, err = env.sessions.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)
}

func TestSessionResolveDisabledUser(t *testing.T) {
	env := newSessionTestEnv(config.PolicyConfig{}, time.Hour)
	user := env.addUser(t, activeUser("kid@example.com"))

	token, err := env.sessions.Issue(context.Background(), user, nil, nil)
	require.NoError(t, err)

	env.userRepo.users[user.ID].IsActive = false

	_, err = env.sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)
}

func TestSessionResolveExpired(t *testing.T) {
	env := newSessionTestEnv(config.PolicyConfig{}, time.Hour)
	user := env.addUser(t, activeUser("kid@example.com"))

	token, err := env.sessions.Issue(context.Background(), user, nil, nil)
	require.NoError(t, err)

	// Expire the stored row; the embedded claim would still pass.
	env.sessionRepo.sessions[token].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = env.sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrSessionInvalid)
}

func TestSessionSweepExpired(t *testing.T) {
	env := newSessionTestEnv(config.PolicyConfig{}, time.Hour)
	user := env.addUser(t, activeUser("kid@example.com"))

	keep, err := env.sessions.Issue(context.Background(), user, nil, nil)
	require.NoError(t, err)
	drop, err := env.sessions.Issue(context.Background(), user, nil, nil)
	require.NoError(t, err)

	env.sessionRepo.sessions[drop].ExpiresAt = time.Now().Add(-time.Minute)

	deleted, err := env.sessions.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = env.sessions.Resolve(context.Background(), keep)
	assert.NoError(t, err)
}

func TestSessionSubscriptionExpiryPolicyOff(t *testing.T) {
	env := newSessionTestEnv(config.PolicyConfig{}, time.Hour)
	user := activeUser("kid@example.com")
	past := time.Now().Add(-24 * time.Hour)
	user.SubscriptionStatus = models.SubscriptionActive
	user.SubscriptionEnd = &past
	env.addUser(t, user)

	token, err := env.sessions.Issue(context.Background(), user, nil, nil)
	require.NoError(t, err)

	resolved, err := env.sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	// Default behavior: a lapsed subscription stays marked active.
	assert.Equal(t, models.SubscriptionActive, resolved.SubscriptionStatus)
}

func TestSessionSubscriptionExpiryPolicyOn(t *testing.T) {
	env := newSessionTestEnv(config.PolicyConfig{EnforceSubscriptionExpiry: true}, time.Hour)
	user := activeUser("kid@example.com")
	past := time.Now().Add(-24 * time.Hour)
	user.SubscriptionStatus = models.SubscriptionActive
	user.SubscriptionEnd = &past
	env.addUser(t, user)

	token, err := env.sessions.Issue(context.Background(), user, nil, nil)
	require.NoError(t, err)

	resolved, err := env.sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionExpired, resolved.SubscriptionStatus)
	assert.Equal(t, models.SubscriptionExpired, env.userRepo.users[user.ID].SubscriptionStatus)
}
