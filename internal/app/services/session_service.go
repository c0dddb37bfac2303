package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	"github.com/codewisehub/codewisehub-backend/internal/config"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/auth"
)

// SessionService manages the full session lifecycle: minting signed tokens,
// persisting their server-side rows, resolving presented tokens back to users
// and revoking sessions. Resolution requires both the signed claim and the
// stored row to be valid; deleting the row revokes the session even though the
// signature would still verify.
type SessionService struct {
	sessionRepo  repositories.ISessionRepository
	userRepo     repositories.IUserRepository
	tokenService *auth.TokenService
	policy       config.PolicyConfig
	logger       zerolog.Logger
}

// NewSessionService creates a new SessionService
func NewSessionService(
	sessionRepo repositories.ISessionRepository,
	userRepo repositories.IUserRepository,
	tokenService *auth.TokenService,
	policy config.PolicyConfig,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		tokenService: tokenService,
		policy:       policy,
		logger:       logger,
	}
}

// Issue mints a signed token for the user and stores its backing session row.
func (s *SessionService) Issue(ctx context.Context, user *models.User, userAgent, ipAddress *string) (string, error) {
	token, err := s.tokenService.Generate(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to generate session token")
		return "", err
	}

	session := &models.UserSession{
		UserID:       user.ID,
		SessionToken: token,
		ExpiresAt:    s.tokenService.SessionExpiry(),
		UserAgent:    userAgent,
		IPAddress:    ipAddress,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve maps a presented token to its user. Every failure mode (bad
// signature, embedded expiry, missing row, stored expiry, unknown or disabled
// user) collapses to apperrors.ErrSessionInvalid so that callers cannot probe
// which check rejected them.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokenService.Parse(token)
	if err != nil {
		return nil, apperrors.ErrSessionInvalid
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionInvalid) {
			return nil, apperrors.ErrSessionInvalid
		}
		s.logger.Error().Err(err).Msg("Session lookup failed")
		return nil, apperrors.ErrSessionInvalid
	}

	// The stored row is authoritative for identity; the claim is only
	// cross-checked against it.
	if session.UserID != claims.UserID {
		s.logger.Warn().Str("sessionUserID", session.UserID).Str("claimUserID", claims.UserID).
			Msg("Session token user mismatch")
		return nil, apperrors.ErrSessionInvalid
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, apperrors.ErrSessionInvalid
	}
	if !user.IsActive {
		return nil, apperrors.ErrSessionInvalid
	}

	if s.policy.EnforceSubscriptionExpiry {
		s.expireLapsedSubscription(ctx, user)
	}

	return user, nil
}

// expireLapsedSubscription flips an active subscription to expired once its
// end date has passed. Only runs when the subscription-expiry policy is on;
// the default behavior leaves lapsed subscriptions marked active.
func (s *SessionService) expireLapsedSubscription(ctx context.Context, user *models.User) {
	if user.SubscriptionStatus != models.SubscriptionActive {
		return
	}
	if user.SubscriptionEnd == nil || user.SubscriptionEnd.After(time.Now()) {
		return
	}

	if err := s.userRepo.UpdateSubscriptionStatus(ctx, user.ID, models.SubscriptionExpired); err != nil {
		s.logger.Error().Err(err).Str("userID", user.ID).Msg("Failed to expire lapsed subscription")
		return
	}
	user.SubscriptionStatus = models.SubscriptionExpired
}

// Revoke deletes the session row for a token. Idempotent: revoking an unknown
// or already-revoked token succeeds.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// SweepExpired deletes all session rows past their stored expiry.
func (s *SessionService) SweepExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx)
}
