package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/dberrors"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/logger"
)

// ISessionRepository defines the interface for session row operations
type ISessionRepository interface {
	Create(ctx context.Context, session *models.UserSession) error
	GetByToken(ctx context.Context, token string) (*models.UserSession, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// SessionRepository handles user_sessions database operations
type SessionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create persists a new session row
func (r *SessionRepository) Create(ctx context.Context, session *models.UserSession) error {
	sql, args, err := r.sb.Insert("user_sessions").
		Columns("user_id", "session_token", "expires_at", "user_agent", "ip_address").
		Values(session.UserID, session.SessionToken, session.ExpiresAt, session.UserAgent, session.IPAddress).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create session SQL")
		return fmt.Errorf("failed to build create session query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		// Tokens carry a random jti, so a collision here means something is
		// badly wrong rather than a user-facing condition.
		if dberrors.IsDuplicateConstraintError(err, "user_sessions_session_token_key") {
			logger.Warn().Str("userID", session.UserID).Msg("Attempted to create duplicate session token")
			return apperrors.ErrSessionInvalid
		}
		logger.Error().Err(err).Str("userID", session.UserID).Msg("Error executing create session query")
		return fmt.Errorf("error creating session: %w", err)
	}

	return nil
}

// GetByToken retrieves a session row by token value. A missing row and an
// expired row are both reported as apperrors.ErrSessionInvalid; callers must
// not be able to tell the difference.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.UserSession, error) {
	sql, args, err := r.sb.Select("id", "user_id", "session_token", "expires_at", "user_agent", "ip_address", "created_at").
		From("user_sessions").
		Where(squirrel.Eq{"session_token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get session SQL")
		return nil, fmt.Errorf("failed to build get session query: %w", err)
	}

	session := &models.UserSession{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&session.ID, &session.UserID, &session.SessionToken, &session.ExpiresAt,
		&session.UserAgent, &session.IPAddress, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionInvalid
		}
		logger.Error().Err(err).Msg("Error scanning session row")
		return nil, fmt.Errorf("error retrieving session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrSessionInvalid
	}

	return session, nil
}

// DeleteByToken removes a session row. Deleting a nonexistent token is a
// no-op, which makes revocation idempotent.
func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	sql, args, err := r.sb.Delete("user_sessions").
		Where(squirrel.Eq{"session_token": token}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete session SQL")
		return fmt.Errorf("failed to build delete session query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing delete session query")
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

// DeleteExpired removes all session rows whose stored expiry has passed and
// returns how many were deleted. Safe to run concurrently with validation: a
// resolve that loses the race sees a missing row and treats it as invalid.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Delete("user_sessions").
		Where(squirrel.Lt{"expires_at": time.Now()}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building sweep sessions SQL")
		return 0, fmt.Errorf("failed to build sweep sessions query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing sweep sessions query")
		return 0, fmt.Errorf("error sweeping sessions: %w", err)
	}

	deleted := cmdTag.RowsAffected()
	if deleted > 0 {
		logger.Info().Int64("deletedCount", deleted).Msg("Swept expired sessions")
	}
	return deleted, nil
}
