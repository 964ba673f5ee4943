package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/models"
	"github.com/courierhq/courier-backend/repositories"
)

// SessionRepository implements the repositories.SessionRepository interface
type SessionRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB, logger *zap.Logger) repositories.SessionRepository {
	return &SessionRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a newly minted session
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, tenant_id, token_hash, expires_at, created_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.TenantID,
		session.TokenHash,
		session.ExpiresAt,
		session.CreatedAt,
		session.RevokedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Debug("session created",
		zap.String("id", session.ID.String()),
		zap.String("tenant_id", session.TenantID.String()),
		zap.String("user_id", session.UserID.String()))
	return nil
}

// GetByTokenHash retrieves a session by the hash of its credential. This reads
// live store state on every call; validation results are never cached.
func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	query := `
		SELECT id, user_id, tenant_id, token_hash, expires_at, created_at, revoked_at
		FROM sessions
		WHERE token_hash = $1
	`

	executor := GetExecutor(ctx, r.db)
	session := &models.Session{}

	err := executor.QueryRowContext(ctx, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TenantID,
		&session.TokenHash,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.RevokedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// Revoke stamps revoked_at on the session. The WHERE clause keeps the flag
// monotonic: an already-revoked session keeps its original timestamp.
func (r *SessionRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE sessions
		SET revoked_at = $2
		WHERE id = $1 AND revoked_at IS NULL
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	r.logger.Debug("session revoked", zap.String("id", id.String()))
	return nil
}
