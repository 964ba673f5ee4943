package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/models"
	"github.com/courierhq/courier-backend/repositories"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return &DB{DB: sqlDB, logger: zap.NewNop()}, mock
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func sessionColumns() []string {
	return []string{"id", "user_id", "tenant_id", "token_hash", "expires_at", "created_at", "revoked_at"}
}

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the session row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, zap.NewNop())
		session := models.NewSession(newUUID(t), newUUID(t), "deadbeef", time.Hour)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sessions")).
			WithArgs(session.ID, session.UserID, session.TenantID, session.TokenHash,
				session.ExpiresAt, session.CreatedAt, session.RevokedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(ctx, session)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSessionRepository_GetByTokenHash(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the session for a known hash", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, zap.NewNop())
		session := models.NewSession(newUUID(t), newUUID(t), "deadbeef", time.Hour)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE token_hash = $1")).
			WithArgs("deadbeef").
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow(session.ID, session.UserID, session.TenantID, session.TokenHash,
					session.ExpiresAt, session.CreatedAt, nil))

		got, err := repo.GetByTokenHash(ctx, "deadbeef")

		require.NoError(t, err)
		assert.Equal(t, session.ID, got.ID)
		assert.False(t, got.Revoked())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("revoked_at scans into the revocation flag", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, zap.NewNop())
		session := models.NewSession(newUUID(t), newUUID(t), "deadbeef", time.Hour)
		revokedAt := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE token_hash = $1")).
			WithArgs("deadbeef").
			WillReturnRows(sqlmock.NewRows(sessionColumns()).
				AddRow(session.ID, session.UserID, session.TenantID, session.TokenHash,
					session.ExpiresAt, session.CreatedAt, revokedAt))

		got, err := repo.GetByTokenHash(ctx, "deadbeef")

		require.NoError(t, err)
		assert.True(t, got.Revoked())
	})

	t.Run("unknown hash maps to ErrNotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, zap.NewNop())

		mock.ExpectQuery(regexp.QuoteMeta("WHERE token_hash = $1")).
			WithArgs("unknown").
			WillReturnRows(sqlmock.NewRows(sessionColumns()))

		_, err := repo.GetByTokenHash(ctx, "unknown")

		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestSessionRepository_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps revoked_at only on live sessions", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, zap.NewNop())
		id := newUUID(t)
		at := time.Now()

		mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND revoked_at IS NULL")).
			WithArgs(id, at).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Revoke(ctx, id, at)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("revoking an already revoked session is a no-op", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSessionRepository(db, zap.NewNop())
		id := newUUID(t)
		at := time.Now()

		mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND revoked_at IS NULL")).
			WithArgs(id, at).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Revoke(ctx, id, at)

		assert.NoError(t, err)
	})
}
