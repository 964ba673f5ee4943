package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/models"
	"github.com/courierhq/courier-backend/repositories"
)

// PermissionOverrideRepository implements the repositories.PermissionOverrideRepository interface
type PermissionOverrideRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewPermissionOverrideRepository creates a new permission override repository
func NewPermissionOverrideRepository(db *DB, logger *zap.Logger) repositories.PermissionOverrideRepository {
	return &PermissionOverrideRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts the override or replaces the is_allowed value of the
// existing row. The (tenant_id, user_id, permission) primary key guarantees a
// single row per permission; the last write wins.
func (r *PermissionOverrideRepository) Upsert(ctx context.Context, override *models.PermissionOverride) error {
	query := `
		INSERT INTO permission_overrides (tenant_id, user_id, permission, is_allowed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, user_id, permission)
		DO UPDATE SET is_allowed = EXCLUDED.is_allowed, updated_at = EXCLUDED.updated_at
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		override.TenantID,
		override.UserID,
		override.Permission,
		override.IsAllowed,
		override.CreatedAt,
		override.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert permission override: %w", err)
	}

	r.logger.Debug("permission override upserted",
		zap.String("tenant_id", override.TenantID.String()),
		zap.String("user_id", override.UserID.String()),
		zap.String("permission", override.Permission),
		zap.Bool("is_allowed", override.IsAllowed))
	return nil
}

// GetForUser retrieves all overrides for a (tenant, user) pair
func (r *PermissionOverrideRepository) GetForUser(ctx context.Context, tenantID, userID uuid.UUID) ([]*models.PermissionOverride, error) {
	query := `
		SELECT tenant_id, user_id, permission, is_allowed, created_at, updated_at
		FROM permission_overrides
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY permission
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query permission overrides: %w", err)
	}
	defer rows.Close()

	var overrides []*models.PermissionOverride
	for rows.Next() {
		override := &models.PermissionOverride{}
		err := rows.Scan(
			&override.TenantID,
			&override.UserID,
			&override.Permission,
			&override.IsAllowed,
			&override.CreatedAt,
			&override.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permission override: %w", err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating permission override rows: %w", err)
	}

	return overrides, nil
}

// Delete removes one override row
func (r *PermissionOverrideRepository) Delete(ctx context.Context, tenantID, userID uuid.UUID, permission string) error {
	query := `
		DELETE FROM permission_overrides
		WHERE tenant_id = $1 AND user_id = $2 AND permission = $3
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, tenantID, userID, permission)
	if err != nil {
		return fmt.Errorf("failed to delete permission override: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("permission override %q: %w", permission, repositories.ErrNotFound)
	}

	r.logger.Debug("permission override deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", userID.String()),
		zap.String("permission", permission))
	return nil
}
