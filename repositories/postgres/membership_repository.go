package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/models"
	"github.com/courierhq/courier-backend/repositories"
)

// MembershipRepository implements the repositories.MembershipRepository interface
type MembershipRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *DB, logger *zap.Logger) repositories.MembershipRepository {
	return &MembershipRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts the membership, leaving any existing (tenant, user) row
// untouched. The primary key on (tenant_id, user_id) makes concurrent creates
// collapse into a single row instead of duplicating.
func (r *MembershipRepository) Upsert(ctx context.Context, membership *models.TenantMembership) error {
	query := `
		INSERT INTO tenant_memberships (tenant_id, user_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tenant_id, user_id) DO NOTHING
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		membership.TenantID,
		membership.UserID,
		membership.Role,
		membership.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert membership: %w", err)
	}

	r.logger.Debug("membership upserted",
		zap.String("tenant_id", membership.TenantID.String()),
		zap.String("user_id", membership.UserID.String()),
		zap.String("role", string(membership.Role)))
	return nil
}

// Get retrieves the membership for a (tenant, user) pair
func (r *MembershipRepository) Get(ctx context.Context, tenantID, userID uuid.UUID) (*models.TenantMembership, error) {
	query := `
		SELECT tenant_id, user_id, role, created_at
		FROM tenant_memberships
		WHERE tenant_id = $1 AND user_id = $2
	`

	executor := GetExecutor(ctx, r.db)
	membership := &models.TenantMembership{}

	err := executor.QueryRowContext(ctx, query, tenantID, userID).Scan(
		&membership.TenantID,
		&membership.UserID,
		&membership.Role,
		&membership.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("membership (%s, %s): %w", tenantID, userID, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return membership, nil
}

// GetByUserID retrieves all memberships held by a user
func (r *MembershipRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.TenantMembership, error) {
	query := `
		SELECT tenant_id, user_id, role, created_at
		FROM tenant_memberships
		WHERE user_id = $1
		ORDER BY created_at
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	return scanMemberships(rows)
}

// GetByTenantID retrieves all memberships within a tenant
func (r *MembershipRepository) GetByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.TenantMembership, error) {
	query := `
		SELECT tenant_id, user_id, role, created_at
		FROM tenant_memberships
		WHERE tenant_id = $1
		ORDER BY created_at
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships: %w", err)
	}
	defer rows.Close()

	return scanMemberships(rows)
}

func scanMemberships(rows *sql.Rows) ([]*models.TenantMembership, error) {
	var memberships []*models.TenantMembership
	for rows.Next() {
		membership := &models.TenantMembership{}
		err := rows.Scan(
			&membership.TenantID,
			&membership.UserID,
			&membership.Role,
			&membership.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, membership)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}

	return memberships, nil
}
