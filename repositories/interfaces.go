package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/courierhq/courier-backend/models"
)

// Repositories bundles every repository the application wires up
type Repositories struct {
	Tenants     TenantRepository
	Users       UserRepository
	Memberships MembershipRepository
	Sessions    SessionRepository
	Overrides   PermissionOverrideRepository
}

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Automatically commits if function succeeds, rolls back on error.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// TenantRepository handles tenant data operations
type TenantRepository interface {
	// Create creates a new tenant
	Create(ctx context.Context, tenant *models.Tenant) error

	// GetByID retrieves a tenant by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)

	// GetBySlug retrieves a tenant by its routing slug
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)

	// List retrieves every tenant ordered by slug (the public directory)
	List(ctx context.Context) ([]*models.Tenant, error)
}

// UserRepository handles user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update updates a user's mutable fields
	Update(ctx context.Context, user *models.User) error
}

// MembershipRepository handles tenant membership operations
type MembershipRepository interface {
	// Upsert inserts the membership, or leaves the existing row untouched when
	// the (tenant, user) pair already exists. Concurrent creates must not
	// produce duplicate rows.
	Upsert(ctx context.Context, membership *models.TenantMembership) error

	// Get retrieves the membership for a (tenant, user) pair
	Get(ctx context.Context, tenantID, userID uuid.UUID) (*models.TenantMembership, error)

	// GetByUserID retrieves all memberships held by a user
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.TenantMembership, error)

	// GetByTenantID retrieves all memberships within a tenant
	GetByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.TenantMembership, error)
}

// SessionRepository handles session data operations
type SessionRepository interface {
	// Create persists a newly minted session
	Create(ctx context.Context, session *models.Session) error

	// GetByTokenHash retrieves a session by the hash of its credential.
	// This is the only lookup the validator performs; raw credentials are
	// never stored or compared.
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)

	// Revoke stamps revoked_at on the session. Revocation is one-way; a
	// second revoke is a no-op rather than an error.
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) error
}

// PermissionOverrideRepository handles per-user permission exceptions
type PermissionOverrideRepository interface {
	// Upsert inserts the override or replaces the is_allowed value of the
	// existing (tenant, user, permission) row. Uniqueness is enforced here,
	// at write time, not by the reader.
	Upsert(ctx context.Context, override *models.PermissionOverride) error

	// GetForUser retrieves all overrides for a (tenant, user) pair
	GetForUser(ctx context.Context, tenantID, userID uuid.UUID) ([]*models.PermissionOverride, error)

	// Delete removes one override row
	Delete(ctx context.Context, tenantID, userID uuid.UUID, permission string) error
}
