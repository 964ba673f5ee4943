package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/courierhq/courier-backend/models"
	"github.com/courierhq/courier-backend/repositories"
)

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if tenant := args.Get(0); tenant != nil {
		return tenant.(*models.Tenant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTenantRepository) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	args := m.Called(ctx, slug)
	if tenant := args.Get(0); tenant != nil {
		return tenant.(*models.Tenant), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTenantRepository) List(ctx context.Context) ([]*models.Tenant, error) {
	args := m.Called(ctx)
	if tenants := args.Get(0); tenants != nil {
		return tenants.([]*models.Tenant), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Upsert(ctx context.Context, membership *models.TenantMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepository) Get(ctx context.Context, tenantID, userID uuid.UUID) (*models.TenantMembership, error) {
	args := m.Called(ctx, tenantID, userID)
	if membership := args.Get(0); membership != nil {
		return membership.(*models.TenantMembership), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMembershipRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.TenantMembership, error) {
	args := m.Called(ctx, userID)
	if memberships := args.Get(0); memberships != nil {
		return memberships.([]*models.TenantMembership), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMembershipRepository) GetByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.TenantMembership, error) {
	args := m.Called(ctx, tenantID)
	if memberships := args.Get(0); memberships != nil {
		return memberships.([]*models.TenantMembership), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error) {
	args := m.Called(ctx, tokenHash)
	if session := args.Get(0); session != nil {
		return session.(*models.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockPermissionOverrideRepository is a mock implementation of PermissionOverrideRepository
type MockPermissionOverrideRepository struct {
	mock.Mock
}

func (m *MockPermissionOverrideRepository) Upsert(ctx context.Context, override *models.PermissionOverride) error {
	args := m.Called(ctx, override)
	return args.Error(0)
}

func (m *MockPermissionOverrideRepository) GetForUser(ctx context.Context, tenantID, userID uuid.UUID) ([]*models.PermissionOverride, error) {
	args := m.Called(ctx, tenantID, userID)
	if overrides := args.Get(0); overrides != nil {
		return overrides.([]*models.PermissionOverride), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPermissionOverrideRepository) Delete(ctx context.Context, tenantID, userID uuid.UUID, permission string) error {
	args := m.Called(ctx, tenantID, userID, permission)
	return args.Error(0)
}

// testRepos bundles fresh mocks into the Repositories wiring struct
func testRepos() (*repositories.Repositories, *MockTenantRepository, *MockUserRepository, *MockMembershipRepository, *MockSessionRepository, *MockPermissionOverrideRepository) {
	tenants := new(MockTenantRepository)
	users := new(MockUserRepository)
	memberships := new(MockMembershipRepository)
	sessions := new(MockSessionRepository)
	overrides := new(MockPermissionOverrideRepository)

	repos := &repositories.Repositories{
		Tenants:     tenants,
		Users:       users,
		Memberships: memberships,
		Sessions:    sessions,
		Overrides:   overrides,
	}
	return repos, tenants, users, memberships, sessions, overrides
}
