package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/auth"
	"github.com/courierhq/courier-backend/models"
	"github.com/courierhq/courier-backend/repositories"
)

// LoginResult is what a successful login or project switch hands back: the
// raw credential (returned exactly once) and the session it names.
type LoginResult struct {
	Token   string
	Session *models.Session
	User    *models.User
	Tenant  *models.Tenant
	Role    models.MembershipRole
}

// AuthService mints and revokes sessions. Provisioning of tenants and users
// is an external concern; this service only authenticates against what the
// store already holds.
type AuthService struct {
	tenants     repositories.TenantRepository
	users       repositories.UserRepository
	memberships repositories.MembershipRepository
	sessions    repositories.SessionRepository
	hasher      auth.PasswordHasher
	sessionTTL  time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(repos *repositories.Repositories, hasher auth.PasswordHasher, sessionTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		tenants:     repos.Tenants,
		users:       repos.Users,
		memberships: repos.Memberships,
		sessions:    repos.Sessions,
		hasher:      hasher,
		sessionTTL:  sessionTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// Login authenticates email+password against a tenant named by slug and mints
// a session scoped to that (user, tenant) pair. Non-members cannot log in to
// a tenant, super-admins can log in anywhere.
func (s *AuthService) Login(ctx context.Context, tenantSlug, email, password string) (*LoginResult, error) {
	if tenantSlug == "" {
		return nil, ErrMissingTenantSelector
	}

	tenant, err := s.tenants.GetBySlug(ctx, tenantSlug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownTenant
		}
		return nil, storeFailure(err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Same rejection as a bad password; login never reveals whether
			// an email exists.
			return nil, ErrInvalidLogin
		}
		return nil, storeFailure(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidLogin
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	role := models.RolePlatformAdmin
	if !user.IsSuperAdmin {
		membership, err := s.memberships.Get(ctx, tenant.ID, user.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrNotTenantMember
			}
			return nil, storeFailure(err)
		}
		role = membership.Role
	}

	token, session, err := mintSession(ctx, s.sessions, user.ID, tenant.ID, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)))

	return &LoginResult{
		Token:   token,
		Session: session,
		User:    user,
		Tenant:  tenant,
		Role:    role,
	}, nil
}

// Logout revokes the presented session. Revocation is one-way; the very next
// validation of the same credential must fail.
func (s *AuthService) Logout(ctx context.Context, session *models.Session) error {
	if err := s.sessions.Revoke(ctx, session.ID, s.now()); err != nil {
		return storeFailure(err)
	}

	s.logger.Info("session revoked",
		zap.String("session_id", session.ID.String()),
		zap.String("user_id", session.UserID.String()))
	return nil
}

// mintSession generates an opaque credential and persists its session row.
// Shared by login and project switch; both produce brand-new sessions.
func mintSession(ctx context.Context, sessions repositories.SessionRepository, userID, tenantID uuid.UUID, ttl time.Duration) (string, *models.Session, error) {
	token, hash, err := auth.NewToken()
	if err != nil {
		return "", nil, NewDomainError(ErrorTypeInternal, "failed to mint credential", err)
	}

	session := models.NewSession(userID, tenantID, hash, ttl)
	if err := sessions.Create(ctx, session); err != nil {
		return "", nil, storeFailure(err)
	}

	return token, session, nil
}
