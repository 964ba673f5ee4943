package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/auth"
	"github.com/courierhq/courier-backend/authz"
	"github.com/courierhq/courier-backend/models"
	"github.com/courierhq/courier-backend/repositories"
)

// RouteClass declares which pipeline stages a route requires. It is fixed at
// route registration time; the pipeline never inspects the request path.
type RouteClass string

const (
	// RoutePublic bypasses the pipeline entirely (login, tenant directory,
	// inbound webhooks, API docs).
	RoutePublic RouteClass = "public"

	// RouteTenantScoped requires a resolved tenant, a live session bound to
	// that tenant, an active member, and a permission set.
	RouteTenantScoped RouteClass = "tenant-scoped"

	// RouteCrossTenant requires a live session and an active user, but defers
	// tenant identity to the session itself (project listing/switching).
	RouteCrossTenant RouteClass = "cross-tenant"
)

// BindRequest carries the raw credential material extracted from a request.
type BindRequest struct {
	Class       RouteClass
	TenantSlug  string // explicit selector header, empty when absent
	BearerToken string // raw opaque credential, empty when absent
}

// AccessContext is the immutable output of a successful bind: the validated
// tenant, user, effective role, and permission set a request carries for the
// rest of its life. A new value is constructed per request and never reused.
type AccessContext struct {
	UserID      uuid.UUID
	TenantID    uuid.UUID
	Email       string
	Role        models.MembershipRole
	Permissions authz.PermissionSet
	Session     *models.Session
}

// IsPlatformAdmin reports whether the bound identity carries platform-wide
// authority.
func (a *AccessContext) IsPlatformAdmin() bool {
	return a.Role == models.RolePlatformAdmin
}

// AccessService runs the request authentication pipeline:
// tenancy resolution, session validation, membership and activity guard, and
// permission resolution. Every stage is a point read against current store
// state; nothing is cached across requests and no stage writes.
type AccessService struct {
	tenants     repositories.TenantRepository
	users       repositories.UserRepository
	memberships repositories.MembershipRepository
	sessions    repositories.SessionRepository
	overrides   repositories.PermissionOverrideRepository
	catalog     *authz.Catalog
	logger      *zap.Logger
	now         func() time.Time
}

// NewAccessService creates a new AccessService
func NewAccessService(repos *repositories.Repositories, catalog *authz.Catalog, logger *zap.Logger) *AccessService {
	return &AccessService{
		tenants:     repos.Tenants,
		users:       repos.Users,
		memberships: repos.Memberships,
		sessions:    repos.Sessions,
		overrides:   repos.Overrides,
		catalog:     catalog,
		logger:      logger,
		now:         time.Now,
	}
}

// Bind converts raw credential material into a bound AccessContext, or the
// first terminal rejection from the taxonomy. Public routes never reach here.
func (s *AccessService) Bind(ctx context.Context, req BindRequest) (*AccessContext, error) {
	switch req.Class {
	case RouteTenantScoped:
		return s.bindTenantScoped(ctx, req)
	case RouteCrossTenant:
		return s.bindCrossTenant(ctx, req)
	default:
		return nil, NewDomainError(ErrorTypeInternal, "route class does not bind", nil).
			WithDetail("class", string(req.Class))
	}
}

func (s *AccessService) bindTenantScoped(ctx context.Context, req BindRequest) (*AccessContext, error) {
	// Stage 1: tenancy resolution. An anonymous request with no selector has
	// no way to name a tenant at all.
	if req.TenantSlug == "" && req.BearerToken == "" {
		return nil, ErrMissingTenantSelector
	}

	var selected *models.Tenant
	if req.TenantSlug != "" {
		tenant, err := s.tenants.GetBySlug(ctx, req.TenantSlug)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrUnknownTenant
			}
			return nil, storeFailure(err)
		}
		selected = tenant
	}

	// Stage 2: session validation.
	session, err := s.ValidateSession(ctx, req.BearerToken)
	if err != nil {
		return nil, err
	}

	// Stage 3: membership and activity guard.
	user, err := s.activeUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// Once a session exists, tenant identity travels with the session; an
	// explicit selector must agree with it.
	if selected != nil && selected.ID != session.TenantID {
		return nil, ErrTenantMismatch
	}
	tenantID := session.TenantID

	role := models.RolePlatformAdmin
	if !user.IsSuperAdmin {
		membership, err := s.memberships.Get(ctx, tenantID, user.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrNotTenantMember
			}
			return nil, storeFailure(err)
		}
		role = membership.Role
	}

	// Stage 4: permission resolution.
	perms, err := s.ResolvePermissions(ctx, tenantID, user.ID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("request bound",
		zap.String("tenant_id", tenantID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(role)))

	return &AccessContext{
		UserID:      user.ID,
		TenantID:    tenantID,
		Email:       user.Email,
		Role:        role,
		Permissions: perms,
		Session:     session,
	}, nil
}

func (s *AccessService) bindCrossTenant(ctx context.Context, req BindRequest) (*AccessContext, error) {
	// Cross-tenant routes exist to enumerate or change tenant context, so the
	// tenant-match check is skipped by construction. A live session and an
	// active user are still required.
	session, err := s.ValidateSession(ctx, req.BearerToken)
	if err != nil {
		return nil, err
	}

	user, err := s.activeUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	// The effective role here is the user's global capability, not a tenant
	// membership: switching is an owner-level act on one's own sessions.
	role := models.RoleOwner
	perms := s.catalog.Role(role)
	if user.IsSuperAdmin {
		role = models.RolePlatformAdmin
		perms = authz.Wildcard()
	}

	return &AccessContext{
		UserID:      user.ID,
		TenantID:    session.TenantID,
		Email:       user.Email,
		Role:        role,
		Permissions: perms,
		Session:     session,
	}, nil
}

// ValidateSession turns a presented bearer credential into a live session.
// The lookup key is the credential's hash; a revoked or expired session is
// permanently invalid no matter how recently it validated.
func (s *AccessService) ValidateSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrMissingCredential
	}

	session, err := s.sessions.GetByTokenHash(ctx, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, storeFailure(err)
	}

	if session.Revoked() {
		return nil, ErrRevokedCredential
	}
	if session.ExpiredAt(s.now()) {
		return nil, ErrExpiredCredential
	}

	return session, nil
}

// ResolvePermissions computes the effective permission set for a bound
// (tenant, user, role). Platform authority short-circuits to the wildcard;
// overrides are not consulted for it.
func (s *AccessService) ResolvePermissions(ctx context.Context, tenantID, userID uuid.UUID, role models.MembershipRole) (authz.PermissionSet, error) {
	if role == models.RolePlatformAdmin {
		return authz.Wildcard(), nil
	}

	set := s.catalog.Role(role)

	overrides, err := s.overrides.GetForUser(ctx, tenantID, userID)
	if err != nil {
		return authz.PermissionSet{}, storeFailure(err)
	}

	// Overrides always win over role defaults. The store holds at most one
	// row per permission, so application order is immaterial.
	for _, o := range overrides {
		if o.IsAllowed {
			set = set.Grant(authz.Permission(o.Permission))
		} else {
			set = set.Deny(authz.Permission(o.Permission))
		}
	}

	return set, nil
}

// activeUser fetches the session's user and enforces the activity guard.
func (s *AccessService) activeUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserInactive
		}
		return nil, storeFailure(err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// storeFailure wraps an unexpected repository error as the taxonomy's single
// infrastructure rejection.
func storeFailure(err error) error {
	return NewDomainError(ErrorTypeUnavailable, "store unavailable", err)
}
