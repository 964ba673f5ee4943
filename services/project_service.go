package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/models"
	"github.com/courierhq/courier-backend/repositories"
)

// Project is one tenant the caller can operate in, as seen from the
// cross-tenant project routes.
type Project struct {
	Slug        string                `json:"slug"`
	DisplayName string                `json:"display_name"`
	Role        models.MembershipRole `json:"role"`
	Current     bool                  `json:"current"`
}

// ProjectService serves the cross-tenant route class: enumerating the tenants
// a user belongs to and minting sessions scoped to another one of them.
type ProjectService struct {
	tenants     repositories.TenantRepository
	users       repositories.UserRepository
	memberships repositories.MembershipRepository
	sessions    repositories.SessionRepository
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(repos *repositories.Repositories, sessionTTL time.Duration, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		tenants:     repos.Tenants,
		users:       repos.Users,
		memberships: repos.Memberships,
		sessions:    repos.Sessions,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// ListProjects returns every tenant the bound user can switch into. A
// platform admin sees all tenants; everyone else sees their memberships.
func (s *ProjectService) ListProjects(ctx context.Context, access *AccessContext) ([]*Project, error) {
	if access.IsPlatformAdmin() {
		tenants, err := s.tenants.List(ctx)
		if err != nil {
			return nil, storeFailure(err)
		}
		projects := make([]*Project, 0, len(tenants))
		for _, t := range tenants {
			projects = append(projects, &Project{
				Slug:        t.Slug,
				DisplayName: t.DisplayName,
				Role:        models.RolePlatformAdmin,
				Current:     t.ID == access.TenantID,
			})
		}
		return projects, nil
	}

	memberships, err := s.memberships.GetByUserID(ctx, access.UserID)
	if err != nil {
		return nil, storeFailure(err)
	}

	projects := make([]*Project, 0, len(memberships))
	for _, m := range memberships {
		tenant, err := s.tenants.GetByID(ctx, m.TenantID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				// Membership row outlived its tenant; skip rather than fail
				// the whole listing.
				continue
			}
			return nil, storeFailure(err)
		}
		projects = append(projects, &Project{
			Slug:        tenant.Slug,
			DisplayName: tenant.DisplayName,
			Role:        m.Role,
			Current:     tenant.ID == access.TenantID,
		})
	}

	return projects, nil
}

// SwitchProject mints a brand-new session scoped to the target tenant. The
// membership lookup reruns against the target; the original session is left
// untouched and stays valid until it expires or is revoked on its own.
func (s *ProjectService) SwitchProject(ctx context.Context, access *AccessContext, targetSlug string) (*LoginResult, error) {
	tenant, err := s.tenants.GetBySlug(ctx, targetSlug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnknownTenant
		}
		return nil, storeFailure(err)
	}

	user, err := s.users.GetByID(ctx, access.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserInactive
		}
		return nil, storeFailure(err)
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

	s.logger.Info("project switched",
		zap.String("user_id", user.ID.String()),
		zap.String("from_tenant_id", access.TenantID.String()),
		zap.String("to_tenant_id", tenant.ID.String()))

	return &LoginResult{
		Token:   token,
		Session: session,
		User:    user,
		Tenant:  tenant,
		Role:    role,
	}, nil
}
