package models

import (
	"time"

	"github.com/google/uuid"
)

// MembershipRole represents the role a user holds within one tenant
type MembershipRole string

const (
	RoleOwner   MembershipRole = "owner"
	RoleAdmin   MembershipRole = "admin"
	RoleManager MembershipRole = "manager"
	RoleAgent   MembershipRole = "agent"

	// RoleCustom is the extensibility escape hatch for deployments that
	// configure their own catalog entry. Its default permission set is empty.
	RoleCustom MembershipRole = "custom"

	// RolePlatformAdmin is the canonical internal representation of platform
	// authority. It is never stored on a membership row and never appears in
	// the permission catalog; the resolver short-circuits it to a wildcard.
	RolePlatformAdmin MembershipRole = "platform-admin"
)

// Valid reports whether the role is one of the storable membership roles.
func (r MembershipRole) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager, RoleAgent, RoleCustom:
		return true
	}
	return false
}

// TenantMembership is the join record granting a user a role within a tenant.
// Unique on (tenant_id, user_id).
type TenantMembership struct {
	TenantID  uuid.UUID      `json:"tenant_id" db:"tenant_id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	Role      MembershipRole `json:"role" db:"role"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the TenantMembership model
func (TenantMembership) TableName() string {
	return "tenant_memberships"
}

// NewTenantMembership creates a new TenantMembership instance
func NewTenantMembership(tenantID, userID uuid.UUID, role MembershipRole) *TenantMembership {
	return &TenantMembership{
		TenantID:  tenantID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
}
