package models

import (
	"time"

	"github.com/google/uuid"
)

// PermissionOverride is a per-user, per-tenant exception that adds or removes
// one permission relative to the role's catalog defaults. At most one row may
// exist per (tenant, user, permission); the store enforces this at write time.
type PermissionOverride struct {
	TenantID   uuid.UUID `json:"tenant_id" db:"tenant_id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Permission string    `json:"permission" db:"permission"`
	IsAllowed  bool      `json:"is_allowed" db:"is_allowed"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the PermissionOverride model
func (PermissionOverride) TableName() string {
	return "permission_overrides"
}

// NewPermissionOverride creates a new PermissionOverride instance
func NewPermissionOverride(tenantID, userID uuid.UUID, permission string, isAllowed bool) *PermissionOverride {
	now := time.Now()
	return &PermissionOverride{
		TenantID:   tenantID,
		UserID:     userID,
		Permission: permission,
		IsAllowed:  isAllowed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
