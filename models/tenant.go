package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated customer account in the multi-tenant platform
type Tenant struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"` // URL-friendly identifier, immutable after creation
	DisplayName string    `json:"display_name" db:"display_name"`
	DataLocator string    `json:"-" db:"data_locator"` // Opaque reference to the tenant's data partition
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Tenant model
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new Tenant instance
func NewTenant(slug, displayName, dataLocator string) *Tenant {
	now := time.Now()
	return &Tenant{
		ID:          uuid.New(),
		Slug:        slug,
		DisplayName: displayName,
		DataLocator: dataLocator,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
