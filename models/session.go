package models

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque bearer credential to exactly one (user, tenant)
// pair. Only the SHA-256 hash of the credential is persisted; validation is a
// lookup by hash, never a comparison against stored plaintext.
type Session struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TenantID  uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	TokenHash string     `json:"-" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty" db:"revoked_at"` // one-way flag, never cleared
}

// TableName returns the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}

// NewSession creates a new Session instance scoped to one (user, tenant) pair
func NewSession(userID, tenantID uuid.UUID, tokenHash string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		TenantID:  tenantID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// Revoked returns true if the session has been revoked
func (s *Session) Revoked() bool {
	return s.RevokedAt != nil
}

// ExpiredAt returns true if the session is expired at the given instant
func (s *Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
