package handlers

import (
	"net/http"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/middleware"
	"github.com/courierhq/courier-backend/services"
	"github.com/courierhq/courier-backend/utils"
)

// MemberEntry is one row of the tenant member listing
type MemberEntry struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// ListMembersHandler handles GET /api/v1/members. Guarded by the
// members.manage permission at route registration.
func ListMembersHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access := middleware.GetAccessFromContext(r.Context())
		if access == nil {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		memberships, err := deps.Repos.Memberships.GetByTenantID(r.Context(), access.TenantID)
		if err != nil {
			HandleServiceError(w, services.WrapError(services.ErrorTypeUnavailable, "store unavailable", err), deps.Logger)
			return
		}

		entries := make([]MemberEntry, 0, len(memberships))
		for _, m := range memberships {
			user, err := deps.Repos.Users.GetByID(r.Context(), m.UserID)
			if err != nil {
				// Membership without a user row; skip rather than fail the
				// whole listing.
				continue
			}
			entries = append(entries, MemberEntry{
				UserID: user.ID.String(),
				Email:  user.Email,
				Role:   string(m.Role),
				Active: user.IsActive,
			})
		}

		_ = utils.WriteOK(w, entries)
	}
}
