package handlers

import (
	"net/http"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/middleware"
	"github.com/courierhq/courier-backend/utils"
)

// MeResponse mirrors the bound access context for the calling client
type MeResponse struct {
	UserID      string   `json:"user_id"`
	TenantID    string   `json:"tenant_id"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// GetCurrentUserHandler handles GET /api/v1/me
func GetCurrentUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access := middleware.GetAccessFromContext(r.Context())
		if access == nil {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		_ = utils.WriteOK(w, MeResponse{
			UserID:      access.UserID.String(),
			TenantID:    access.TenantID.String(),
			Email:       access.Email,
			Role:        string(access.Role),
			Permissions: access.Permissions.List(),
		})
	}
}
