package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/middleware"
	"github.com/courierhq/courier-backend/utils"
)

// LoginRequest is the login request body. The tenant is named by the tenant
// selector header, not the body; login is the one route class where the
// header is authoritative because no session exists yet.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse carries the raw credential. It is returned exactly once;
// the server keeps only the hash.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Tenant    string `json:"tenant"`
	Role      string `json:"role"`
}

// LoginHandler handles POST /auth/login
func LoginHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid request body", nil)
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		tenantSlug := r.Header.Get(deps.Config.Auth.TenantHeader)

		result, err := deps.Auth.Login(r.Context(), tenantSlug, req.Email, req.Password)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteOK(w, LoginResponse{
			Token:     result.Token,
			ExpiresAt: result.Session.ExpiresAt.UTC().Format(time.RFC3339),
			Tenant:    result.Tenant.Slug,
			Role:      string(result.Role),
		})
	}
}

// LogoutHandler handles POST /auth/logout. Mounted behind the cross-tenant
// pipeline class: a live session is required, a tenant selector is not.
func LogoutHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access := middleware.GetAccessFromContext(r.Context())
		if access == nil {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		if err := deps.Auth.Logout(r.Context(), access.Session); err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		utils.WriteNoContent(w)
	}
}
