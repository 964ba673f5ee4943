package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/middleware"
	"github.com/courierhq/courier-backend/utils"
)

// SwitchProjectRequest is the project-switch request body
type SwitchProjectRequest struct {
	Slug string `json:"slug" validate:"required,slug"`
}

// ListProjectsHandler handles GET /api/v1/projects
func ListProjectsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access := middleware.GetAccessFromContext(r.Context())
		if access == nil {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		projects, err := deps.Projects.ListProjects(r.Context(), access)
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		_ = utils.WriteOK(w, projects)
	}
}

// SwitchProjectHandler handles POST /api/v1/projects/switch. A new session
// scoped to the target tenant is minted; the presented session is unaffected.
func SwitchProjectHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		access := middleware.GetAccessFromContext(r.Context())
		if access == nil {
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		var req SwitchProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, "Invalid request body", nil)
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			HandleValidationError(w, err, deps.Logger)
			return
		}

		result, err := deps.Projects.SwitchProject(r.Context(), access, req.Slug)
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
