package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/utils"
)

// TenantDirectoryEntry is the public view of a tenant: slug and display name
// only. Data locators and IDs stay private.
type TenantDirectoryEntry struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"display_name"`
}

// ListTenantsHandler handles GET /tenants, the public tenant directory
func ListTenantsHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenants, err := deps.Repos.Tenants.List(r.Context())
		if err != nil {
			deps.Logger.Error("failed to list tenants", zap.Error(err))
			_ = utils.WriteServiceUnavailable(w, "")
			return
		}

		entries := make([]TenantDirectoryEntry, 0, len(tenants))
		for _, t := range tenants {
			entries = append(entries, TenantDirectoryEntry{
				Slug:        t.Slug,
				DisplayName: t.DisplayName,
			})
		}

		_ = utils.WriteOK(w, entries)
	}
}
