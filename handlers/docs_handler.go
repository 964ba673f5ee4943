package handlers

import (
	"net/http"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/utils"
)

// RouteDoc describes one route for API introspection
type RouteDoc struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Class  string `json:"class"`
	Doc    string `json:"doc"`
}

// APIDocsHandler handles GET /docs, a machine-readable route catalog
func APIDocsHandler(deps *app.Dependencies) http.HandlerFunc {
	routes := []RouteDoc{
		{Method: "POST", Path: "/auth/login", Class: "public", Doc: "Authenticate and mint a tenant-scoped session"},
		{Method: "GET", Path: "/tenants", Class: "public", Doc: "Public tenant directory"},
		{Method: "POST", Path: "/webhooks/{provider}", Class: "public", Doc: "Inbound provider webhook receiver"},
		{Method: "POST", Path: "/auth/logout", Class: "cross-tenant", Doc: "Revoke the presented session"},
		{Method: "GET", Path: "/api/v1/projects", Class: "cross-tenant", Doc: "List tenants the caller belongs to"},
		{Method: "POST", Path: "/api/v1/projects/switch", Class: "cross-tenant", Doc: "Mint a session scoped to another tenant"},
		{Method: "GET", Path: "/api/v1/me", Class: "tenant-scoped", Doc: "The bound identity and permission set"},
		{Method: "GET", Path: "/api/v1/members", Class: "tenant-scoped", Doc: "List tenant members (members.manage)"},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, routes)
	}
}
