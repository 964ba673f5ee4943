package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/authz"
	"github.com/courierhq/courier-backend/handlers"
)

// SetupRoutes configures all application routes and middleware.
// Route classes are fixed here at registration time: public routes carry no
// auth middleware at all, cross-tenant routes validate the session without a
// tenant selector, and tenant-scoped routes run the full binding pipeline.
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", deps.Config.Auth.TenantHeader},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes: health, docs, login, tenant directory, inbound webhooks
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))
	r.Get("/docs", handlers.APIDocsHandler(deps))
	r.Get("/tenants", handlers.ListTenantsHandler(deps))
	r.Post("/auth/login", handlers.LoginHandler(deps))
	r.Post("/webhooks/{provider}", handlers.InboundWebhookHandler(deps))

	if deps.Config.Observability.MetricsEnabled {
		r.Get("/metrics", deps.Metrics.Handler().ServeHTTP)
	}

	// Cross-tenant routes: a valid session is required but no tenant selector
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.CrossTenant)
		r.Post("/auth/logout", handlers.LogoutHandler(deps))
		r.Get("/api/v1/projects", handlers.ListProjectsHandler(deps))
		r.Post("/api/v1/projects/switch", handlers.SwitchProjectHandler(deps))
	})

	// Tenant-scoped routes: full pipeline, tenant resolved before credentials
	r.Group(func(r chi.Router) {
		r.Use(deps.AuthMiddleware.TenantScoped)
		r.Get("/api/v1/me", handlers.GetCurrentUserHandler(deps))

		r.Route("/api/v1/members", func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequirePermission(authz.PermMembersManage))
			r.Get("/", handlers.ListMembersHandler(deps))
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
