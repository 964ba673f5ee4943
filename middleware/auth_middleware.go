package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/authz"
	"github.com/courierhq/courier-backend/services"
	"github.com/courierhq/courier-backend/utils"
)

// Binder runs the auth pipeline for one request's credential material.
type Binder interface {
	Bind(ctx context.Context, req services.BindRequest) (*services.AccessContext, error)
}

// PipelineMetrics counts bind outcomes.
type PipelineMetrics interface {
	RecordBind(class string)
	RecordRejection(class, reason string)
}

// AuthMiddleware attaches the auth pipeline to routes. The route class is
// chosen by which method is mounted at registration time; nothing is decided
// from the request path.
type AuthMiddleware struct {
	binder       Binder
	tenantHeader string
	metrics      PipelineMetrics
	logger       *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(binder Binder, tenantHeader string, metrics PipelineMetrics, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		binder:       binder,
		tenantHeader: tenantHeader,
		metrics:      metrics,
		logger:       logger,
	}
}

// TenantScoped requires the full pipeline: resolved tenant, live session
// bound to it, active member, resolved permission set.
func (m *AuthMiddleware) TenantScoped(next http.Handler) http.Handler {
	return m.bind(services.RouteTenantScoped, next)
}

// CrossTenant requires a live session and an active user; tenant identity
// comes from the session itself. Used by the project listing/switch routes.
func (m *AuthMiddleware) CrossTenant(next http.Handler) http.Handler {
	return m.bind(services.RouteCrossTenant, next)
}

func (m *AuthMiddleware) bind(class services.RouteClass, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		access, err := m.binder.Bind(ctx, services.BindRequest{
			Class:       class,
			TenantSlug:  r.Header.Get(m.tenantHeader),
			BearerToken: extractBearerToken(r),
		})
		if err != nil {
			if m.metrics != nil {
				m.metrics.RecordRejection(string(class), string(services.GetErrorType(err)))
			}
			m.logger.Warn("request rejected",
				zap.String("request_id", requestID),
				zap.String("class", string(class)),
				zap.Error(err))
			writeRejection(w, err, m.logger)
			return
		}

		if m.metrics != nil {
			m.metrics.RecordBind(string(class))
		}

		next.ServeHTTP(w, r.WithContext(WithAccess(ctx, access)))
	})
}

// RequirePermission guards an individual route on one permission from the
// bound set. Must be mounted after TenantScoped or CrossTenant.
func (m *AuthMiddleware) RequirePermission(permission authz.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			access := GetAccessFromContext(ctx)
			if access == nil {
				m.logger.Error("access context not found",
					zap.String("request_id", GetRequestIDFromContext(ctx)))
				_ = utils.WriteUnauthorized(w, "Authentication required")
				return
			}

			if !access.Permissions.Has(permission) {
				m.logger.Warn("permission denied",
					zap.String("request_id", GetRequestIDFromContext(ctx)),
					zap.String("permission", string(permission)),
					zap.String("user_id", access.UserID.String()))
				_ = utils.WriteForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeRejection maps a pipeline rejection to its contracted status code.
func writeRejection(w http.ResponseWriter, err error, logger *zap.Logger) {
	var writeErr error
	switch {
	case services.IsValidationError(err):
		writeErr = utils.WriteBadRequest(w, err.Error(), services.GetErrorDetails(err))
	case services.IsUnauthorizedError(err):
		writeErr = utils.WriteUnauthorized(w, err.Error())
	case services.IsForbiddenError(err):
		writeErr = utils.WriteForbidden(w, err.Error())
	case services.IsNotFoundError(err):
		writeErr = utils.WriteNotFound(w, err.Error())
	case services.IsUnavailableError(err):
		writeErr = utils.WriteServiceUnavailable(w, "Service temporarily unavailable")
	default:
		writeErr = utils.WriteInternalServerError(w, "An internal error occurred")
	}
	if writeErr != nil {
		logger.Error("failed to write rejection response", zap.Error(writeErr))
	}
}

// extractBearerToken extracts the opaque token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	// Check if it starts with "Bearer "
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
