package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/utils"
)

// HealthCheck returns a simple health check handler
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// ReadinessCheck verifies that the store is reachable
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "healthy"}
		status := "ready"
		httpStatus := http.StatusOK

		if deps.DB == nil {
			checks["database"] = "not_initialized"
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else if err := deps.DB.PingContext(ctx); err != nil {
			deps.Logger.Error("database health check failed", zap.Error(err))
			checks["database"] = "unhealthy"
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		}

		_ = utils.WriteJSON(w, httpStatus, map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	}
}
