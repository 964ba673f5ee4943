package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/config"
	"github.com/courierhq/courier-backend/internal/observability"
	"github.com/courierhq/courier-backend/middleware"
	"github.com/courierhq/courier-backend/routes"
	"github.com/courierhq/courier-backend/services"
)

// rejectAllBinder rejects every bind attempt (unauthenticated requests get 401)
type rejectAllBinder struct{}

func (*rejectAllBinder) Bind(context.Context, services.BindRequest) (*services.AccessContext, error) {
	return nil, services.ErrMissingCredential
}

func TestMain(m *testing.M) {
	os.Setenv("ENVIRONMENT", "test")
	os.Setenv("LOG_LEVEL", "error")

	code := m.Run()

	os.Exit(code)
}

func TestInitLogger(t *testing.T) {
	t.Run("default json logger", func(t *testing.T) {
		logger, err := observability.NewLogger("info", "json")
		require.NoError(t, err)
		require.NotNil(t, logger)
		defer logger.Sync()
	})

	t.Run("development console logger", func(t *testing.T) {
		logger, err := observability.NewLogger("debug", "console")
		require.NoError(t, err)
		require.NotNil(t, logger)
		defer logger.Sync()
	})

	t.Run("invalid log level", func(t *testing.T) {
		logger, err := observability.NewLogger("invalid", "json")
		assert.Error(t, err)
		assert.Nil(t, logger)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestHealthEndpoints(t *testing.T) {
	deps := testDependencies(t)

	handler := routes.SetupRoutes(deps)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	t.Run("health check returns ok", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var body map[string]interface{}
		err = json.NewDecoder(resp.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("not ready without database", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/readyz")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body map[string]interface{}
		err = json.NewDecoder(resp.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "not_ready", body["status"])
	})

	t.Run("docs endpoint lists routes", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/docs")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRouteClasses(t *testing.T) {
	deps := testDependencies(t)

	handler := routes.SetupRoutes(deps)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"logout requires session", "POST", "/auth/logout", http.StatusUnauthorized},
		{"list projects requires session", "GET", "/api/v1/projects", http.StatusUnauthorized},
		{"switch project requires session", "POST", "/api/v1/projects/switch", http.StatusUnauthorized},
		{"me requires binding", "GET", "/api/v1/me", http.StatusUnauthorized},
		{"members requires binding", "GET", "/api/v1/members", http.StatusUnauthorized},
		{"not found", "GET", "/api/v1/nonexistent", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "endpoint: %s %s", tc.method, tc.path)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	deps := testDependencies(t)

	handler := routes.SetupRoutes(deps)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	t.Run("OPTIONS preflight request", func(t *testing.T) {
		req, err := http.NewRequest("OPTIONS", ts.URL+"/auth/login", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	})
}

func TestIntegrationWithRealDependencies(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	cfg := testConfig(t)
	logger := zaptest.NewLogger(t)

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
		return
	}
	defer deps.Close()

	handler := routes.SetupRoutes(deps)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	t.Run("readiness check with real infrastructure", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/readyz")
		require.NoError(t, err)
		defer resp.Body.Close()

		var body map[string]interface{}
		err = json.NewDecoder(resp.Body).Decode(&body)
		require.NoError(t, err)

		t.Logf("readiness response: %+v", body)

		assert.Equal(t, "ready", body["status"])
		checks := body["checks"].(map[string]interface{})
		assert.Equal(t, "healthy", checks["database"])
	})
}

// Test helpers

func testDependencies(t *testing.T) *app.Dependencies {
	cfg := testConfig(t)
	logger := zaptest.NewLogger(t)

	return &app.Dependencies{
		Config:         cfg,
		Logger:         logger,
		Metrics:        observability.NewMetrics(),
		AuthMiddleware: middleware.NewAuthMiddleware(&rejectAllBinder{}, cfg.Auth.TenantHeader, nil, logger),
	}
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{
			Host:            getEnvOrDefault("DB_HOST", "localhost"),
			Port:            5432,
			User:            getEnvOrDefault("DB_USER", "courier"),
			Password:        getEnvOrDefault("DB_PASSWORD", "courier"),
			Database:        getEnvOrDefault("DB_NAME", "courier_test"),
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Auth: config.AuthConfig{
			SessionTTL:   24 * time.Hour,
			TenantHeader: "X-Tenant-Slug",
			BcryptCost:   4,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:       "error",
			LogFormat:      "json",
			MetricsEnabled: false,
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
