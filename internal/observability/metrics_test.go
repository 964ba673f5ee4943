package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordBind("tenant-scoped")
	m.RecordBind("tenant-scoped")
	m.RecordBind("cross-tenant")
	m.RecordRejection("tenant-scoped", "unauthorized")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.bindsTotal.WithLabelValues("tenant-scoped")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bindsTotal.WithLabelValues("cross-tenant")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rejectionsTotal.WithLabelValues("tenant-scoped", "unauthorized")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.RecordRejection("cross-tenant", "forbidden")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	m.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "auth_rejections_total")
	assert.Contains(t, rec.Body.String(), `class="cross-tenant"`)
}
