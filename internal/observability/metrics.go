package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts auth pipeline outcomes.
type Metrics struct {
	registry        *prometheus.Registry
	bindsTotal      *prometheus.CounterVec
	rejectionsTotal *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		bindsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_binds_total",
			Help: "Requests successfully bound to a tenant and user, by route class.",
		}, []string{"class"}),
		rejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_rejections_total",
			Help: "Pipeline rejections by route class and rejection category.",
		}, []string{"class", "reason"}),
	}
}

// RecordBind counts a successful pipeline bind.
func (m *Metrics) RecordBind(class string) {
	m.bindsTotal.WithLabelValues(class).Inc()
}

// RecordRejection counts a terminal pipeline rejection.
func (m *Metrics) RecordRejection(class, reason string) {
	m.rejectionsTotal.WithLabelValues(class, reason).Inc()
}

// Handler exposes the metrics registry over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
