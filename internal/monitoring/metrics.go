// Package monitoring exposes Prometheus metrics for the command
// surface and the portal session lifecycle.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors. Each Metrics value carries
// its own registry so tests can build servers independently.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	Logins           prometheus.Counter
	LoginFailures    prometheus.Counter
	SessionsRestored prometheus.Counter
}

// New creates a metrics collector with a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sisgate_http_requests_total",
				Help: "Total number of command requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sisgate_http_request_duration_seconds",
				Help:    "Command request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		Logins: factory.NewCounter(prometheus.CounterOpts{
			Name: "sisgate_logins_total",
			Help: "Successful CAS logins",
		}),
		LoginFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "sisgate_login_failures_total",
			Help: "Failed CAS logins",
		}),
		SessionsRestored: factory.NewCounter(prometheus.CounterOpts{
			Name: "sisgate_sessions_restored_total",
			Help: "Sessions restored from disk",
		}),
	}
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// Handler returns the scrape endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
