package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Generation metrics
	GenerationRequestsTotal *prometheus.CounterVec
	ProviderRequestDuration *prometheus.HistogramVec
	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderCircuitState    *prometheus.GaugeVec

	// Store metrics
	PersistenceFailuresTotal *prometheus.CounterVec
	LikesToggledTotal        *prometheus.CounterVec
	RateLimitedTotal         prometheus.Counter
}

// New creates a new Metrics instance registered with the default registry.
func New(namespace string) *Metrics {
	return NewWithRegistry(namespace, prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new Metrics instance registered with reg.
func NewWithRegistry(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "creatorkit"
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		GenerationRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "generation",
				Name:      "requests_total",
				Help:      "Total number of generation requests by outcome",
			},
			[]string{"kind", "outcome"}, // outcome: success, authentication, entitlement, validation, provider, persistence
		),
		ProviderRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "request_duration_seconds",
				Help:      "Upstream provider call duration in seconds",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"provider", "operation"},
		),
		ProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "requests_total",
				Help:      "Total number of upstream provider calls",
			},
			[]string{"provider", "operation", "status"}, // status: ok, error, open
		),
		ProviderCircuitState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "provider",
				Name:      "circuit_state",
				Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
			},
			[]string{"provider"},
		),

		PersistenceFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "persistence_failures_total",
				Help:      "Writes that failed after the provider had already succeeded",
			},
			[]string{"operation"},
		),
		LikesToggledTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "likes_toggled_total",
				Help:      "Total number of like toggles",
			},
			[]string{"action"}, // action: like, unlike
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
	}
}

// --- Convenience methods ---

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	statusStr := statusCodeToString(status)
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordGeneration records the outcome of one generation request.
func (m *Metrics) RecordGeneration(kind, outcome string) {
	m.GenerationRequestsTotal.WithLabelValues(kind, outcome).Inc()
	if outcome == "persistence" {
		m.PersistenceFailuresTotal.WithLabelValues("generation").Inc()
	}
}

// RecordProviderCall records one upstream call.
func (m *Metrics) RecordProviderCall(provider, operation, status string, duration time.Duration) {
	m.ProviderRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	m.ProviderRequestDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// SetCircuitState sets the breaker state gauge for provider.
func (m *Metrics) SetCircuitState(provider string, state int) {
	m.ProviderCircuitState.WithLabelValues(provider).Set(float64(state))
}

// RecordPersistenceFailure records a failed store write.
func (m *Metrics) RecordPersistenceFailure(operation string) {
	m.PersistenceFailuresTotal.WithLabelValues(operation).Inc()
}

// RecordLikeToggle records a like or unlike.
func (m *Metrics) RecordLikeToggle(liked bool) {
	action := "unlike"
	if liked {
		action = "like"
	}
	m.LikesToggledTotal.WithLabelValues(action).Inc()
}

// RecordRateLimited records a rejected request.
func (m *Metrics) RecordRateLimited() {
	m.RateLimitedTotal.Inc()
}

// statusCodeToString converts an HTTP status code to a string category.
func statusCodeToString(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
