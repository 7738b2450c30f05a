package internal

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes recorded by Metrics.
const (
	outcomeStatic     = "static"
	outcomeRendered   = "rendered"
	outcomeNotFound   = "not_found"
	outcomeRedirect   = "redirect"
	outcomeRaw        = "raw"
	outcomeError      = "error"
	metricsNamespace  = "dispatch"
	defaultMetricPath = "/metrics"
)

// Metrics holds the dispatcher's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	controllers  *prometheus.HistogramVec
	ctrlFailures *prometheus.CounterVec
	activeScopes prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry, so several Apps
// can coexist in one process.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "requests_total",
			Help:      "Dispatched requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "request_duration_seconds",
			Help:      "Time spent dispatching a request, by outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		controllers: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "controller_duration_seconds",
			Help:      "Controller invoke and process time.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"controller"}),
		ctrlFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "controller_failures_total",
			Help:      "Controllers that returned an error.",
		}, []string{"controller"}),
		activeScopes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_scopes",
			Help:      "Controller scopes currently open.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.controllers,
		m.ctrlFailures,
		m.activeScopes,
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the registry for custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeRequest(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeController(name string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.controllers.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		m.ctrlFailures.WithLabelValues(name).Inc()
	}
}

func (m *Metrics) scopeOpened() {
	if m == nil {
		return
	}
	m.activeScopes.Inc()
}

func (m *Metrics) scopeClosed() {
	if m == nil {
		return
	}
	m.activeScopes.Dec()
}
