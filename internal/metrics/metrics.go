// Package metrics holds the Prometheus collectors for the login and
// dashboard flows, plus the echo request metrics middleware.
package metrics

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "envisionar"

// Login outcomes used as label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics owns a private registry so several servers (and tests) can coexist
// in one process.
type Metrics struct {
	registry *prometheus.Registry

	logins        *prometheus.CounterVec
	dashboards    *prometheus.CounterVec
	stepDurations *prometheus.HistogramVec
}

// New creates and registers every collector.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome and reason.",
		}, []string{"outcome", "reason"}),
		dashboards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_loads_total",
			Help:      "Dashboard loads by outcome and failing step.",
		}, []string{"outcome", "step"}),
		stepDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dashboard_step_duration_seconds",
			Help:      "Duration of each dashboard pipeline step.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"step"}),
	}
	reg.MustRegister(
		m.logins,
		m.dashboards,
		m.stepDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveLogin counts one login attempt. reason is empty on success.
func (m *Metrics) ObserveLogin(outcome, reason string) {
	m.logins.WithLabelValues(outcome, reason).Inc()
}

// ObserveDashboard counts one dashboard load. step names the failing step.
func (m *Metrics) ObserveDashboard(outcome, step string) {
	m.dashboards.WithLabelValues(outcome, step).Inc()
}

// ObserveStep records how long a pipeline step took.
func (m *Metrics) ObserveStep(step string, d time.Duration) {
	m.stepDurations.WithLabelValues(step).Observe(d.Seconds())
}

// Middleware records HTTP request metrics into the private registry.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  namespace,
		Registerer: m.registry,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || p == "/health" || p == "/static*"
		},
	})
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: m.registry})
}
