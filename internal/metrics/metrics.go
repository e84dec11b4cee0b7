// Package metrics collects and exposes Prometheus metrics for the HTTP
// surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records per-request metrics.
type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	logins          prometheus.Counter
	loginFailures   prometheus.Counter
	usersCreated    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "userdir_http_requests_total",
			Help: "HTTP requests served, by route, method and status code.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "userdir_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "userdir_logins_total",
			Help: "Completed identity-provider logins.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "userdir_login_failures_total",
			Help: "Identity-provider logins that did not complete.",
		}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "userdir_users_created_total",
			Help: "User rows created on first profile visit.",
		}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.logins,
		c.loginFailures,
		c.usersCreated,
	)

	return c
}

// RecordRequest records a completed HTTP request.
func (c *Collector) RecordRequest(path, method string, statusCode int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(path, method, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordLogin records a completed provider login.
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// RecordLoginFailure records a login that was denied or failed to exchange.
func (c *Collector) RecordLoginFailure() {
	c.loginFailures.Inc()
}

// RecordUserCreated records a first-visit user row insert.
func (c *Collector) RecordUserCreated() {
	c.usersCreated.Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
