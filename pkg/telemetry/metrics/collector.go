// Package metrics exposes Prometheus metrics for the gateway.
//
// A Collector owns a private registry and the metric families for request
// handling, guest quota decisions, and the search cache. Mount
// Collector.Handler() at the configured metrics path to expose them.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"voidxp/gateway/pkg/config"
)

// Collector holds all gateway metrics behind a private registry.
type Collector struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	guestQuotaTotal     *prometheus.CounterVec
	guestQuotaRemaining prometheus.Gauge

	searchTotal *prometheus.CounterVec
}

// NewCollector creates and registers all gateway metrics.
func NewCollector(cfg config.MetricsConfig) *Collector {
	ns := cfg.Namespace
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "requests_total",
				Help:      "Total number of gateway requests by operation, provider, and status.",
			},
			[]string{"operation", "provider", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "request_duration_seconds",
				Help:      "Duration of gateway request handling in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		guestQuotaTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "guest_quota_decisions_total",
				Help:      "Guest quota admission decisions by reason code.",
			},
			[]string{"reason"},
		),

		guestQuotaRemaining: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "guest_tracked_keys",
				Help:      "Number of guest keys currently tracked by the quota limiter.",
			},
		),

		searchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "search_requests_total",
				Help:      "Web search lookups by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.requestsTotal,
		c.requestDuration,
		c.guestQuotaTotal,
		c.guestQuotaRemaining,
		c.searchTotal,
	)

	return c
}

// RecordRequest records one completed gateway request.
func (c *Collector) RecordRequest(operation, provider, status string, duration time.Duration) {
	c.requestsTotal.WithLabelValues(operation, provider, status).Inc()
	c.requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordGuestQuota records a guest admission decision by reason code.
func (c *Collector) RecordGuestQuota(reason string) {
	c.guestQuotaTotal.WithLabelValues(reason).Inc()
}

// SetGuestTrackedKeys updates the tracked-guest gauge, typically after a
// sweep.
func (c *Collector) SetGuestTrackedKeys(n int) {
	c.guestQuotaRemaining.Set(float64(n))
}

// RecordSearch records a search lookup outcome ("hit", "miss", "error",
// "cached").
func (c *Collector) RecordSearch(provider, outcome string) {
	c.searchTotal.WithLabelValues(provider, outcome).Inc()
}

// Registry exposes the underlying registry for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns the HTTP handler for the metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
