// Package metrics holds the Prometheus instruments for the fund feature.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics instruments aggregation requests and per-domain resolution.
type Metrics struct {
	AggregationsTotal *prometheus.CounterVec
	ResolveDuration   *prometheus.HistogramVec
	ResolveFailures   *prometheus.CounterVec
}

// New creates and registers all fund metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		AggregationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fundsight_aggregations_total",
			Help: "Aggregation requests by outcome (ok, invalid, failed).",
		}, []string{"outcome"}),
		ResolveDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fundsight_resolve_duration_seconds",
			Help:    "Point-in-time resolution latency per domain.",
			Buckets: prometheus.DefBuckets,
		}, []string{"domain"}),
		ResolveFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fundsight_resolve_failures_total",
			Help: "Failed domain resolutions per domain.",
		}, []string{"domain"}),
	}
}

// ObserveResolve records one domain resolution's latency.
func (m *Metrics) ObserveResolve(domain string, d time.Duration) {
	m.ResolveDuration.WithLabelValues(domain).Observe(d.Seconds())
}

// IncAggregation counts one finished aggregation by outcome.
func (m *Metrics) IncAggregation(outcome string) {
	m.AggregationsTotal.WithLabelValues(outcome).Inc()
}

// IncResolveFailure counts one failed domain resolution.
func (m *Metrics) IncResolveFailure(domain string) {
	m.ResolveFailures.WithLabelValues(domain).Inc()
}
