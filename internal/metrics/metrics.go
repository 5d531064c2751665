// Package metrics holds the Prometheus collectors shared across ipdash.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProbeDuration tracks DoH probe latencies per target.
	ProbeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ipdash_probe_duration_seconds",
		Help:    "DoH probe round-trip times in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"target"})

	// ProbeFailures counts failed probes per target.
	ProbeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipdash_probe_failures_total",
		Help: "Total number of failed DoH probes",
	}, []string{"target"})

	// IPLookups counts IP metadata lookups by provider and outcome.
	IPLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ipdash_ip_lookups_total",
		Help: "Total number of IP metadata lookups",
	}, []string{"source", "outcome"})

	// HTTPRequestDuration tracks API request latencies.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ipdash_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	// HTTPRequestsInFlight tracks requests currently being served.
	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ipdash_http_requests_in_flight",
		Help: "Current number of HTTP requests being served",
	})
)
