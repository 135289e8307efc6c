// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPRequestsTotal counts HTTP requests by route, method and response status
var HTTPRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "statuscodes_http_requests_total",
		Help: "Total number of HTTP requests served",
	},
	[]string{"path", "method", "status"},
)

// HTTPRequestDuration records latency distribution per route and method
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "statuscodes_http_request_duration_seconds",
		Help:    "Latency in seconds to serve HTTP requests",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"path", "method"},
)

// SimulatedFailuresTotal counts the deterministic failure simulations
// (429/502/503/504 and the panic-driven 500) triggered by request flags
var SimulatedFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "statuscodes_simulated_failures_total",
		Help: "Total number of failure responses triggered by simulation flags",
	},
	[]string{"status"},
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration)
	prometheus.MustRegister(SimulatedFailuresTotal)
}
