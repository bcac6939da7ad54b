// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_requests_total",
			Help: "Total number of intent requests handled, by resolved kind and outcome",
		},
		[]string{"intent", "status"},
	)

	IntentResolutionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_resolution_failures_total",
			Help: "Total number of queries that failed resolution, by error code",
		},
		[]string{"error_code"},
	)

	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream eWeb calls, by operation and final status",
		},
		[]string{"operation", "status"},
	)

	UpstreamRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_retries_total",
			Help: "Total number of upstream retry attempts beyond the first try",
		},
		[]string{"operation"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "upstream_request_duration_seconds",
			Help: "Duration of upstream eWeb calls in seconds, including retries",
		},
		[]string{"operation"},
	)
)
