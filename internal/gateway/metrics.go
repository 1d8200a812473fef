package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_client_requests_total",
			Help: "Total number of outbound API requests by classified outcome",
		},
		[]string{"method", "outcome"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_client_request_duration_seconds",
			Help:    "Duration of outbound API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(apiRequestsTotal, apiRequestDuration)
}

// recordRequest records metrics for one outbound request
func recordRequest(method, outcome string, duration time.Duration) {
	apiRequestsTotal.WithLabelValues(method, outcome).Inc()
	apiRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
