package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	pageRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_page_requests_total",
			Help: "Total number of console page requests",
		},
		[]string{"method", "path", "status_code"},
	)

	pageRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_page_request_duration_seconds",
			Help:    "Duration of console page requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(pageRequestsTotal, pageRequestDuration)
}

func recordPageRequest(method, path string, statusCode int, duration time.Duration) {
	pageRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	pageRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
