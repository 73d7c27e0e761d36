package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// RelayMetricsCollector handles chain relay request metrics
type RelayMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rateLimitWait   *prometheus.HistogramVec
}

// NewRelayMetricsCollector creates a new relay metrics collector
func NewRelayMetricsCollector() *RelayMetricsCollector {
	return &RelayMetricsCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "requests_total",
				Help:      "Total number of relay requests by method, endpoint, and status code",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "request_duration_seconds",
				Help:      "Relay request duration distribution",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"method", "endpoint"},
		),
		rateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "relay",
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting for the relay rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"method", "endpoint"},
		),
	}
}

// Register registers all relay metrics with the Prometheus registry
func (c *RelayMetricsCollector) Register() error {
	return register(c.requestsTotal, c.requestDuration, c.rateLimitWait)
}

// RecordRelayRequest records a completed relay request. statusCode is 0 for
// network failures.
func (c *RelayMetricsCollector) RecordRelayRequest(method, endpoint string, statusCode int, duration float64) {
	c.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordRateLimitWait records time spent waiting for the rate limiter
func (c *RelayMetricsCollector) RecordRateLimitWait(method, endpoint string, duration float64) {
	c.rateLimitWait.WithLabelValues(method, endpoint).Observe(duration)
}
