package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	EndpointLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "techanalyst",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of analysis endpoints",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"endpoint"},
	)

	EndpointErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "techanalyst",
			Subsystem: "api",
			Name:      "errors_total",
			Help:      "Failed analysis endpoint calls by status class",
		},
		[]string{"endpoint", "class"},
	)
)

// Register adds the endpoint collectors to the default registry once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(EndpointLatency, EndpointErrors)
	})
}

// ObserveEndpoint records the latency of one call and, when status is an
// error status, counts it.
func ObserveEndpoint(endpoint string, start time.Time, status int) {
	EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	switch {
	case status >= 500:
		EndpointErrors.WithLabelValues(endpoint, "5xx").Inc()
	case status >= 400:
		EndpointErrors.WithLabelValues(endpoint, "4xx").Inc()
	}
}
