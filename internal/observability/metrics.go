package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "suffixctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "suffixctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	attributionAttached = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "suffixctl",
			Subsystem: "attribution",
			Name:      "attached_total",
			Help:      "Payloads passed through the attributor, by outcome.",
		},
		[]string{"code", "outcome"},
	)
	indexerClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "suffixctl",
			Subsystem: "indexer",
			Name:      "classified_total",
			Help:      "Buffers classified by the indexer, by status.",
		},
		[]string{"status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, attributionAttached, indexerClassified)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordAttribution(code, outcome string) {
	RegisterMetrics()
	attributionAttached.WithLabelValues(code, outcome).Inc()
}

func RecordClassification(status string) {
	RegisterMetrics()
	indexerClassified.WithLabelValues(status).Inc()
}
