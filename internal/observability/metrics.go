package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	badgeChecksTotal     *prometheus.CounterVec
	badgesAwardedTotal   *prometheus.CounterVec
	badgeCheckLatencySec prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors for the API and
// the badge pipeline.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vocab_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vocab_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		badgeChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vocab_badge_checks_total",
			Help: "Total number of badge check invocations by outcome.",
		}, []string{"outcome"})

		badgesAwardedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vocab_badges_awarded_total",
			Help: "Total number of badges newly persisted, by badge.",
		}, []string{"badge_id"})

		badgeCheckLatencySec = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vocab_badge_check_duration_seconds",
			Help:    "Latency distribution of the full badge check pipeline.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, badgeChecksTotal, badgesAwardedTotal, badgeCheckLatencySec)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// BadgeChecks exposes the counter for badge check invocations.
func BadgeChecks() *prometheus.CounterVec {
	RegisterMetrics()
	return badgeChecksTotal
}

// BadgesAwarded exposes the counter for newly persisted badges.
func BadgesAwarded() *prometheus.CounterVec {
	RegisterMetrics()
	return badgesAwardedTotal
}

// BadgeCheckLatency exposes the badge pipeline latency histogram.
func BadgeCheckLatency() prometheus.Histogram {
	RegisterMetrics()
	return badgeCheckLatencySec
}
