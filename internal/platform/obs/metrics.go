package obs

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gazetteer_queries_total",
		Help: "Gazetteer queries by operation and outcome",
	}, []string{"op", "outcome"})
	QueryDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gazetteer_query_duration_ms",
		Help:    "Gazetteer query duration in milliseconds",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
	}, []string{"op"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gazetteer_nearest_cache_hits_total",
		Help: "Nearest-neighbour cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gazetteer_nearest_cache_misses_total",
		Help: "Nearest-neighbour cache misses",
	})
	CacheErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gazetteer_nearest_cache_errors_total",
		Help: "Nearest-neighbour cache read or write failures",
	})
	SettlementsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gazetteer_settlements_loaded",
		Help: "Number of settlements in the serving gazetteer",
	})
)

// Registry holds the service collectors; kept separate from the global registry
// so tests can build several routers without duplicate registration panics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		QueriesTotal,
		QueryDurationMs,
		CacheHitsTotal,
		CacheMissesTotal,
		CacheErrorsTotal,
		SettlementsLoaded,
	)
}

// MetricsHandler exposes Registry in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Outcome labels for QueriesTotal.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeInvalid = "invalid"
)

// Observe records one gazetteer query: its outcome from err and result size n, and its latency.
func Observe(op string, start time.Time, n int, err error) {
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeInvalid
	case n == 0:
		outcome = OutcomeEmpty
	}
	QueriesTotal.WithLabelValues(op, outcome).Inc()
	QueryDurationMs.WithLabelValues(op).Observe(float64(time.Since(start).Microseconds()) / 1000)
}
