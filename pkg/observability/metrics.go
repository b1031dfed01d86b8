package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Parse outcome labels.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// Parse metrics
	ParseRequests *prometheus.CounterVec
	ParseDuration prometheus.Histogram

	// Business metrics
	CyclesDetected prometheus.Counter

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// NewCollector creates a new metrics collector with the given namespace.
// Each collector owns its registry so tests never trip over duplicate
// registration in the default one.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	parseRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_requests_total",
			Help:      "Total number of pipeline parse requests",
		},
		[]string{"result"},
	)

	parseDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Pipeline parse duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	cyclesDetected := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_detected_total",
			Help:      "Total number of pipelines rejected as cyclic",
		},
	)

	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of parse-result cache hits",
		},
	)

	cacheMisses := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of parse-result cache misses",
		},
	)

	registry.MustRegister(parseRequests, parseDuration, cyclesDetected, cacheHits, cacheMisses)

	return &Collector{
		registry:       registry,
		ParseRequests:  parseRequests,
		ParseDuration:  parseDuration,
		CyclesDetected: cyclesDetected,
		CacheHits:      cacheHits,
		CacheMisses:    cacheMisses,
	}
}

// ObserveParse records a completed parse: its duration, its outcome, and
// whether a cycle was found.
func (c *Collector) ObserveParse(duration time.Duration, result string, isDAG bool) {
	c.ParseRequests.WithLabelValues(result).Inc()
	c.ParseDuration.Observe(duration.Seconds())
	if result == ResultOK && !isDAG {
		c.CyclesDetected.Inc()
	}
}

// Handler returns the HTTP handler exposing this collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
