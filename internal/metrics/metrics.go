package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hubstat"

// Recorder owns the hubstat collectors on a private registry.
type Recorder struct {
	registry  *prometheus.Registry
	runs      *prometheus.CounterVec
	duration  prometheus.Histogram
	published prometheus.Gauge
	cache     *prometheus.CounterVec
}

// New creates a recorder and registers its collectors.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by outcome (success or failure kind).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Time spent fetching and classifying the feed.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		published: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "published_datasets",
			Help:      "Published datasets in the most recent successful run.",
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Feed cache hits, misses and invalidations.",
		}, []string{"event"}),
	}

	registry.MustRegister(r.runs, r.duration, r.published, r.cache)
	return r
}

// ObserveRun records one pipeline run.
func (r *Recorder) ObserveRun(outcome string, duration time.Duration, published int) {
	r.runs.WithLabelValues(outcome).Inc()
	r.duration.Observe(duration.Seconds())
	if outcome == "success" {
		r.published.Set(float64(published))
	}
}

// ObserveCacheEvent records a feed cache event.
func (r *Recorder) ObserveCacheEvent(event string) {
	r.cache.WithLabelValues(event).Inc()
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
