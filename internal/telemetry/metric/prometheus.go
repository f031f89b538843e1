package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "microspring"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Static file cache metrics
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	CacheEntries prometheus.Gauge
	CacheBytes   prometheus.Gauge
}

// NewRegistry creates a registry with its own prometheus.Registry, including
// the Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Requests answered, by kind (route, static, invalid) and status code.",
		}, []string{"kind", "status"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Time from reading the request line to flushing the response.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"kind"}),

		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "static_cache",
			Name:      "hits_total",
			Help:      "Static file reads served from the cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "static_cache",
			Name:      "misses_total",
			Help:      "Static file reads that went to the file system.",
		}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "static_cache",
			Name:      "entries",
			Help:      "Files currently held in the cache.",
		}),
		CacheBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "static_cache",
			Name:      "bytes",
			Help:      "Bytes currently held in the cache.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.RequestsTotal,
		r.RequestDuration,
		r.CacheHits,
		r.CacheMisses,
		r.CacheEntries,
		r.CacheBytes,
	)
	return r
}

// MustRegister adds extra collectors to the registry.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one answered request.
func (r *Registry) ObserveRequest(kind string, status int, elapsed time.Duration) {
	r.RequestsTotal.WithLabelValues(kind, strconv.Itoa(status)).Inc()
	r.RequestDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// CacheHit records a cache hit.
func (r *Registry) CacheHit() {
	r.CacheHits.Inc()
}

// CacheMiss records a cache miss.
func (r *Registry) CacheMiss() {
	r.CacheMisses.Inc()
}

// CacheStored records the cache totals after an insert.
func (r *Registry) CacheStored(entries int, bytes int64) {
	r.CacheEntries.Set(float64(entries))
	r.CacheBytes.Set(float64(bytes))
}
