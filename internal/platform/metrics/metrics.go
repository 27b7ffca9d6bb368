// Package metrics exposes Prometheus collectors for the HTTP surface and
// the product cache.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/bilemo-api/internal/platform/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bilemo"

// Metrics owns a registry and the HTTP collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	inFlight prometheus.Gauge
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New creates a registry with HTTP, process and Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(
		m.inFlight,
		m.requests,
		m.duration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegisterCacheStats exposes product cache counters read from source at
// scrape time.
func (m *Metrics) RegisterCacheStats(source func() cache.Stats) {
	counter := func(name, help string, pick func(cache.Stats) uint64) prometheus.Collector {
		return prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "product_cache",
			Name:      name,
			Help:      help,
		}, func() float64 { return float64(pick(source())) })
	}
	m.registry.MustRegister(
		counter("hits_total", "Product cache hits.", func(s cache.Stats) uint64 { return s.Hits }),
		counter("misses_total", "Product cache misses.", func(s cache.Stats) uint64 { return s.Misses }),
		counter("sets_total", "Products written to the cache.", func(s cache.Stats) uint64 { return s.Sets }),
		counter("stale_fills_total", "Cache fills dropped after a concurrent invalidation.", func(s cache.Stats) uint64 { return s.Stale }),
		counter("errors_total", "Product cache backend errors.", func(s cache.Stats) uint64 { return s.Errors }),
	)
}

// InstrumentHandler records request count, latency and in-flight requests.
// Requests are labelled with the chi route pattern so path parameters do not
// explode label cardinality.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.inFlight.Inc()
		defer m.inFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		method := strings.ToUpper(r.Method)
		m.requests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}
