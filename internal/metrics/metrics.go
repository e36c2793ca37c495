// Package metrics exposes Prometheus metrics for the dispatch servers.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the request metrics shared by every server.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	WorkloadSeconds *prometheus.HistogramVec
}

// New creates and registers the metrics on a dedicated registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_http_requests_total",
			Help: "Total number of HTTP requests by dispatch mode",
		},
		[]string{"mode", "method", "path", "status"},
	)

	m.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.ExponentialBuckets(50e-6, 2, 14), // 50µs .. ~400ms
		},
		[]string{"mode", "method", "path"},
	)

	m.WorkloadSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dispatch_workload_duration_seconds",
			Help:    "Duration of one workload invocation, excluding encoding",
			Buckets: prometheus.ExponentialBuckets(50e-6, 2, 14),
		},
		[]string{"mode"},
	)

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.WorkloadSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveWorkload records one workload invocation.
func (m *Metrics) ObserveWorkload(mode string, d time.Duration) {
	m.WorkloadSeconds.WithLabelValues(mode).Observe(d.Seconds())
}

// unmatchedPath labels requests that no route matched.
const unmatchedPath = "unmatched"

// Middleware records request count and duration for next, labelled with mode.
//
// next is expected to be a ServeMux: the path label is the matched route
// pattern, so unknown paths share one series.
func (m *Metrics) Middleware(mode string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := routeLabel(r.Pattern)
		m.RequestDuration.WithLabelValues(mode, r.Method, path).Observe(time.Since(start).Seconds())
		m.RequestsTotal.WithLabelValues(mode, r.Method, path, strconv.Itoa(rec.status)).Inc()
	})
}

// routeLabel strips the method from a ServeMux pattern such as "GET /stuff".
func routeLabel(pattern string) string {
	if pattern == "" {
		return unmatchedPath
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
