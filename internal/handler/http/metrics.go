package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP-level metrics exported at /metrics. Labels use the chi route pattern
// rather than the raw path so per-patient URLs collapse into one series.
var (
	httpInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// withMetrics records request rate, latency, and in-flight gauge per route.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpInFlight.Inc()
		start := time.Now()

		sw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = r.URL.Path
		}

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}

		duration := time.Since(start).Seconds()
		label := strconv.Itoa(status)

		httpRequestDuration.WithLabelValues(r.Method, path, label).Observe(duration)
		httpRequestsTotal.WithLabelValues(r.Method, path, label).Inc()
		httpInFlight.Dec()
	})
}

// metricsHandler serves the Prometheus exposition endpoint.
func metricsHandler() http.Handler {
	return promhttp.Handler()
}
