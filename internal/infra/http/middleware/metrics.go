package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	syncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of reconciliation runs",
		},
		[]string{"origin", "status"},
	)

	clientsTagged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_clients_tagged_total",
			Help: "Contacts created or newly tagged inactive",
		},
	)

	clientsUntagged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_clients_untagged_total",
			Help: "Inactive tags removed after a client came back",
		},
	)

	clientsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_clients_skipped_total",
			Help: "Report rows excluded for being malformed",
		},
	)

	clientWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_client_failures_total",
			Help: "Per-client writes that exhausted their retries",
		},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordSyncRun(origin, status string) {
	syncRunsTotal.WithLabelValues(origin, status).Inc()
}

func RecordSyncCounts(tagged, untagged, skipped, failed int) {
	clientsTagged.Add(float64(tagged))
	clientsUntagged.Add(float64(untagged))
	clientsSkipped.Add(float64(skipped))
	clientWriteFailures.Add(float64(failed))
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
