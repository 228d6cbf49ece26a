// Package metrics exposes Prometheus collectors for the HTTP API and for
// document mutations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resume_builder"

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Distribution of HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	requestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of HTTP requests being served.",
		},
	)

	movesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "editor",
			Name:      "moves_total",
			Help:      "Item moves by target kind and outcome.",
		},
		[]string{"target", "outcome"},
	)

	documentsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "rejected_total",
			Help:      "Resume documents rejected at the parse or layout check.",
		},
		[]string{"reason"},
	)
)

// Rejection reasons.
const (
	ReasonSchema = "schema"
	ReasonLayout = "layout"
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records latency and counts of the requests served by next.
// Requests are labelled by their mux pattern to keep cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.Pattern
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(rec.status)
		requestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(r.Method, path, status).Inc()
	})
}

// ObserveMove counts one move command.
func ObserveMove(target string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	movesTotal.WithLabelValues(target, outcome).Inc()
}

// ObserveRejected counts a document that failed validation.
func ObserveRejected(reason string) {
	documentsRejected.WithLabelValues(reason).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
