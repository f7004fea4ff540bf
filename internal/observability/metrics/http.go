package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	triageRequestsTotal *prometheus.CounterVec
	triageTasks         *prometheus.HistogramVec
	triageDuration      *prometheus.HistogramVec
	triageFailuresTotal *prometheus.CounterVec
	llmCallsTotal       *prometheus.CounterVec
	llmCallDuration     *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()
	serviceLabel := prometheus.Labels{"service": service}

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests processed.",
			ConstLabels: serviceLabel,
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: serviceLabel,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: serviceLabel,
		},
	)
	triageRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem:   "triage",
			Name:        "requests_total",
			Help:        "Total successful triage requests by input source and category.",
			ConstLabels: serviceLabel,
		},
		[]string{"source", "category"},
	)
	triageTasks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem:   "triage",
			Name:        "tasks",
			Help:        "Distribution of extracted tasks per successful triage.",
			Buckets:     []float64{0, 1, 2, 3, 5, 8, 13},
			ConstLabels: serviceLabel,
		},
		[]string{"source"},
	)
	triageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem:   "triage",
			Name:        "duration_seconds",
			Help:        "End-to-end triage duration in seconds.",
			Buckets:     []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			ConstLabels: serviceLabel,
		},
		[]string{"source"},
	)
	triageFailuresTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem:   "triage",
			Name:        "failures_total",
			Help:        "Total failed triage requests by failing stage and error kind.",
			ConstLabels: serviceLabel,
		},
		[]string{"stage", "kind"},
	)
	llmCallsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem:   "llm",
			Name:        "calls_total",
			Help:        "Total model calls by stage and outcome.",
			ConstLabels: serviceLabel,
		},
		[]string{"stage", "status"},
	)
	llmCallDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem:   "llm",
			Name:        "call_duration_seconds",
			Help:        "Model call duration in seconds.",
			Buckets:     []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
			ConstLabels: serviceLabel,
		},
		[]string{"stage"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		triageRequestsTotal,
		triageTasks,
		triageDuration,
		triageFailuresTotal,
		llmCallsTotal,
		llmCallDuration,
	)

	return &HTTPServerMetrics{
		registry:            registry,
		requestTotal:        requestTotal,
		requestDuration:     requestDuration,
		requestInFlight:     requestInFlight,
		triageRequestsTotal: triageRequestsTotal,
		triageTasks:         triageTasks,
		triageDuration:      triageDuration,
		triageFailuresTotal: triageFailuresTotal,
		llmCallsTotal:       llmCallsTotal,
		llmCallDuration:     llmCallDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(r.Method, path, strconv.Itoa(recorder.statusCode)).Inc()
		m.requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath keeps label cardinality bounded when scanners probe random URLs.
func normalizePath(path string) string {
	switch path {
	case "/processing-text", "/processing-file", "/healthz", "/metrics", "/openapi.yaml":
		return path
	default:
		return "other"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
