package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/a3tai/mcp-exam-docs/internal/classifier"
)

const namespace = "examdocs"

// Label values for results without an exam and with an exam outside the
// catalog. Unknown exam ids from requests never become label values.
const (
	examNone  = "none"
	examOther = "other"
)

// Metrics holds the Prometheus collectors of the server. It implements
// analyzer.Recorder.
type Metrics struct {
	registry   *prometheus.Registry
	knownExams map[string]bool

	analysesTotal   *prometheus.CounterVec
	confidence      prometheus.Histogram
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge
}

// New creates the collectors on a private registry. knownExams are the exam
// ids kept as label values; any other exam is counted as "other".
func New(knownExams []string) *Metrics {
	known := make(map[string]bool, len(knownExams))
	for _, exam := range knownExams {
		known[exam] = true
	}

	registry := prometheus.NewRegistry()

	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "analyses_total",
			Help:      "Documents analyzed, by detected document type and education level.",
		},
		[]string{"document_type", "education_level", "exam_type"},
	)
	confidence := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "classifier",
			Name:      "confidence",
			Help:      "Overall confidence of analyzed documents.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		},
	)
	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
		},
	)

	registry.MustRegister(
		analysesTotal,
		confidence,
		requestTotal,
		requestDuration,
		requestInFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:        registry,
		knownExams:      known,
		analysesTotal:   analysesTotal,
		confidence:      confidence,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestInFlight: requestInFlight,
	}
}

// RecordAnalysis counts one classification result
func (m *Metrics) RecordAnalysis(result classifier.Result) {
	eduLevel := result.EducationLevel
	if eduLevel == "" {
		eduLevel = "none"
	}

	m.analysesTotal.WithLabelValues(result.DocumentType, eduLevel, m.examLabel(result.ExamType)).Inc()
	m.confidence.Observe(result.Confidence)
}

func (m *Metrics) examLabel(exam string) string {
	switch {
	case exam == "":
		return examNone
	case m.knownExams[exam]:
		return exam
	default:
		return examOther
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts, durations and in-flight requests
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(r.Method, strconv.Itoa(recorder.statusCode)).Inc()
		m.requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Flush keeps server-sent event streams working through the middleware
func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
