package metricsvc

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/classportal/backend/core"
)

const namespace = "classportal"

// PrometheusMetrics counts workflow events and HTTP requests.
type PrometheusMetrics struct {
	registry    *prometheus.Registry
	groups      *prometheus.CounterVec
	uploads     *prometheus.CounterVec
	submissions *prometheus.CounterVec
	grades      *prometheus.CounterVec
	requests    *prometheus.HistogramVec
}

var _ core.Metrics = (*PrometheusMetrics)(nil)

func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		groups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "groups_created_total",
			Help:      "Groups created, by subject.",
		}, []string{"subject"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_added_total",
			Help:      "Projects uploaded by teachers, by subject.",
		}, []string{"subject"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Submission attempts, by subject and outcome.",
		}, []string{"subject", "outcome"}),
		grades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grades_saved_total",
			Help:      "Grades saved, by subject.",
		}, []string{"subject"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies, by route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.groups, m.uploads, m.submissions, m.grades, m.requests,
	)
	return m
}

func (m *PrometheusMetrics) GroupCreated(subject string) {
	m.groups.WithLabelValues(subject).Inc()
}

func (m *PrometheusMetrics) UploadAdded(subject string) {
	m.uploads.WithLabelValues(subject).Inc()
}

func (m *PrometheusMetrics) SubmissionAccepted(subject string) {
	m.submissions.WithLabelValues(subject, "accepted").Inc()
}

func (m *PrometheusMetrics) SubmissionRejected(subject, reason string) {
	m.submissions.WithLabelValues(subject, reason).Inc()
}

func (m *PrometheusMetrics) GradeSaved(subject string) {
	m.grades.WithLabelValues(subject).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware observes the duration of every request but the metrics scrape itself.
func (m *PrometheusMetrics) Middleware(skipPaths ...string) echo.MiddlewareFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if skip[ctx.Request().URL.Path] {
				return next(ctx)
			}
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}
			m.requests.WithLabelValues(
				ctx.Request().Method,
				ctx.Path(),
				strconv.Itoa(ctx.Response().Status),
			).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
