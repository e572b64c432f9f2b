package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/leapstack-labs/datasmell/pkg/detect"
)

type metrics struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	detections *prometheus.CounterVec
	duration   prometheus.Histogram
	failures   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datasmell",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "datasmell",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		detections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datasmell",
			Name:      "detections_total",
			Help:      "Detection runs by outcome (clean, smelly, error).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "datasmell",
			Name:      "detection_duration_seconds",
			Help:      "Time spent evaluating a dataset.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datasmell",
			Name:      "failed_checks_total",
			Help:      "Failed check results by smell type.",
		}, []string{"smell"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.latency, m.detections, m.duration, m.failures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// instrument records request counts and latency by route pattern.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(statusOf(ww))).Inc()
		m.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *metrics) observeReport(report *detect.Report) {
	m.duration.Observe(report.Duration.Seconds())
	if !report.HasFailures() {
		m.detections.WithLabelValues("clean").Inc()
		return
	}
	m.detections.WithLabelValues("smelly").Inc()
	for _, res := range report.Failures() {
		m.failures.WithLabelValues(string(res.SmellType)).Inc()
	}
}

func (m *metrics) observeError() {
	m.detections.WithLabelValues("error").Inc()
}

// statusOf returns the written status; handlers that write nothing answer 200.
func statusOf(ww middleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
