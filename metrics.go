package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vibe-insights/display"
)

var histogramBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// httpMetrics owns its registry so several apps can coexist in one process.
// A nil *httpMetrics records nothing.
type httpMetrics struct {
	registry       *prometheus.Registry
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	renders        *prometheus.CounterVec
}

func newHTTPMetrics() *httpMetrics {
	m := &httpMetrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vibe",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vibe",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vibe",
			Subsystem: "dashboard",
			Name:      "renders_total",
			Help:      "Dashboards built, by render shell and layout mode",
		}, []string{"shell", "layout"}),
	}
	m.registry.MustRegister(m.requestTotal, m.requestLatency, m.renders)
	return m
}

func (m *httpMetrics) observeRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	m.requestTotal.With(labels).Inc()
	m.requestLatency.With(labels).Observe(d.Seconds())
}

func (m *httpMetrics) observeRender(shell string, mode display.LayoutMode) {
	if m == nil {
		return
	}
	m.renders.With(prometheus.Labels{"shell": shell, "layout": mode.String()}).Inc()
}

func (m *httpMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
