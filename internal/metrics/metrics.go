// Package metrics holds the Prometheus instrumentation of the shop backend:
// HTTP request metrics recorded by the router middleware and the storage
// health gauge fed by the background probe.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "goshop"

// Metrics owns a private registry. Every server instance gets its own, so
// tests can build as many as they need without duplicate registration.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	inFlight        prometheus.Gauge
	storageUp       prometheus.Gauge
}

// New registers the runtime collectors and the application metrics on a
// fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),
		storageUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "up",
			Help:      "1 if the last storage ping succeeded, 0 otherwise.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration,
		m.requestTotal,
		m.inFlight,
		m.storageUp,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RequestStarted increments the in-flight gauge. The returned func records
// the finished request and must be called exactly once.
func (m *Metrics) RequestStarted() func(method, route string, status int) {
	start := time.Now()
	m.inFlight.Inc()

	return func(method, route string, status int) {
		m.inFlight.Dec()

		code := strconv.Itoa(status)
		m.requestTotal.WithLabelValues(method, route, code).Inc()
		m.requestDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
	}
}

// ReportStorageStatus sets the storage health gauge.
func (m *Metrics) ReportStorageStatus(up bool) {
	if up {
		m.storageUp.Set(1)
		return
	}
	m.storageUp.Set(0)
}
