// Package metrics exposes Prometheus collectors for the calendar service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conversion directions.
const (
	ToPersian   = "to_persian"
	ToGregorian = "to_gregorian"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	Conversions   *prometheus.CounterVec
	ParseFailures *prometheus.CounterVec
	EventsCreated prometheus.Counter
}

// New creates the collectors and registers them on reg. A nil reg gets a
// fresh registry that also carries the Go runtime and process collectors.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parsical_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status code",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "parsical_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		Conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parsical_conversions_total",
			Help: "Calendar conversions performed, by direction",
		}, []string{"direction"}),
		ParseFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "parsical_parse_failures_total",
			Help: "Failed date parses, by failure kind",
		}, []string{"kind"}),
		EventsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "parsical_events_created_total",
			Help: "Total number of calendar events stored",
		}),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// IncrementConversions counts one conversion in the given direction.
func (m *Metrics) IncrementConversions(direction string) {
	m.Conversions.WithLabelValues(direction).Inc()
}

// IncrementParseFailures counts one failed parse of the given kind.
func (m *Metrics) IncrementParseFailures(kind string) {
	m.ParseFailures.WithLabelValues(kind).Inc()
}

// IncrementEventsCreated counts one stored event.
func (m *Metrics) IncrementEventsCreated() {
	m.EventsCreated.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
