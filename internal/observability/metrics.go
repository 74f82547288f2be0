package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fr0stylo/msgsink/internal/app/ports"
)

// Metrics owns the Prometheus registry served on /metrics.
type Metrics struct {
	registry        *prometheus.Registry
	webhookRequests *prometheus.CounterVec
	messagesStored  prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the ingestion counters plus any extra collectors.
func NewMetrics(extra ...prometheus.Collector) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		webhookRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webhook_requests_total",
				Help: "Total number of webhook requests received",
			},
			[]string{"result"},
		),
		messagesStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "messages_stored_total",
			Help: "Total number of messages stored (new records only)",
		}),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	for _, result := range ports.IngestResults() {
		m.webhookRequests.WithLabelValues(string(result))
	}
	for _, collector := range extra {
		registry.MustRegister(collector)
	}

	return m
}

// RecordOutcome counts one terminal webhook outcome.
func (m *Metrics) RecordOutcome(_ context.Context, result ports.IngestResult) {
	if m == nil {
		return
	}
	m.webhookRequests.WithLabelValues(string(result)).Inc()
}

// RecordStored counts one newly created message.
func (m *Metrics) RecordStored(context.Context) {
	if m == nil {
		return
	}
	m.messagesStored.Inc()
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Gatherer exposes the registry for tests and push integrations.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// EchoMiddleware observes request latency per matched route.
func (m *Metrics) EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if httpErr, ok := err.(*echo.HTTPError); ok {
					status = httpErr.Code
				}
			}
			m.requestDuration.
				WithLabelValues(c.Request().Method, routeLabel(c), strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// routeLabel keeps label cardinality bounded for unmatched paths.
func routeLabel(c echo.Context) string {
	if route := c.Path(); route != "" {
		return route
	}
	return "unmatched"
}

var _ ports.IngestionMetrics = (*Metrics)(nil)
