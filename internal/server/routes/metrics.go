package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MetricsRoutes exposes Prometheus metrics when enabled.
type MetricsRoutes struct {
	enabled bool
	handler http.Handler
}

// NewMetricsRoutes constructs metrics routes. A disabled route answers 404.
func NewMetricsRoutes(enabled bool, handler http.Handler) *MetricsRoutes {
	return &MetricsRoutes{enabled: enabled && handler != nil, handler: handler}
}

// RegisterRoutes registers the metrics endpoint.
func (m *MetricsRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/metrics", m.handleMetrics)
}

func (m *MetricsRoutes) handleMetrics(c echo.Context) error {
	if !m.enabled {
		return c.NoContent(http.StatusNotFound)
	}
	m.handler.ServeHTTP(c.Response(), c.Request())
	return nil
}
