package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	appservices "github.com/fr0stylo/msgsink/internal/app/services"
)

// ReadinessChecker reports whether the service can accept traffic.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// HealthRoutes registers liveness and readiness probes.
type HealthRoutes struct {
	health ReadinessChecker
}

// NewHealthRoutes constructs health routes.
func NewHealthRoutes(health ReadinessChecker) *HealthRoutes {
	return &HealthRoutes{health: health}
}

// RegisterRoutes registers probe endpoints.
func (h *HealthRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/health/live", handleLive)
	s.GET("/health/ready", h.handleReady)
}

func handleLive(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthRoutes) handleReady(c echo.Context) error {
	err := h.health.Ready(c.Request().Context())
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, appservices.ErrSecretNotConfigured):
		return c.JSON(http.StatusServiceUnavailable, detailJSON{Detail: "WEBHOOK_SECRET is not configured"})
	default:
		return c.JSON(http.StatusServiceUnavailable, detailJSON{Detail: "Database not ready"})
	}
}
