package routes

import (
	"github.com/labstack/echo/v4"

	messagewebhook "github.com/fr0stylo/msgsink/internal/webhooks/message"
)

// WebhookRoutes registers webhook endpoints.
type WebhookRoutes struct {
	message *messagewebhook.Handler
}

// NewWebhookRoutes constructs webhook routes.
func NewWebhookRoutes(ingest messagewebhook.Ingester) *WebhookRoutes {
	return &WebhookRoutes{
		message: messagewebhook.NewHandler(ingest),
	}
}

// RegisterRoutes registers webhook endpoints.
func (w *WebhookRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/webhook", w.handleMessageWebhook)
}

func (w *WebhookRoutes) handleMessageWebhook(c echo.Context) error {
	return w.message.Handle(c.Response(), c.Request())
}
