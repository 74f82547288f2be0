package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/msgsink/internal/app/domain"
	appservices "github.com/fr0stylo/msgsink/internal/app/services"
)

// MessageReader serves listing and stats reads.
type MessageReader interface {
	List(ctx context.Context, query appservices.ListQuery) (domain.MessagePage, error)
	Stats(ctx context.Context) (domain.Stats, error)
}

// MessageRoutes registers read endpoints over stored messages.
type MessageRoutes struct {
	read MessageReader
}

// NewMessageRoutes constructs message read routes.
func NewMessageRoutes(read MessageReader) *MessageRoutes {
	return &MessageRoutes{read: read}
}

// RegisterRoutes registers read endpoints.
func (m *MessageRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/messages", m.handleListMessages)
	s.GET("/stats", m.handleStats)
}

type messageJSON struct {
	MessageID string  `json:"message_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Ts        string  `json:"ts"`
	Text      *string `json:"text"`
}

type messagesPageJSON struct {
	Items  []messageJSON `json:"items"`
	Total  int64         `json:"total"`
	Limit  int64         `json:"limit"`
	Offset int64         `json:"offset"`
}

type senderStatsJSON struct {
	Sender string `json:"sender"`
	Count  int64  `json:"count"`
}

type statsJSON struct {
	TotalMessages     int64             `json:"total_messages"`
	SendersCount      int64             `json:"senders_count"`
	MessagesPerSender []senderStatsJSON `json:"messages_per_sender"`
	FirstMessageTS    *string           `json:"first_message_ts"`
	LastMessageTS     *string           `json:"last_message_ts"`
}

func (m *MessageRoutes) handleListMessages(c echo.Context) error {
	query := appservices.ListQuery{Limit: appservices.DefaultListLimit}
	err := echo.QueryParamsBinder(c).
		Int64("limit", &query.Limit).
		Int64("offset", &query.Offset).
		String("from", &query.From).
		String("since", &query.Since).
		String("q", &query.Q).
		BindError()
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detailJSON{Detail: "invalid query parameters"})
	}

	page, err := m.read.List(c.Request().Context(), query)
	if err != nil {
		return readError(c, err)
	}

	items := make([]messageJSON, 0, len(page.Items))
	for _, msg := range page.Items {
		items = append(items, messageJSON{
			MessageID: msg.MessageID,
			From:      msg.From,
			To:        msg.To,
			Ts:        msg.Timestamp,
			Text:      msg.Text,
		})
	}

	return c.JSON(http.StatusOK, messagesPageJSON{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
}

func (m *MessageRoutes) handleStats(c echo.Context) error {
	stats, err := m.read.Stats(c.Request().Context())
	if err != nil {
		return readError(c, err)
	}

	senders := make([]senderStatsJSON, 0, len(stats.MessagesPerSender))
	for _, sender := range stats.MessagesPerSender {
		senders = append(senders, senderStatsJSON{Sender: sender.Sender, Count: sender.Count})
	}

	return c.JSON(http.StatusOK, statsJSON{
		TotalMessages:     stats.TotalMessages,
		SendersCount:      stats.SendersCount,
		MessagesPerSender: senders,
		FirstMessageTS:    stats.FirstMessageTS,
		LastMessageTS:     stats.LastMessageTS,
	})
}

type detailJSON struct {
	Detail string `json:"detail"`
}

func readError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appservices.ErrInvalidQuery):
		return c.JSON(http.StatusUnprocessableEntity, detailJSON{Detail: err.Error()})
	case errors.Is(err, appservices.ErrStorageUnavailable):
		return c.JSON(http.StatusServiceUnavailable, detailJSON{Detail: "storage unavailable"})
	default:
		return err
	}
}
