package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fr0stylo/msgsink/internal/app/domain"
	"github.com/fr0stylo/msgsink/internal/app/ports"
)

const (
	// DefaultListLimit is applied when a listing omits limit.
	DefaultListLimit = 50
	// MaxListLimit is the largest accepted page size.
	MaxListLimit = 100
)

// ListQuery is one listing request. Empty filter fields are ignored.
type ListQuery struct {
	Limit  int64
	Offset int64
	From   string
	Since  string
	Q      string
}

// MessageReadService serves listing and aggregate reads.
type MessageReadService struct {
	store ports.MessageStore
	log   *slog.Logger
}

// NewMessageReadService constructs a read service.
func NewMessageReadService(store ports.MessageStore, log *slog.Logger) *MessageReadService {
	if log == nil {
		log = slog.Default()
	}
	return &MessageReadService{store: store, log: log}
}

// List returns one page of messages ordered by (ts, message_id) with the total
// number of matches ignoring paging.
func (s *MessageReadService) List(ctx context.Context, query ListQuery) (domain.MessagePage, error) {
	if query.Limit < 1 || query.Limit > MaxListLimit {
		return domain.MessagePage{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidQuery, MaxListLimit)
	}
	if query.Offset < 0 {
		return domain.MessagePage{}, fmt.Errorf("%w: offset must be >= 0", ErrInvalidQuery)
	}

	filter := ports.MessageFilter{
		From:         query.From,
		Since:        query.Since,
		TextContains: query.Q,
	}
	items, total, err := s.store.ListMessages(ctx, filter, query.Limit, query.Offset)
	if err != nil {
		return domain.MessagePage{}, fmt.Errorf("%w: list messages: %w", ErrStorageUnavailable, err)
	}
	if items == nil {
		items = []domain.Message{}
	}

	s.log.InfoContext(ctx, "messages_listed",
		"limit", query.Limit,
		"offset", query.Offset,
		"total", total,
		"from", query.From,
		"since", query.Since,
		"q", query.Q,
	)

	return domain.MessagePage{
		Items:  items,
		Total:  total,
		Limit:  query.Limit,
		Offset: query.Offset,
	}, nil
}

// Stats returns an aggregate snapshot of stored messages.
func (s *MessageReadService) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("%w: stats: %w", ErrStorageUnavailable, err)
	}
	if stats.MessagesPerSender == nil {
		stats.MessagesPerSender = []domain.SenderCount{}
	}

	s.log.InfoContext(ctx, "stats_retrieved", "total_messages", stats.TotalMessages)
	return stats, nil
}
