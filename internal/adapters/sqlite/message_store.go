package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fr0stylo/msgsink/internal/app/domain"
	"github.com/fr0stylo/msgsink/internal/app/ports"
	"github.com/fr0stylo/msgsink/internal/db"
	"github.com/fr0stylo/msgsink/internal/db/queries"
)

type messageDatabase interface {
	InsertMessage(ctx context.Context, arg queries.InsertMessageParams) error
	CountMessages(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	ReadTx(ctx context.Context, fn func(*queries.Queries) error) error
}

// MessageStore persists messages in SQLite.
type MessageStore struct {
	db messageDatabase
}

// NewMessageStore creates a store over an opened, migrated database.
func NewMessageStore(database *db.Database) *MessageStore {
	return &MessageStore{db: database}
}

// InsertMessage relies on the primary key for uniqueness so concurrent
// deliveries of one id yield a single InsertCreated.
func (s *MessageStore) InsertMessage(ctx context.Context, msg domain.Message) (ports.InsertOutcome, error) {
	text := sql.NullString{}
	if msg.Text != nil {
		text = sql.NullString{String: *msg.Text, Valid: true}
	}

	err := s.db.InsertMessage(ctx, queries.InsertMessageParams{
		MessageID:  msg.MessageID,
		FromMsisdn: msg.From,
		ToMsisdn:   msg.To,
		Ts:         msg.Timestamp,
		Text:       text,
	})
	switch {
	case err == nil:
		return ports.InsertCreated, nil
	case db.IsUniqueViolation(err):
		return ports.InsertDuplicate, nil
	default:
		return 0, fmt.Errorf("insert message %q: %w", msg.MessageID, err)
	}
}

// ListMessages counts and pages inside one read transaction so total and
// items agree.
func (s *MessageStore) ListMessages(ctx context.Context, filter ports.MessageFilter, limit, offset int64) ([]domain.Message, int64, error) {
	var (
		rows  []queries.Message
		total int64
	)
	err := s.db.ReadTx(ctx, func(q *queries.Queries) error {
		var err error
		total, err = q.CountMessagesFiltered(ctx, queries.CountMessagesFilteredParams{
			FromFilter:   filter.From,
			Since:        filter.Since,
			TextContains: filter.TextContains,
		})
		if err != nil {
			return fmt.Errorf("count messages: %w", err)
		}
		rows, err = q.ListMessagesFiltered(ctx, queries.ListMessagesFilteredParams{
			FromFilter:   filter.From,
			Since:        filter.Since,
			TextContains: filter.TextContains,
			PageLimit:    limit,
			PageOffset:   offset,
		})
		if err != nil {
			return fmt.Errorf("list messages: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	items := make([]domain.Message, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDomainMessage(row))
	}
	return items, total, nil
}

// Stats computes every aggregate from one snapshot.
func (s *MessageStore) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.ReadTx(ctx, func(q *queries.Queries) error {
		var err error
		if stats.TotalMessages, err = q.CountMessages(ctx); err != nil {
			return fmt.Errorf("count messages: %w", err)
		}
		if stats.SendersCount, err = q.CountDistinctSenders(ctx); err != nil {
			return fmt.Errorf("count senders: %w", err)
		}

		senders, err := q.ListTopSenders(ctx, ports.TopSendersLimit)
		if err != nil {
			return fmt.Errorf("list top senders: %w", err)
		}
		stats.MessagesPerSender = make([]domain.SenderCount, 0, len(senders))
		for _, row := range senders {
			stats.MessagesPerSender = append(stats.MessagesPerSender, domain.SenderCount{
				Sender: row.Sender,
				Count:  row.MessageCount,
			})
		}

		if stats.FirstMessageTS, err = optionalTimestamp(q.GetFirstMessageTimestamp(ctx)); err != nil {
			return fmt.Errorf("first message timestamp: %w", err)
		}
		if stats.LastMessageTS, err = optionalTimestamp(q.GetLastMessageTimestamp(ctx)); err != nil {
			return fmt.Errorf("last message timestamp: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}

// Ping checks the connection and that the messages table exists.
func (s *MessageStore) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return err
	}
	if _, err := s.db.CountMessages(ctx); err != nil {
		return fmt.Errorf("messages table: %w", err)
	}
	return nil
}

func optionalTimestamp(ts string, err error) (*string, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func toDomainMessage(row queries.Message) domain.Message {
	msg := domain.Message{
		MessageID: row.MessageID,
		From:      row.FromMsisdn,
		To:        row.ToMsisdn,
		Timestamp: row.Ts,
		CreatedAt: row.CreatedAt,
	}
	if row.Text.Valid {
		text := row.Text.String
		msg.Text = &text
	}
	return msg
}

var _ ports.MessageStore = (*MessageStore)(nil)
