package ports

import (
	"context"

	"github.com/fr0stylo/msgsink/internal/app/domain"
)

// InsertOutcome reports whether an insert created a row or hit an existing id.
type InsertOutcome int

const (
	// InsertCreated means a new message row was written.
	InsertCreated InsertOutcome = iota + 1
	// InsertDuplicate means the id already existed and nothing changed.
	InsertDuplicate
)

func (o InsertOutcome) String() string {
	switch o {
	case InsertCreated:
		return "created"
	case InsertDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// MessageFilter narrows a listing. Empty fields do not filter.
type MessageFilter struct {
	From         string
	Since        string
	TextContains string
}

// TopSendersLimit caps messages_per_sender in stats snapshots.
const TopSendersLimit = 10

// MessageStore is the persistence contract for ingested messages.
type MessageStore interface {
	// InsertMessage writes msg unless its id exists. First write wins.
	InsertMessage(ctx context.Context, msg domain.Message) (InsertOutcome, error)
	// ListMessages returns one page ordered by (ts, message_id) and the unpaged total.
	ListMessages(ctx context.Context, filter MessageFilter, limit, offset int64) ([]domain.Message, int64, error)
	// Stats returns aggregates computed from a single snapshot.
	Stats(ctx context.Context) (domain.Stats, error)
	// Ping reports whether the store is reachable and migrated.
	Ping(ctx context.Context) error
}
