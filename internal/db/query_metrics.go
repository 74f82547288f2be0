package db

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fr0stylo/msgsink/internal/db/queries"
	"github.com/fr0stylo/msgsink/internal/observability"
)

const maxSamplesPerQuery = 512

// QueryLatencyStats summarizes recent latency samples for one named query.
type QueryLatencyStats struct {
	Name   string
	Calls  int64
	Errors int64
	P50    time.Duration
	P95    time.Duration
	Max    time.Duration
}

type querySamples struct {
	window []time.Duration
	calls  int64
	errors int64
}

type queryLatencyTracker struct {
	mu      sync.Mutex
	samples map[string]*querySamples
}

func newQueryLatencyTracker() *queryLatencyTracker {
	return &queryLatencyTracker{samples: make(map[string]*querySamples)}
}

func (t *queryLatencyTracker) observe(name string, duration time.Duration, err error) {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.samples[name]
	if !ok {
		entry = &querySamples{}
		t.samples[name] = entry
	}
	entry.calls++
	// Unique violations are expected on duplicate deliveries.
	if err != nil && !errors.Is(err, sql.ErrNoRows) && !IsUniqueViolation(err) {
		entry.errors++
	}
	entry.window = append(entry.window, duration)
	if len(entry.window) > maxSamplesPerQuery {
		entry.window = entry.window[len(entry.window)-maxSamplesPerQuery:]
	}
}

func (t *queryLatencyTracker) snapshot() []QueryLatencyStats {
	if t == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stats := make([]QueryLatencyStats, 0, len(t.samples))
	for name, entry := range t.samples {
		if len(entry.window) == 0 {
			continue
		}
		sorted := slices.Clone(entry.window)
		slices.Sort(sorted)

		stats = append(stats, QueryLatencyStats{
			Name:   name,
			Calls:  entry.calls,
			Errors: entry.errors,
			P50:    sorted[(len(sorted)-1)/2],
			P95:    sorted[int(float64(len(sorted)-1)*0.95)],
			Max:    sorted[len(sorted)-1],
		})
	}

	slices.SortFunc(stats, func(a, b QueryLatencyStats) int {
		if a.P95 != b.P95 {
			if a.P95 > b.P95 {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})

	return stats
}

type instrumentedDBTX struct {
	inner   queries.DBTX
	tracker *queryLatencyTracker
}

func newInstrumentedDBTX(inner queries.DBTX, tracker *queryLatencyTracker) queries.DBTX {
	if tracker == nil {
		return inner
	}
	return &instrumentedDBTX{inner: inner, tracker: tracker}
}

func (d *instrumentedDBTX) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, name, "exec")
	defer span.End()

	start := time.Now()
	result, err := d.inner.ExecContext(ctx, query, args...)
	d.tracker.observe(name, time.Since(start), err)
	if !IsUniqueViolation(err) {
		span.RecordError(err)
	}
	return result, err
}

func (d *instrumentedDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, name, "prepare")
	defer span.End()

	start := time.Now()
	stmt, err := d.inner.PrepareContext(ctx, query)
	d.tracker.observe(name, time.Since(start), err)
	span.RecordError(err)
	return stmt, err
}

func (d *instrumentedDBTX) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, name, "query")
	defer span.End()

	start := time.Now()
	rows, err := d.inner.QueryContext(ctx, query, args...)
	d.tracker.observe(name, time.Since(start), err)
	span.RecordError(err)
	return rows, err
}

func (d *instrumentedDBTX) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	name := queryName(query)
	ctx, span := observability.StartDBSpan(ctx, name, "query_row")
	start := time.Now()
	row := d.inner.QueryRowContext(ctx, query, args...)
	d.tracker.observe(name, time.Since(start), row.Err())
	span.End()
	return row
}

// queryName extracts the sqlc query name from its "-- name: X :kind" header.
func queryName(query string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(query), "\n")
	first = strings.TrimSpace(first)
	if !strings.HasPrefix(first, "-- name:") {
		return "unknown"
	}
	parts := strings.Fields(first)
	if len(parts) < 3 {
		return "unknown"
	}
	return parts[2]
}
