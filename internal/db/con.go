package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	// SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/fr0stylo/msgsink/internal/db/queries"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var driver = "sqlite"

// Database wraps sqlc queries with the shared connection.
type Database struct {
	*queries.Queries
	db      *sql.DB
	tracker *queryLatencyTracker
}

// New opens the SQLite database file at path and applies pending migrations.
func New(path string, openParams ...string) (*Database, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "data/app.db"
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driver, sqliteDSN(path, openParams...))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	tracker := newQueryLatencyTracker()
	wrapped := newInstrumentedDBTX(db, tracker)

	return &Database{db: db, Queries: queries.New(wrapped), tracker: tracker}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func sqliteDSN(path string, openParams ...string) string {
	values := url.Values{}

	values.Add("_pragma", "journal_mode(WAL)")
	values.Add("_pragma", "synchronous(NORMAL)")
	values.Add("_pragma", "busy_timeout(5000)")
	values.Add("_pragma", "temp_store(MEMORY)")
	values.Add("_pragma", "wal_autocheckpoint(1000)")

	for _, param := range openParams {
		part := strings.TrimSpace(strings.TrimPrefix(param, "&"))
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		values.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	return fmt.Sprintf("file:%s?%s", path, values.Encode())
}

// Ping verifies the connection is alive.
func (c *Database) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (c *Database) Close() error {
	return c.db.Close()
}
