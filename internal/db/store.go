package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fr0stylo/msgsink/internal/db/queries"
)

// ReadTx runs fn against a single read transaction so multi-query reads
// observe one snapshot.
func (c *Database) ReadTx(ctx context.Context, fn func(*queries.Queries) error) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(queries.New(newInstrumentedDBTX(tx, c.tracker))); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			return rollbackErr
		}
		return err
	}
	return tx.Commit()
}
