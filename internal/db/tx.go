package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is what repositories run their statements against. Both *sql.DB and
// *sql.Tx satisfy it, so a repository built inside WithinTx joins the
// surrounding transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// TxFunc is the body of a unit of work.
type TxFunc func(ctx context.Context, tx DBTX) error

// ErrTxCancelled is returned when the context ends before the writes commit.
var ErrTxCancelled = errors.New("transaction cancelled")

// UnitOfWork groups multi-row writes (an import, a manual entry plus its
// event) so they land together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLiteUnitOfWork runs each unit of work in one database/sql transaction.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

// WithinTx commits when fn returns nil and the context is still live.
// Any error, panic, or cancellation rolls everything back.
func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return runTx(ctx, u.db, func(tx *sql.Tx) DBTX { return tx }, fn)
}

// runTx is shared with test doubles that need to wrap the *sql.Tx.
func runTx(ctx context.Context, db *sql.DB, wrap func(*sql.Tx) DBTX, fn TxFunc) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ErrTxCancelled, ctxErr)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, wrap(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: %w", ErrTxCancelled, ctxErr)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// WrapTx runs fn inside a transaction whose handle is first passed through
// wrap. Tests use it to inject faults into individual statements.
func WrapTx(ctx context.Context, db *sql.DB, wrap func(DBTX) DBTX, fn TxFunc) error {
	return runTx(ctx, db, func(tx *sql.Tx) DBTX { return wrap(tx) }, fn)
}
