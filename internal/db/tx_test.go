package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/scurve/internal/db"
	"github.com/alexanderramin/scurve/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openProgressDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func insertPackage(ctx context.Context, tx db.DBTX, id, name string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO packages (id, name, created_at) VALUES (?, ?, '2024-01-01T00:00:00Z')`, id, name)
	return err
}

func countPackages(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM packages`).Scan(&n))
	return n
}

func TestWithinTx_CommitsAllWrites(t *testing.T) {
	database := openProgressDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertPackage(ctx, tx, "p1", "Shutdown 2024"); err != nil {
			return err
		}
		return insertPackage(ctx, tx, "p2", "Turnaround 2025")
	})
	require.NoError(t, err)
	assert.Equal(t, 2, countPackages(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database := openProgressDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertPackage(ctx, tx, "p1", "Shutdown 2024"); err != nil {
			return err
		}
		return errors.New("report rejected")
	})
	require.Error(t, err)
	assert.EqualError(t, err, "report rejected")
	assert.Zero(t, countPackages(t, database))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database := openProgressDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	assert.PanicsWithValue(t, "boom", func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertPackage(ctx, tx, "p1", "Shutdown 2024")
			panic("boom")
		})
	})
	assert.Zero(t, countPackages(t, database))
}

func TestWithinTx_CancelledBeforeStart(t *testing.T) {
	database := openProgressDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := db.NewSQLiteUnitOfWork(database).WithinTx(ctx, func(context.Context, db.DBTX) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, db.ErrTxCancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWithinTx_CancelledBeforeCommitRollsBack(t *testing.T) {
	database := openProgressDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := db.NewSQLiteUnitOfWork(database).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := insertPackage(ctx, tx, "p1", "Shutdown 2024"); err != nil {
			return err
		}
		cancel()
		return nil
	})
	require.ErrorIs(t, err, db.ErrTxCancelled)
	assert.Zero(t, countPackages(t, database))
}

type recordingTx struct {
	db.DBTX
	queries []string
}

func (r *recordingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	r.queries = append(r.queries, query)
	return r.DBTX.ExecContext(ctx, query, args...)
}

func TestWrapTx_RoutesStatementsThroughWrapper(t *testing.T) {
	database := openProgressDB(t)
	rec := &recordingTx{}

	err := db.WrapTx(context.Background(), database,
		func(tx db.DBTX) db.DBTX { rec.DBTX = tx; return rec },
		func(ctx context.Context, tx db.DBTX) error {
			return insertPackage(ctx, tx, "p1", "Shutdown 2024")
		})
	require.NoError(t, err)
	assert.Len(t, rec.queries, 1)
	assert.Equal(t, 1, countPackages(t, database))
}

func TestOpenDB_AppliesPragmas(t *testing.T) {
	database := openProgressDB(t)

	var fk int
	require.NoError(t, database.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	var timeout int
	require.NoError(t, database.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestOpenDB_FileStoreUsesWAL(t *testing.T) {
	database := testutil.NewTestFileDB(t)

	var mode string
	require.NoError(t, database.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)

	err := db.NewSQLiteUnitOfWork(database).WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertPackage(ctx, tx, "p1", "Shutdown 2024")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CountRows(t, database, "packages"))
}
