package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/scurve/internal/db"
)

// FaultyUoW fails the Nth write (1-based) issued inside a unit of work.
// Reads are not counted. Import rollback tests use it to break a
// multi-row write at a chosen statement.
type FaultyUoW struct {
	DB         *sql.DB
	FailExecOn int32
	Err        error

	execs atomic.Int32
}

// Execs reports how many writes were attempted across all units of work.
func (u *FaultyUoW) Execs() int { return int(u.execs.Load()) }

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	wrap := func(tx db.DBTX) db.DBTX { return &faultyExec{DBTX: tx, uow: u} }
	return db.WrapTx(ctx, u.DB, wrap, fn)
}

type faultyExec struct {
	db.DBTX
	uow *FaultyUoW
}

func (f *faultyExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if n := f.uow.execs.Add(1); n == f.uow.FailExecOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
