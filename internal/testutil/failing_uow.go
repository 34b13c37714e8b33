package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/servio/internal/db"
)

// FailingExecUoW wraps a UnitOfWork and fails the first write inside the
// transaction whose SQL starts with Prefix, for example "UPDATE drafts".
// Reads are passed through untouched.
type FailingExecUoW struct {
	Inner  db.UnitOfWork
	Prefix string
	Err    error
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, prefix: u.Prefix, err: u.Err})
	})
}

type failingExec struct {
	db.DBTX
	prefix string
	err    error
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.HasPrefix(strings.TrimSpace(query), f.prefix) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
