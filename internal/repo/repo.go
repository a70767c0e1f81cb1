package repo

import (
	"context"
	"database/sql"
)

// Queryer is satisfied by *sql.DB and *sql.Tx so repo helpers can run either
// standalone or inside a lifecycle transaction.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}
