// Package postgres implements internal/store against PostgreSQL with sqlx,
// grounded on the teacher's internal/store/postgres: named-query inserts,
// a nil-exec-means-use-the-pool convention on every method, and sqlx.Connect
// registered under the lib/pq driver name (pgx/v5/stdlib is imported too,
// as the teacher does, so either driver name resolves).
package postgres

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/store"
)

// Connect opens and pings a PostgreSQL connection pool.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// execOrDB returns exec if non-nil, else falls back to db — the convention
// every store method below follows so callers can pass nil outside a
// transaction.
func execOrDB(exec store.Querier, db *sqlx.DB) store.Querier {
	if exec == nil {
		return db
	}
	return exec
}

func beginTxx(db *sqlx.DB, ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return db.BeginTxx(ctx, opts)
}
