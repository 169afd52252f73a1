// Package driver runs SQL text over a database/sql pool and exposes the
// result as a forward-only row cursor, converting raw driver values into
// cells through the backend dialect.
package driver

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/restdb/restdb"
	"github.com/restdb/restdb/dialect"
)

// DB wraps one database/sql pool together with its dialect. Pooling and
// transactions stay inside database/sql.
type DB struct {
	pool *sql.DB
	d    dialect.Dialect
}

// Open connects to a backend. The driver name selects both the registered
// database/sql driver and the SQL dialect.
func Open(driverName, dsn string) (*DB, error) {
	d, err := dialect.New(driverName)
	if err != nil {
		return nil, err
	}
	pool, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	return &DB{pool: pool, d: d}, nil
}

// Dialect returns the SQL dialect of the backend.
func (db *DB) Dialect() dialect.Dialect { return db.d }

// Ping verifies the connection.
func (db *DB) Ping(ctx context.Context) error { return db.pool.PingContext(ctx) }

// Close releases the pool.
func (db *DB) Close() error { return db.pool.Close() }

// Query runs a SELECT and returns a cursor over its rows.
func (db *DB) Query(ctx context.Context, sqlText string) (restdb.Cursor, error) {
	rs, err := db.pool.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	cursor, err := newCursor(rs, db.d)
	if err != nil {
		rs.Close()
		return nil, err
	}
	return cursor, nil
}

// Exec runs a statement and returns the number of affected rows.
func (db *DB) Exec(ctx context.Context, sqlText string) (int64, error) {
	result, err := db.pool.ExecContext(ctx, sqlText)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		// some drivers cannot report affected rows, that is not fatal
		return 0, nil
	}
	return affected, nil
}
