package driver

import (
	"context"
	"database/sql"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/schema"
)

// cursor walks a sql.Rows result set. It keeps one row prefetched so
// IsEmpty and IsEOF can answer without advancing the caller's position.
type cursor struct {
	rs    *sql.Rows
	d     dialect.Dialect
	types []string

	current    schema.Row
	pending    schema.Row
	hasPending bool
	empty      bool
	done       bool
}

func newCursor(rs *sql.Rows, d dialect.Dialect) (*cursor, error) {
	columnTypes, err := rs.ColumnTypes()
	if err != nil {
		return nil, err
	}
	types := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		types[i] = ct.DatabaseTypeName()
	}
	c := &cursor{rs: rs, d: d, types: types}
	if err := c.prefetch(); err != nil {
		return nil, err
	}
	c.empty = !c.hasPending
	return c, nil
}

func (c *cursor) prefetch() error {
	c.hasPending = false
	if !c.rs.Next() {
		return c.rs.Err()
	}
	raw := make([]any, len(c.types))
	dest := make([]any, len(c.types))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := c.rs.Scan(dest...); err != nil {
		return err
	}
	row := make(schema.Row, len(raw))
	for i, value := range raw {
		cell, err := c.d.ParseSQLValueAsCell(value, c.types[i])
		if err != nil {
			return err
		}
		row[i] = cell
	}
	c.pending = row
	c.hasPending = true
	return nil
}

func (c *cursor) IsEmpty() bool { return c.empty }

func (c *cursor) IsEOF() bool { return c.done }

func (c *cursor) Next(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !c.hasPending {
		c.done = true
		c.current = nil
		return false, nil
	}
	c.current = c.pending
	if err := c.prefetch(); err != nil {
		return false, err
	}
	return true, nil
}

func (c *cursor) Row() schema.Row { return c.current }

func (c *cursor) Close() error { return c.rs.Close() }
