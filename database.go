package restdb

import (
	"context"

	"github.com/restdb/restdb/schema"
)

// Cursor walks result rows forward only. It starts positioned before the
// first row; Next advances and reports whether Row is valid. A cursor is not
// safe for concurrent advancement.
type Cursor interface {
	// IsEmpty reports whether the result has no rows at all
	IsEmpty() bool
	// IsEOF reports whether the cursor has moved past the last row
	IsEOF() bool
	// Next advances to the next row
	Next(ctx context.Context) (bool, error)
	// Row returns the current row
	Row() schema.Row
	Close() error
}

// Database executes SQL text built by the API. Pooling and transactions are
// the implementation's concern.
type Database interface {
	Query(ctx context.Context, sql string) (Cursor, error)
	Exec(ctx context.Context, sql string) (int64, error)
}

// SliceCursor is an in-memory Cursor over pre-built rows, used for tests and
// for serializing parsed request bodies back out.
type SliceCursor struct {
	rows []schema.Row
	pos  int
}

// NewSliceCursor returns a cursor over the given rows.
func NewSliceCursor(rows ...schema.Row) *SliceCursor {
	return &SliceCursor{rows: rows, pos: -1}
}

func (c *SliceCursor) IsEmpty() bool {
	return len(c.rows) == 0
}

func (c *SliceCursor) IsEOF() bool {
	return c.pos >= len(c.rows)
}

func (c *SliceCursor) Next(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.pos++
	return c.pos < len(c.rows), nil
}

func (c *SliceCursor) Row() schema.Row {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil
	}
	return c.rows[c.pos]
}

func (c *SliceCursor) Close() error {
	c.pos = len(c.rows)
	return nil
}
