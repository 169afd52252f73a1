package restdb

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedContentType request body in a content type the row parser cannot handle
	ErrUnsupportedContentType = errors.New("unsupported content type")
	// ErrMissingID update or delete without a row locator
	ErrMissingID = errors.New("row id required")
	// ErrInvalidID row locator that does not decode to primary key values
	ErrInvalidID = errors.New("invalid row id")
	// ErrCursorConsumed a model set was written more than once
	ErrCursorConsumed = errors.New("row cursor already consumed")
)

// RowValidationError reports one constraint violation found while validating
// an incoming row.
type RowValidationError struct {
	Row    int
	Field  string
	Reason string
}

func (e *RowValidationError) Error() string {
	return fmt.Sprintf("row %d field %s: %s", e.Row, e.Field, e.Reason)
}
