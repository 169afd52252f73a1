package schema

import (
	"fmt"
	"strconv"
	"time"
)

// Cell is a single column value: string, int64, float64, bool, time.Time,
// []byte, nil for SQL NULL, or Undefined for a field that was not supplied.
type Cell = any

// Row is a positionally indexed sequence of cells; index i corresponds to
// field index i of the owning Model.
type Row []Cell

type undefinedCell struct{}

func (undefinedCell) String() string { return "undefined" }

// Undefined marks a field that was not provided at all. It is distinct from
// nil, which round-trips as an explicit SQL NULL.
var Undefined Cell = undefinedCell{}

// IsUndefined reports whether cell is the Undefined sentinel.
func IsUndefined(cell Cell) bool {
	_, ok := cell.(undefinedCell)
	return ok
}

// IsNull reports whether cell is an explicit SQL NULL.
func IsNull(cell Cell) bool {
	return cell == nil
}

// CellAsString renders a cell as its plain string form.
func CellAsString(cell Cell) string {
	switch val := cell.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// NewRow returns a row with every cell set to Undefined.
func NewRow(size int) Row {
	row := make(Row, size)
	for i := range row {
		row[i] = Undefined
	}
	return row
}

// IsAllUndefined reports whether no field of the row was supplied.
func (r Row) IsAllUndefined() bool {
	for _, cell := range r {
		if !IsUndefined(cell) {
			return false
		}
	}
	return true
}
