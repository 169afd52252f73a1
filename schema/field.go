package schema

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/utils"
)

// FieldKind is the closed set of semantic column types. Every codec path
// switches exhaustively on it.
type FieldKind int

const (
	KindString FieldKind = iota
	KindBoolean
	KindNumber
	KindBlob
	KindDatetime
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindBlob:
		return "blob"
	case KindDatetime:
		return "datetime"
	}
	return "unknown"
}

// ParseFieldKind converts a kind name into a FieldKind.
func ParseFieldKind(name string) (FieldKind, error) {
	switch strings.ToLower(name) {
	case "string", "text":
		return KindString, nil
	case "boolean", "bool":
		return KindBoolean, nil
	case "number", "numeric", "integer", "float":
		return KindNumber, nil
	case "blob", "binary", "bytes":
		return KindBlob, nil
	case "datetime", "date", "timestamp":
		return KindDatetime, nil
	}
	return KindString, fmt.Errorf("unknown field kind %q", name)
}

// FieldParams carries the column constraints relevant to validation and
// id synthesis.
type FieldParams struct {
	PrimaryKey    bool
	ForeignKey    bool
	AutoIncrement bool
	NotNull       bool
}

// Field describes one table column. Fields are built once during model
// construction and never mutated.
type Field struct {
	Name      string
	Kind      FieldKind
	SQLType   string
	MaxLength int // 0 = unbounded
	Params    FieldParams
}

// SerializeCell converts a cell holding a SQL-side value into its wire
// representation: a string, nil, or Undefined. Datetime cells given as
// pre-SQL strings are first resolved through the dialect's native parser.
func (f Field) SerializeCell(d dialect.Dialect, cell Cell) (Cell, error) {
	if IsUndefined(cell) {
		if f.Kind == KindNumber {
			return nil, nil
		}
		return Undefined, nil
	}
	switch f.Kind {
	case KindString:
		if cell == nil {
			return nil, nil
		}
		return CellAsString(cell), nil
	case KindBoolean:
		if cell == nil {
			return nil, nil
		}
		if utils.CheckTruth(CellAsString(cell)) {
			return "true", nil
		}
		return "false", nil
	case KindNumber:
		if cell == nil || CellAsString(cell) == "" {
			return nil, nil
		}
		return CellAsString(cell), nil
	case KindBlob:
		switch val := cell.(type) {
		case nil:
			return nil, nil
		case []byte:
			return base64.StdEncoding.EncodeToString(val), nil
		default:
			return CellAsString(val), nil
		}
	case KindDatetime:
		if cell == nil {
			return nil, nil
		}
		t, err := f.resolveDatetime(d, cell)
		if err != nil {
			return nil, err
		}
		return t.Format(time.RFC3339), nil
	}
	return nil, fmt.Errorf("field %s: unsupported kind %v", f.Name, f.Kind)
}

// SerializeCellWithLocale is SerializeCell with locale-aware formatting of
// datetime and numeric cells.
func (f Field) SerializeCellWithLocale(d dialect.Dialect, tag language.Tag, cell Cell) (Cell, error) {
	if cell == nil || IsUndefined(cell) {
		return f.SerializeCell(d, cell)
	}
	switch f.Kind {
	case KindDatetime:
		t, err := f.resolveDatetime(d, cell)
		if err != nil {
			return nil, err
		}
		return t.Format(localeDatetimeLayout(tag)), nil
	case KindNumber:
		printer := message.NewPrinter(tag)
		switch val := cell.(type) {
		case int64:
			return printer.Sprint(number.Decimal(val)), nil
		case int:
			return printer.Sprint(number.Decimal(val)), nil
		case float64:
			return printer.Sprint(number.Decimal(val)), nil
		}
		return f.SerializeCell(d, cell)
	case KindString, KindBoolean, KindBlob:
		return f.SerializeCell(d, cell)
	}
	return nil, fmt.Errorf("field %s: unsupported kind %v", f.Name, f.Kind)
}

func (f Field) resolveDatetime(d dialect.Dialect, cell Cell) (time.Time, error) {
	switch val := cell.(type) {
	case time.Time:
		return val, nil
	default:
		parsed, err := d.ParseSQLValueAsCell(CellAsString(val), f.SQLType)
		if err != nil {
			return time.Time{}, fmt.Errorf("field %s: %w", f.Name, err)
		}
		t, ok := parsed.(time.Time)
		if !ok {
			return time.Time{}, fmt.Errorf("field %s: value %v is not a datetime", f.Name, val)
		}
		return t, nil
	}
}

// localeDatetimeLayout picks a date layout for the base language of tag.
func localeDatetimeLayout(tag language.Tag) string {
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return "1/2/2006, 3:04:05 PM"
	case "de":
		return "02.01.2006, 15:04:05"
	case "fi", "sv", "da", "no":
		return "2.1.2006 15.04.05"
	case "fr", "es", "it":
		return "02/01/2006 15:04:05"
	default:
		return time.RFC3339
	}
}

// DeserializeCell converts a wire value into the internal cell used to build
// SQL. Input is a string, nil, or Undefined.
func (f Field) DeserializeCell(cell Cell) (Cell, error) {
	if IsUndefined(cell) {
		return Undefined, nil
	}
	switch f.Kind {
	case KindString:
		if cell == nil {
			return nil, nil
		}
		return CellAsString(cell), nil
	case KindBoolean:
		if cell == nil {
			return false, nil
		}
		return utils.CheckTruth(CellAsString(cell)), nil
	case KindNumber:
		if cell == nil || CellAsString(cell) == "" {
			return nil, nil
		}
		str := CellAsString(cell)
		if i, err := strconv.ParseInt(str, 10, 64); err == nil {
			return i, nil
		}
		val, err := strconv.ParseFloat(str, 64)
		if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("field %s: %q is not numeric: %w", f.Name, str, ErrInvalidValue)
		}
		return val, nil
	case KindBlob:
		switch val := cell.(type) {
		case nil:
			return []byte{}, nil
		case []byte:
			return val, nil
		default:
			data, err := base64.StdEncoding.DecodeString(CellAsString(val))
			if err != nil {
				return nil, fmt.Errorf("field %s: invalid base64 data: %w", f.Name, ErrInvalidValue)
			}
			return data, nil
		}
	case KindDatetime:
		switch val := cell.(type) {
		case nil:
			return nil, nil
		case time.Time:
			return val, nil
		default:
			t, err := now.Parse(CellAsString(val))
			if err != nil {
				return nil, fmt.Errorf("field %s: unparsable date %q: %w", f.Name, CellAsString(val), err)
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("field %s: unsupported kind %v", f.Name, f.Kind)
}

// PrintCellAsSQLValue prints a cell as a SQL literal using the dialect's
// native type of this field.
func (f Field) PrintCellAsSQLValue(d dialect.Dialect, cell Cell) string {
	if IsUndefined(cell) {
		return "NULL"
	}
	return d.PrintCellAsSQLValue(cell, f.SQLType)
}

// PrintColumnDebug describes the field for diagnostics output.
func (f Field) PrintColumnDebug() string {
	flags := make([]string, 0, 4)
	if f.Params.PrimaryKey {
		flags = append(flags, "primaryKey")
	}
	if f.Params.ForeignKey {
		flags = append(flags, "foreignKey")
	}
	if f.Params.AutoIncrement {
		flags = append(flags, "autoIncrement")
	}
	if f.Params.NotNull {
		flags = append(flags, "notNull")
	}
	debug := fmt.Sprintf("%s: %s (%s", f.Name, f.Kind, f.SQLType)
	if f.MaxLength > 0 {
		debug += fmt.Sprintf(", maxLength=%d", f.MaxLength)
	}
	debug += ")"
	if len(flags) > 0 {
		debug += " [" + strings.Join(flags, ",") + "]"
	}
	return debug
}
