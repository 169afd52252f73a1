package dialect

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/restdb/restdb/utils"
)

// sqlTypeCategory groups backend native types by the literal syntax they need.
type sqlTypeCategory int

const (
	categoryString sqlTypeCategory = iota
	categoryNumber
	categoryBoolean
	categoryDatetime
	categoryBlob
)

var typeCategories = map[string]sqlTypeCategory{
	"tinyint": categoryNumber, "smallint": categoryNumber, "mediumint": categoryNumber,
	"int": categoryNumber, "integer": categoryNumber, "bigint": categoryNumber,
	"int2": categoryNumber, "int4": categoryNumber, "int8": categoryNumber,
	"serial": categoryNumber, "bigserial": categoryNumber,
	"decimal": categoryNumber, "numeric": categoryNumber, "money": categoryNumber,
	"float": categoryNumber, "float4": categoryNumber, "float8": categoryNumber,
	"double": categoryNumber, "double precision": categoryNumber, "real": categoryNumber,

	"bool": categoryBoolean, "boolean": categoryBoolean, "bit": categoryBoolean,

	"date": categoryDatetime, "datetime": categoryDatetime, "datetime2": categoryDatetime,
	"smalldatetime": categoryDatetime, "timestamp": categoryDatetime,
	"timestamptz": categoryDatetime, "timestamp with time zone": categoryDatetime,
	"timestamp without time zone": categoryDatetime, "time": categoryDatetime,

	"blob": categoryBlob, "tinyblob": categoryBlob, "mediumblob": categoryBlob,
	"longblob": categoryBlob, "bytea": categoryBlob, "binary": categoryBlob,
	"varbinary": categoryBlob, "image": categoryBlob,
}

// categoryOf maps a native type name like "VARCHAR(255)" to its literal category.
func categoryOf(sqlType string) sqlTypeCategory {
	name := strings.ToLower(strings.TrimSpace(sqlType))
	if idx := strings.IndexByte(name, '('); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	if category, ok := typeCategories[name]; ok {
		return category
	}
	return categoryString
}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

func parseDatetime(val string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable datetime value %q", val)
}

// common holds the behavior shared by all dialects; each dialect overrides
// the quoting and literal quirks it needs.
type common struct{}

func (common) escapeString(val string) string {
	return strings.ReplaceAll(val, "'", "''")
}

func (c common) quoteIdentifier(name string, quote byte) string {
	escaped := strings.ReplaceAll(name, string(quote), string(quote)+string(quote))
	return string(quote) + escaped + string(quote)
}

func cellAsString(cell any) string {
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
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// printNumber prints a numeric literal, refusing anything that does not
// parse as a number so raw text can never leak into SQL unquoted.
func printNumber(cell any) string {
	switch val := cell.(type) {
	case int64, int, float64:
		return cellAsString(val)
	case bool:
		if val {
			return "1"
		}
		return "0"
	}
	str := cellAsString(cell)
	if _, err := strconv.ParseFloat(str, 64); err != nil {
		return "NULL"
	}
	return str
}

func (c common) printCellAsSQLValue(cell any, sqlType string, quirks dialectQuirks) string {
	if cell == nil {
		return "NULL"
	}
	switch categoryOf(sqlType) {
	case categoryNumber:
		return printNumber(cell)
	case categoryBoolean:
		truth := false
		switch val := cell.(type) {
		case bool:
			truth = val
		default:
			truth = utils.CheckTruth(cellAsString(val))
		}
		if truth {
			return quirks.trueLiteral
		}
		return quirks.falseLiteral
	case categoryDatetime:
		if t, ok := cell.(time.Time); ok {
			return "'" + t.Format(quirks.datetimeLayout) + "'"
		}
		return "'" + c.escapeString(cellAsString(cell)) + "'"
	case categoryBlob:
		var data []byte
		if b, ok := cell.([]byte); ok {
			data = b
		} else {
			data = []byte(cellAsString(cell))
		}
		return fmt.Sprintf(quirks.blobFormat, hex.EncodeToString(data))
	default:
		return quirks.stringPrefix + "'" + quirks.escape(cellAsString(cell)) + "'"
	}
}

func (common) parseSQLValueAsCell(raw any, sqlType string) (any, error) {
	if raw == nil {
		return nil, nil
	}
	switch categoryOf(sqlType) {
	case categoryNumber:
		switch val := raw.(type) {
		case int64, float64:
			return val, nil
		case int:
			return int64(val), nil
		case int32:
			return int64(val), nil
		case float32:
			return float64(val), nil
		case bool:
			if val {
				return int64(1), nil
			}
			return int64(0), nil
		}
		str := cellAsString(raw)
		if i, err := strconv.ParseInt(str, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric value %q for type %s", str, sqlType)
		}
		return f, nil
	case categoryBoolean:
		if val, ok := raw.(bool); ok {
			return val, nil
		}
		return utils.CheckTruth(cellAsString(raw)), nil
	case categoryDatetime:
		if val, ok := raw.(time.Time); ok {
			return val, nil
		}
		return parseDatetime(cellAsString(raw))
	case categoryBlob:
		if val, ok := raw.([]byte); ok {
			return val, nil
		}
		return []byte(cellAsString(raw)), nil
	default:
		return cellAsString(raw), nil
	}
}

// dialectQuirks captures the literal-syntax differences between backends.
type dialectQuirks struct {
	trueLiteral    string
	falseLiteral   string
	datetimeLayout string
	blobFormat     string
	stringPrefix   string
	escape         func(string) string
}

func printSQLSelect(table, columns, where, groupBy, orderBy, limit string) string {
	var sql strings.Builder
	sql.WriteString("SELECT ")
	sql.WriteString(columns)
	sql.WriteString(" FROM ")
	sql.WriteString(table)
	if where != "" {
		sql.WriteString(" WHERE ")
		sql.WriteString(where)
	}
	if groupBy != "" {
		sql.WriteString(" GROUP BY ")
		sql.WriteString(groupBy)
	}
	if orderBy != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(orderBy)
	}
	if limit != "" {
		sql.WriteString(" LIMIT ")
		sql.WriteString(limit)
	}
	sql.WriteString(";")
	return sql.String()
}
