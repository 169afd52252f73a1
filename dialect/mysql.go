package dialect

import "strings"

// mysql covers both MySQL and MariaDB.
type mysql struct {
	common
}

func (mysql) Name() string {
	return "mysql"
}

// escapeString doubles quotes and additionally escapes backslashes, which
// MySQL treats as escape characters inside string literals.
func (d mysql) mysqlEscape(val string) string {
	val = strings.ReplaceAll(val, `\`, `\\`)
	return d.escapeString(val)
}

func (d mysql) quirks() dialectQuirks {
	return dialectQuirks{
		trueLiteral:    "1",
		falseLiteral:   "0",
		datetimeLayout: "2006-01-02 15:04:05.999999",
		blobFormat:     "x'%s'",
		escape:         d.mysqlEscape,
	}
}

func (d mysql) PrintTableName(name string) string {
	return d.quoteIdentifier(name, '`')
}

func (d mysql) PrintColumnName(name string) string {
	return d.quoteIdentifier(name, '`')
}

func (d mysql) PrintCellAsSQLValue(cell any, sqlType string) string {
	return d.printCellAsSQLValue(cell, sqlType, d.quirks())
}

func (d mysql) ParseSQLValueAsCell(raw any, sqlType string) (any, error) {
	return d.parseSQLValueAsCell(raw, sqlType)
}

func (mysql) PrintSQLSelect(table, columns, where, groupBy, orderBy, limit string) string {
	return printSQLSelect(table, columns, where, groupBy, orderBy, limit)
}
