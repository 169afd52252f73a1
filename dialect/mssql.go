package dialect

import "strings"

type mssql struct {
	common
}

func (mssql) Name() string {
	return "mssql"
}

func (d mssql) quirks() dialectQuirks {
	return dialectQuirks{
		trueLiteral:    "1",
		falseLiteral:   "0",
		datetimeLayout: "2006-01-02T15:04:05.999",
		blobFormat:     "0x%s",
		stringPrefix:   "N",
		escape:         d.escapeString,
	}
}

func (mssql) printIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (d mssql) PrintTableName(name string) string {
	return d.printIdentifier(name)
}

func (d mssql) PrintColumnName(name string) string {
	return d.printIdentifier(name)
}

func (d mssql) PrintCellAsSQLValue(cell any, sqlType string) string {
	return d.printCellAsSQLValue(cell, sqlType, d.quirks())
}

func (d mssql) ParseSQLValueAsCell(raw any, sqlType string) (any, error) {
	return d.parseSQLValueAsCell(raw, sqlType)
}

// PrintSQLSelect rewrites the generic "N OFFSET M" limit fragment into
// OFFSET ... FETCH syntax, which on SQL Server requires an ORDER BY.
func (mssql) PrintSQLSelect(table, columns, where, groupBy, orderBy, limit string) string {
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
	if limit != "" {
		if orderBy == "" {
			orderBy = "1"
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(orderBy)

		count, offset := limit, "0"
		if idx := strings.Index(limit, " OFFSET "); idx >= 0 {
			count, offset = limit[:idx], limit[idx+len(" OFFSET "):]
		}
		sql.WriteString(" OFFSET ")
		sql.WriteString(offset)
		sql.WriteString(" ROWS FETCH NEXT ")
		sql.WriteString(count)
		sql.WriteString(" ROWS ONLY")
	} else if orderBy != "" {
		sql.WriteString(" ORDER BY ")
		sql.WriteString(orderBy)
	}
	sql.WriteString(";")
	return sql.String()
}
