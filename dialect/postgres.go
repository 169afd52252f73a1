package dialect

type postgres struct {
	common
}

func (postgres) Name() string {
	return "postgres"
}

func (d postgres) quirks() dialectQuirks {
	return dialectQuirks{
		trueLiteral:    "true",
		falseLiteral:   "false",
		datetimeLayout: "2006-01-02 15:04:05.999999Z07:00",
		blobFormat:     `'\x%s'`,
		escape:         d.escapeString,
	}
}

func (d postgres) PrintTableName(name string) string {
	return d.quoteIdentifier(name, '"')
}

func (d postgres) PrintColumnName(name string) string {
	return d.quoteIdentifier(name, '"')
}

func (d postgres) PrintCellAsSQLValue(cell any, sqlType string) string {
	return d.printCellAsSQLValue(cell, sqlType, d.quirks())
}

func (d postgres) ParseSQLValueAsCell(raw any, sqlType string) (any, error) {
	return d.parseSQLValueAsCell(raw, sqlType)
}

func (postgres) PrintSQLSelect(table, columns, where, groupBy, orderBy, limit string) string {
	return printSQLSelect(table, columns, where, groupBy, orderBy, limit)
}
