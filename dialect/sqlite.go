package dialect

type sqlite struct {
	common
}

func (sqlite) Name() string {
	return "sqlite"
}

func (d sqlite) quirks() dialectQuirks {
	return dialectQuirks{
		trueLiteral:    "1",
		falseLiteral:   "0",
		datetimeLayout: "2006-01-02 15:04:05.999",
		blobFormat:     "X'%s'",
		escape:         d.escapeString,
	}
}

func (d sqlite) PrintTableName(name string) string {
	return d.quoteIdentifier(name, '"')
}

func (d sqlite) PrintColumnName(name string) string {
	return d.quoteIdentifier(name, '"')
}

func (d sqlite) PrintCellAsSQLValue(cell any, sqlType string) string {
	return d.printCellAsSQLValue(cell, sqlType, d.quirks())
}

func (d sqlite) ParseSQLValueAsCell(raw any, sqlType string) (any, error) {
	return d.parseSQLValueAsCell(raw, sqlType)
}

func (sqlite) PrintSQLSelect(table, columns, where, groupBy, orderBy, limit string) string {
	return printSQLSelect(table, columns, where, groupBy, orderBy, limit)
}
