package dialect

import (
	"fmt"
)

// Dialect generates backend specific SQL text: identifier quoting, literal
// printing and SELECT statement assembly. Implementations never execute SQL.
type Dialect interface {
	// Name returns the dialect name, e.g. "postgres"
	Name() string
	// PrintTableName quotes a table name
	PrintTableName(name string) string
	// PrintColumnName quotes a column name
	PrintColumnName(name string) string
	// PrintCellAsSQLValue prints a cell as a SQL literal for the given native type
	PrintCellAsSQLValue(cell any, sqlType string) string
	// ParseSQLValueAsCell converts a raw driver value into a cell for the given native type
	ParseSQLValueAsCell(raw any, sqlType string) (any, error)
	// PrintSQLSelect assembles a full SELECT statement from pre-printed
	// fragments, omitting empty ones
	PrintSQLSelect(table, columns, where, groupBy, orderBy, limit string) string
}

// New returns the dialect for the given driver name.
func New(name string) (Dialect, error) {
	switch name {
	case "postgres", "pgx":
		return &postgres{}, nil
	case "mysql", "mariadb":
		return &mysql{}, nil
	case "mssql", "sqlserver":
		return &mssql{}, nil
	case "sqlite", "sqlite3":
		return &sqlite{}, nil
	}
	return nil, fmt.Errorf("unsupported dialect %q", name)
}
