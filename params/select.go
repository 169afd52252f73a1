package params

import (
	"strings"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/schema"
)

// Select is a parsed field-selection list. Primary keys are always included
// whether or not they are listed.
type Select struct {
	columns []string
}

// ParseSelect parses a comma-separated field list; the empty string yields
// an empty Select that keeps every field.
func ParseSelect(s string) (Select, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Select{}, nil
	}
	var sel Select
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		sel.columns = append(sel.columns, token)
	}
	return sel, nil
}

// IsEmpty reports whether no selection was supplied.
func (s Select) IsEmpty() bool {
	return len(s.columns) == 0
}

// IsSelected reports whether field should be included in the output:
// always for an empty selection and for primary keys, otherwise only when
// the field is listed.
func (s Select) IsSelected(field schema.Field) bool {
	if s.IsEmpty() || field.Params.PrimaryKey {
		return true
	}
	for _, col := range s.columns {
		if strings.EqualFold(col, field.Name) {
			return true
		}
	}
	return false
}

// PrintSQLColumnNames prints the non-aggregated projection: the selected
// columns of model in model order. Listed columns missing from the model
// fail closed.
func (s Select) PrintSQLColumnNames(model *schema.Model, d dialect.Dialect) (string, error) {
	for _, col := range s.columns {
		if _, _, err := model.FieldByName(col); err != nil {
			return "", err
		}
	}
	var sb strings.Builder
	first := true
	for _, field := range model.Fields {
		if !s.IsSelected(field) {
			continue
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(d.PrintColumnName(field.Name))
	}
	return sb.String(), nil
}
