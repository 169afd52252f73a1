package schema

import (
	"fmt"
	"strings"
)

// ModelOptions is the per-table API configuration applied when the model is
// built.
type ModelOptions struct {
	// IncludeFields keeps only the listed columns; empty keeps all
	IncludeFields []string
	// ExcludeFields drops the listed columns
	ExcludeFields []string
	// UseHashids obfuscates numeric primary and foreign keys on the wire
	UseHashids bool
	// DatesAsString disables native datetime parsing and treats datetime
	// columns as plain strings
	DatesAsString bool
}

// Model is the ordered field list describing one table's shape for API
// purposes. Field order is stable; row index i corresponds to field index i.
type Model struct {
	Table   string
	Fields  []Field
	Options ModelOptions

	fieldIndex map[string]int
}

// NewModel builds a model for table from introspected fields, applying the
// include/exclude lists of opts.
func NewModel(table string, fields []Field, opts ModelOptions) *Model {
	model := &Model{
		Table:   table,
		Options: opts,
		Fields:  make([]Field, 0, len(fields)),
	}
	for _, field := range fields {
		if len(opts.IncludeFields) > 0 && !containsFold(opts.IncludeFields, field.Name) && !field.Params.PrimaryKey {
			continue
		}
		if containsFold(opts.ExcludeFields, field.Name) {
			continue
		}
		if opts.DatesAsString && field.Kind == KindDatetime {
			field.Kind = KindString
		}
		model.Fields = append(model.Fields, field)
	}
	model.fieldIndex = make(map[string]int, len(model.Fields))
	for i, field := range model.Fields {
		model.fieldIndex[field.Name] = i
	}
	return model
}

func containsFold(list []string, name string) bool {
	for _, item := range list {
		if strings.EqualFold(item, name) {
			return true
		}
	}
	return false
}

// FieldByName returns the field with the given name and its index, or
// ErrInvalidField if the model has no such column.
func (m *Model) FieldByName(name string) (Field, int, error) {
	if idx, ok := m.fieldIndex[name]; ok {
		return m.Fields[idx], idx, nil
	}
	return Field{}, -1, fmt.Errorf("no column %q in table %s: %w", name, m.Table, ErrInvalidField)
}

// PrimaryKeyIndexes returns the indexes of the primary key fields in model
// order.
func (m *Model) PrimaryKeyIndexes() []int {
	var indexes []int
	for i, field := range m.Fields {
		if field.Params.PrimaryKey {
			indexes = append(indexes, i)
		}
	}
	return indexes
}

// DebugString describes the model column by column.
func (m *Model) DebugString() string {
	var sb strings.Builder
	sb.WriteString(m.Table)
	sb.WriteString(":\n")
	for _, field := range m.Fields {
		sb.WriteString("  ")
		sb.WriteString(field.PrintColumnDebug())
		sb.WriteByte('\n')
	}
	return sb.String()
}
