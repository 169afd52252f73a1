package params

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/schema"
)

// AggregateFunc is one of the supported SQL aggregate functions.
type AggregateFunc string

const (
	AggCount AggregateFunc = "count"
	AggSum   AggregateFunc = "sum"
	AggAvg   AggregateFunc = "avg"
	AggMin   AggregateFunc = "min"
	AggMax   AggregateFunc = "max"
)

// aggregatePlaceholder is the constant folded over non-selected columns so
// an aggregated projection keeps the full column count without dragging the
// columns into GROUP BY.
const aggregatePlaceholder = "-"

type aggregateItem struct {
	fn    AggregateFunc
	field string
}

// Aggregate is a parsed aggregation specification: comma-separated
// `function(field)` tokens.
type Aggregate struct {
	items []aggregateItem
}

var aggregateRegex = regexp.MustCompile(`^(count|sum|avg|min|max)\(([^'"()]+)\)$`)

// ParseAggregate parses an aggregate string; the empty string yields an
// empty Aggregate.
func ParseAggregate(s string) (Aggregate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Aggregate{}, nil
	}
	var agg Aggregate
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		match := aggregateRegex.FindStringSubmatch(strings.ToLower(token))
		if match == nil {
			return Aggregate{}, fmt.Errorf("unrecognized aggregate %q: %w", token, ErrSyntax)
		}
		agg.items = append(agg.items, aggregateItem{fn: AggregateFunc(match[1]), field: match[2]})
	}
	return agg, nil
}

// IsEmpty reports whether no aggregation was supplied.
func (a Aggregate) IsEmpty() bool {
	return len(a.items) == 0
}

// IsAggregated reports whether the named field participates in an aggregate
// function.
func (a Aggregate) IsAggregated(fieldName string) bool {
	for _, item := range a.items {
		if strings.EqualFold(item.field, fieldName) {
			return true
		}
	}
	return false
}

func (a Aggregate) funcFor(fieldName string) (AggregateFunc, bool) {
	for _, item := range a.items {
		if strings.EqualFold(item.field, fieldName) {
			return item.fn, true
		}
	}
	return "", false
}

// PrintSQLColumnNames prints the full projection: one column per model field
// in model order. Aggregated fields become `func(col) as col`, selected
// fields stay plain, and everything else collapses to a constant aggregate
// placeholder so the column cardinality never changes.
func (a Aggregate) PrintSQLColumnNames(model *schema.Model, d dialect.Dialect, sel Select) (string, error) {
	for _, item := range a.items {
		if _, _, err := model.FieldByName(item.field); err != nil {
			return "", err
		}
	}
	var sb strings.Builder
	for idx, field := range model.Fields {
		if idx > 0 {
			sb.WriteByte(',')
		}
		col := d.PrintColumnName(field.Name)
		if fn, ok := a.funcFor(field.Name); ok {
			sb.WriteString(string(fn))
			sb.WriteByte('(')
			sb.WriteString(col)
			sb.WriteString(") as ")
			sb.WriteString(col)
		} else if sel.IsSelected(field) {
			sb.WriteString(col)
		} else {
			sb.WriteString("MIN('")
			sb.WriteString(aggregatePlaceholder)
			sb.WriteString("') as ")
			sb.WriteString(col)
		}
	}
	return sb.String(), nil
}

// PrintSQLGroupBy prints the GROUP BY list: the selected, non-aggregated
// columns in model order.
func (a Aggregate) PrintSQLGroupBy(model *schema.Model, d dialect.Dialect, sel Select) (string, error) {
	for _, item := range a.items {
		if _, _, err := model.FieldByName(item.field); err != nil {
			return "", err
		}
	}
	var sb strings.Builder
	first := true
	for _, field := range model.Fields {
		if a.IsAggregated(field.Name) || !sel.IsSelected(field) {
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
