package params

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/schema"
)

// CompOp is a comparison operator of the filter grammar.
type CompOp string

const (
	OpLt   CompOp = "lt"
	OpLe   CompOp = "le"
	OpEq   CompOp = "eq"
	OpGe   CompOp = "ge"
	OpGt   CompOp = "gt"
	OpLike CompOp = "like"
)

var compOpSQL = map[CompOp]string{
	OpLt:   "<",
	OpLe:   "<=",
	OpEq:   "=",
	OpGe:   ">=",
	OpGt:   ">",
	OpLike: "LIKE",
}

// BoolOp combines two filters.
type BoolOp string

const (
	OpAnd BoolOp = "and"
	OpOr  BoolOp = "or"
)

type filterKind int

const (
	filterEmpty filterKind = iota
	filterComparison
	filterNegation
	filterConjunction
)

// Filter is an immutable boolean expression tree over model fields. The zero
// value is the empty filter.
type Filter struct {
	kind   filterKind
	field  string
	op     CompOp
	value  string
	boolOp BoolOp
	left   *Filter
	right  *Filter
}

// field and value must not contain quotes or parentheses, so a comparison
// can never smuggle grammar characters into the SQL printing stage
var comparisonRegex = regexp.MustCompile(`^\(([^'"()]+)\)-(lt|le|eq|ge|gt|like)\(([^'"()]*)\)$`)

// Comparison builds a single (field) OP (value) filter programmatically.
func Comparison(field string, op CompOp, value string) Filter {
	return Filter{kind: filterComparison, field: field, op: op, value: value}
}

// Negation wraps a filter in a logical NOT.
func Negation(inner Filter) Filter {
	if inner.IsEmpty() {
		return Filter{}
	}
	return Filter{kind: filterNegation, left: &inner}
}

// CombineFilters joins two filters with op. An empty side is absorbed: the
// other side is returned unchanged, and two empty filters stay empty.
func CombineFilters(left Filter, op BoolOp, right Filter) Filter {
	switch {
	case left.IsEmpty():
		return right
	case right.IsEmpty():
		return left
	default:
		return Filter{kind: filterConjunction, boolOp: op, left: &left, right: &right}
	}
}

// ParseFilter parses the filter grammar:
//
//	(field)-lt|le|eq|ge|gt|like(value)
//	-not(filter)          (bare -(filter) is accepted for backward compatibility)
//	(filter)-and|or(filter)
//
// Anything else fails with ErrSyntax.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Filter{}, nil
	}
	return parseFilter(s)
}

func parseFilter(s string) (Filter, error) {
	if match := comparisonRegex.FindStringSubmatch(s); match != nil {
		return Filter{kind: filterComparison, field: match[1], op: CompOp(match[2]), value: match[3]}, nil
	}

	if inner, ok := matchNegation(s); ok {
		child, err := parseFilter(inner)
		if err != nil {
			return Filter{}, err
		}
		return Filter{kind: filterNegation, left: &child}, nil
	}

	if left, op, right, ok := splitBoolean(s); ok {
		leftFilter, err := parseFilter(left)
		if err != nil {
			return Filter{}, err
		}
		rightFilter, err := parseFilter(right)
		if err != nil {
			return Filter{}, err
		}
		return Filter{kind: filterConjunction, boolOp: op, left: &leftFilter, right: &rightFilter}, nil
	}

	// a filter wrapped in one redundant pair of parentheses, as produced by
	// the (filter)-and(filter) grammar
	if inner, ok := matchGroup(s); ok {
		return parseFilter(inner)
	}

	return Filter{}, fmt.Errorf("unrecognized filter %q: %w", s, ErrSyntax)
}

// matchNegation accepts -not(inner) and the legacy bare -(inner), requiring
// the opening parenthesis to close at the end of the string.
func matchNegation(s string) (string, bool) {
	var rest string
	switch {
	case strings.HasPrefix(s, "-not("):
		rest = s[len("-not("):]
	case strings.HasPrefix(s, "-("):
		rest = s[len("-("):]
	default:
		return "", false
	}
	if !closesAtEnd(rest) {
		return "", false
	}
	return rest[:len(rest)-1], true
}

// matchGroup accepts a whole string wrapped in one balanced pair of
// parentheses.
func matchGroup(s string) (string, bool) {
	if !strings.HasPrefix(s, "(") {
		return "", false
	}
	rest := s[1:]
	if !closesAtEnd(rest) {
		return "", false
	}
	return rest[:len(rest)-1], true
}

// closesAtEnd reports whether the parenthesis opened just before rest closes
// exactly at the last character of rest.
func closesAtEnd(rest string) bool {
	depth := 1
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(rest)-1
			}
		}
	}
	return false
}

// splitBoolean splits s at its single top-level -and/-or token, ignoring
// anything inside parentheses. More or less than one top-level token means
// the string is not a boolean combination.
func splitBoolean(s string) (left string, op BoolOp, right string, ok bool) {
	depth := 0
	found := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return "", "", "", false
			}
		case '-':
			if depth != 0 {
				continue
			}
			var token BoolOp
			if strings.HasPrefix(s[i:], "-and") {
				token = OpAnd
			} else if strings.HasPrefix(s[i:], "-or") {
				token = OpOr
			} else {
				continue
			}
			if found {
				// ambiguous: a second top-level boolean operator
				return "", "", "", false
			}
			found = true
			left = s[:i]
			op = token
			right = s[i+len(token)+1:]
			i += len(token)
		}
	}
	if !found || left == "" || right == "" {
		return "", "", "", false
	}
	return left, op, right, true
}

// IsEmpty reports whether the filter contributes nothing to the SQL.
func (f Filter) IsEmpty() bool {
	return f.kind == filterEmpty
}

// ToSQL prints the filter as a SQL condition against model. Every logical
// unit is parenthesized so the output never depends on operator precedence.
// Unknown fields and values rejected by the field codec fail closed.
func (f Filter) ToSQL(model *schema.Model, d dialect.Dialect) (string, error) {
	switch f.kind {
	case filterEmpty:
		return "", nil
	case filterComparison:
		field, _, err := model.FieldByName(f.field)
		if err != nil {
			return "", err
		}
		cell, err := field.DeserializeCell(f.value)
		if err != nil {
			return "", err
		}
		if cell == nil || schema.IsUndefined(cell) || schema.CellAsString(cell) == "" {
			return "", fmt.Errorf("filter value %q is empty for field %s: %w", f.value, f.field, schema.ErrInvalidValue)
		}
		return "(" + d.PrintColumnName(field.Name) + " " + compOpSQL[f.op] + " " +
			field.PrintCellAsSQLValue(d, cell) + ")", nil
	case filterNegation:
		inner, err := f.left.ToSQL(model, d)
		if err != nil {
			return "", err
		}
		return "(NOT " + inner + ")", nil
	case filterConjunction:
		left, err := f.left.ToSQL(model, d)
		if err != nil {
			return "", err
		}
		right, err := f.right.ToSQL(model, d)
		if err != nil {
			return "", err
		}
		return "(" + left + " " + strings.ToUpper(string(f.boolOp)) + " " + right + ")", nil
	}
	return "", fmt.Errorf("unrecognized filter node: %w", ErrSyntax)
}
