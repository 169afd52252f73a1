package params

import (
	"fmt"
	"strings"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/schema"
)

type orderColumn struct {
	name       string
	descending bool
}

// Order is a parsed ordering specification: comma-separated
// `column[ ASC|DESC|+|-]` tokens, ascending by default.
type Order struct {
	columns []orderColumn
}

// ParseOrder parses an order string; the empty string yields an empty Order.
func ParseOrder(s string) (Order, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Order{}, nil
	}
	var order Order
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		col := orderColumn{}
		switch {
		case strings.HasSuffix(token, "+"):
			col.name = strings.TrimSpace(token[:len(token)-1])
		case strings.HasSuffix(token, "-"):
			col.name = strings.TrimSpace(token[:len(token)-1])
			col.descending = true
		default:
			parts := strings.Fields(token)
			switch len(parts) {
			case 1:
				col.name = parts[0]
			case 2:
				col.name = parts[0]
				switch strings.ToUpper(parts[1]) {
				case "ASC":
				case "DESC":
					col.descending = true
				default:
					return Order{}, fmt.Errorf("unrecognized order direction %q: %w", parts[1], ErrSyntax)
				}
			default:
				return Order{}, fmt.Errorf("unrecognized order token %q: %w", token, ErrSyntax)
			}
		}
		if col.name == "" {
			return Order{}, fmt.Errorf("empty column in order %q: %w", s, ErrSyntax)
		}
		order.columns = append(order.columns, col)
	}
	return order, nil
}

// IsEmpty reports whether no ordering was supplied.
func (o Order) IsEmpty() bool {
	return len(o.columns) == 0
}

// ToSQL prints the ORDER BY column list. Unknown columns fail closed.
func (o Order) ToSQL(model *schema.Model, d dialect.Dialect) (string, error) {
	var sb strings.Builder
	for idx, col := range o.columns {
		field, _, err := model.FieldByName(col.name)
		if err != nil {
			return "", err
		}
		if idx > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(d.PrintColumnName(field.Name))
		if col.descending {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}
	return sb.String(), nil
}
