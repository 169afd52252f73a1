// Package params turns HTTP-style query parameters (filter, order, limit,
// aggregate, select) into immutable value objects that print themselves as
// SQL fragments against a schema.Model. Anything outside the documented
// grammar fails closed, never partially interpreted.
package params

import "errors"

// ErrSyntax parameter string that does not match the grammar
var ErrSyntax = errors.New("invalid parameter syntax")

// SQLParams bundles the parsed query modifiers of one request.
type SQLParams struct {
	Filter    Filter
	Order     Order
	Limit     Limit
	Aggregate Aggregate
	Select    Select
}

// Parse parses the raw parameter strings of one request. Empty strings
// yield empty modifiers that contribute nothing to the generated SQL.
func Parse(filter, order, limit, aggregate, sel string) (SQLParams, error) {
	var p SQLParams
	var err error
	if p.Filter, err = ParseFilter(filter); err != nil {
		return SQLParams{}, err
	}
	if p.Order, err = ParseOrder(order); err != nil {
		return SQLParams{}, err
	}
	if p.Limit, err = ParseLimit(limit); err != nil {
		return SQLParams{}, err
	}
	if p.Aggregate, err = ParseAggregate(aggregate); err != nil {
		return SQLParams{}, err
	}
	if p.Select, err = ParseSelect(sel); err != nil {
		return SQLParams{}, err
	}
	return p, nil
}

// IsEmpty reports whether no modifier was supplied.
func (p SQLParams) IsEmpty() bool {
	return p.Filter.IsEmpty() && p.Order.IsEmpty() && p.Limit.IsEmpty() &&
		p.Aggregate.IsEmpty() && p.Select.IsEmpty()
}
