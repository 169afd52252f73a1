// Package restdb exposes relational tables as REST-style resources: it
// translates HTTP-shaped requests (filter, order, limit, aggregate, select)
// into SQL against a pluggable backend and serializes result rows into JSON,
// CSV, multipart form-data or urlencoded bodies with consistent null vs
// undefined, primary key and id-hashing semantics.
package restdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/logger"
	"github.com/restdb/restdb/params"
	"github.com/restdb/restdb/schema"
)

// Options configures one API instance. The zero value gives the strict
// defaults: invalid rows fail the whole batch, auto-increment fields are
// rejected on update, oversized strings are hard errors.
type Options struct {
	// Logger defaults to logger.Default
	Logger logger.Interface
	// Hasher enables opaque id hashing of numeric key fields
	Hasher *HashProvider
	// Locale is a BCP 47 tag enabling locale aware serialization
	Locale string
	// SkipInvalidRows downgrades row validation failures to warnings and
	// continues with the remaining rows of the batch
	SkipInvalidRows bool
	// AllowAutoIncrementUpdates accepts values for auto-increment fields
	// on the update path instead of rejecting the row
	AllowAutoIncrementUpdates bool
	// MaxLengthAsWarning downgrades oversized string values to warnings
	MaxLengthAsWarning bool
}

// API translates REST-style requests against one table into SQL and back.
// It is immutable after New and safe for concurrent use; per-request state
// lives in the Result and ModelSet it returns.
type API struct {
	model  *schema.Model
	d      dialect.Dialect
	db     Database
	log    logger.Interface
	hasher *HashProvider

	useLocale bool
	locale    language.Tag

	skipInvalidRows     bool
	allowAutoIncUpdates bool
	maxLengthAsWarning  bool
}

// New builds an API over the given database, dialect and model.
func New(db Database, d dialect.Dialect, model *schema.Model, opts Options) (*API, error) {
	if db == nil || d == nil || model == nil {
		return nil, errors.New("database, dialect and model are all required")
	}
	api := &API{
		model:               model,
		d:                   d,
		db:                  db,
		log:                 opts.Logger,
		hasher:              opts.Hasher,
		skipInvalidRows:     opts.SkipInvalidRows,
		allowAutoIncUpdates: opts.AllowAutoIncrementUpdates,
		maxLengthAsWarning:  opts.MaxLengthAsWarning,
	}
	if api.log == nil {
		api.log = logger.Default
	}
	if opts.Locale != "" {
		tag, err := language.Parse(opts.Locale)
		if err != nil {
			return nil, fmt.Errorf("invalid locale %q: %w", opts.Locale, err)
		}
		api.useLocale = true
		api.locale = tag
	}
	return api, nil
}

// Model returns the data model the API serves.
func (api *API) Model() *schema.Model { return api.model }

// HandleRequest maps one HTTP-shaped request onto the matching operation.
// The id is the row locator from the URL path, empty for collection
// requests; contentTypeHeader is the raw Content-Type header of the body.
func (api *API) HandleRequest(ctx context.Context, method, id string, p params.SQLParams, contentTypeHeader string, body io.Reader) *Result {
	switch method {
	case http.MethodGet:
		if id != "" {
			filter, err := api.idFilter(id)
			if err != nil {
				return NewResult().SetError(http.StatusBadRequest, err.Error())
			}
			p.Filter = params.CombineFilters(p.Filter, params.OpAnd, filter)
		}
		return api.Select(ctx, p)
	case http.MethodPost:
		rows, res := api.parseBody(ctx, contentTypeHeader, body)
		if res != nil {
			return res
		}
		return api.Insert(ctx, rows)
	case http.MethodPut:
		rows, res := api.parseBody(ctx, contentTypeHeader, body)
		if res != nil {
			return res
		}
		if id != "" {
			if len(rows) != 1 {
				return NewResult().SetError(http.StatusBadRequest,
					fmt.Sprintf("update of a single id needs exactly one row, got %d", len(rows)))
			}
			if err := api.applyID(rows[0], id); err != nil {
				return NewResult().SetError(http.StatusBadRequest, err.Error())
			}
		}
		return api.Update(ctx, rows)
	case http.MethodDelete:
		if id == "" {
			return NewResult().SetError(http.StatusBadRequest, fmt.Sprintf("delete needs an id: %v", ErrMissingID))
		}
		return api.Delete(ctx, id)
	}
	return NewResult().SetError(http.StatusMethodNotAllowed, fmt.Sprintf("unsupported method %q", method))
}

func (api *API) parseBody(ctx context.Context, contentTypeHeader string, body io.Reader) ([]schema.Row, *Result) {
	contentType, ctParams, err := ParseContentType(contentTypeHeader)
	if err != nil {
		return nil, NewResult().SetError(http.StatusUnsupportedMediaType, err.Error())
	}
	res := NewResult()
	rows, err := api.ParseRows(ctx, contentType, ctParams, body, res)
	if err != nil {
		res.SetError(http.StatusBadRequest, err.Error())
		return nil, res
	}
	if len(rows) == 0 {
		res.SetError(http.StatusBadRequest, "request body contains no rows")
		return nil, res
	}
	return rows, nil
}

// Select builds and runs one SELECT described by the params and wraps the
// cursor in a ModelSet on the result.
func (api *API) Select(ctx context.Context, p params.SQLParams) *Result {
	res := NewResult()
	sqlText, err := api.buildSelectSQL(p)
	if err != nil {
		return res.SetError(http.StatusBadRequest, err.Error())
	}
	begin := time.Now()
	cursor, err := api.db.Query(ctx, sqlText)
	api.log.Trace(ctx, begin, func() (string, int64) { return sqlText, -1 }, err)
	if err != nil {
		return res.SetError(http.StatusInternalServerError, fmt.Sprintf("query failed: %v", err))
	}
	res.Data = api.NewModelSet(cursor, p)
	return res
}

func (api *API) buildSelectSQL(p params.SQLParams) (string, error) {
	var columns string
	var groupBy string
	var err error
	if !p.Aggregate.IsEmpty() {
		if columns, err = p.Aggregate.PrintSQLColumnNames(api.model, api.d, p.Select); err != nil {
			return "", err
		}
		if groupBy, err = p.Aggregate.PrintSQLGroupBy(api.model, api.d, p.Select); err != nil {
			return "", err
		}
	} else if columns, err = p.Select.PrintSQLColumnNames(api.model, api.d); err != nil {
		return "", err
	}
	where, err := p.Filter.ToSQL(api.model, api.d)
	if err != nil {
		return "", err
	}
	orderBy, err := p.Order.ToSQL(api.model, api.d)
	if err != nil {
		return "", err
	}
	table := api.d.PrintTableName(api.model.Table)
	return api.d.PrintSQLSelect(table, columns, where, groupBy, orderBy, p.Limit.ToSQL()), nil
}

// Insert validates and inserts the given rows. Validation failures abort
// the batch unless SkipInvalidRows is set, in which case the offending row
// is skipped with a warning.
func (api *API) Insert(ctx context.Context, rows []schema.Row) *Result {
	res := NewResult()
	valid := api.validateBatch(res, rows, false)
	if !res.Success {
		return res
	}
	for _, row := range valid {
		sqlText, err := api.insertRowSQL(row)
		if err != nil {
			return res.SetError(http.StatusBadRequest, err.Error())
		}
		if !api.exec(ctx, res, sqlText) {
			return res
		}
	}
	return res
}

// Update validates and updates the given rows, locating each through its
// primary key cells.
func (api *API) Update(ctx context.Context, rows []schema.Row) *Result {
	res := NewResult()
	valid := api.validateBatch(res, rows, true)
	if !res.Success {
		return res
	}
	for _, row := range valid {
		sqlText, err := api.updateRowSQL(row)
		if err != nil {
			return res.SetError(http.StatusBadRequest, err.Error())
		}
		if !api.exec(ctx, res, sqlText) {
			return res
		}
	}
	return res
}

// Delete removes the row addressed by the given id.
func (api *API) Delete(ctx context.Context, id string) *Result {
	res := NewResult()
	pkCells, err := api.parseID(id)
	if err != nil {
		return res.SetError(http.StatusBadRequest, err.Error())
	}
	where, err := api.primaryKeyWhere(pkCells)
	if err != nil {
		return res.SetError(http.StatusBadRequest, err.Error())
	}
	sqlText := "DELETE FROM " + api.d.PrintTableName(api.model.Table) + " WHERE " + where + ";"
	api.exec(ctx, res, sqlText)
	return res
}

func (api *API) exec(ctx context.Context, res *Result, sqlText string) bool {
	begin := time.Now()
	affected, err := api.db.Exec(ctx, sqlText)
	api.log.Trace(ctx, begin, func() (string, int64) { return sqlText, affected }, err)
	if err != nil {
		res.SetError(http.StatusInternalServerError, fmt.Sprintf("exec failed: %v", err))
		return false
	}
	return true
}

// validateBatch runs row validation and returns the rows to process. On a
// validation failure it either fails the result or, with SkipInvalidRows,
// drops the row and records a warning.
func (api *API) validateBatch(res *Result, rows []schema.Row, forUpdate bool) []schema.Row {
	valid := make([]schema.Row, 0, len(rows))
	for idx, row := range rows {
		if err := api.validateRow(res, idx, row, forUpdate); err != nil {
			if api.skipInvalidRows {
				res.AddWarning(err.Error() + ", skipping row")
				continue
			}
			res.SetError(http.StatusBadRequest, err.Error())
			return nil
		}
		valid = append(valid, row)
	}
	if len(valid) == 0 && res.Success {
		res.SetError(http.StatusBadRequest, "no valid rows left in batch")
		return nil
	}
	return valid
}

func (api *API) validateRow(res *Result, idx int, row schema.Row, forUpdate bool) error {
	if len(row) != len(api.model.Fields) {
		return &RowValidationError{Row: idx, Reason: fmt.Sprintf("row has %d cells, model has %d fields", len(row), len(api.model.Fields))}
	}
	for i, field := range api.model.Fields {
		cell := row[i]
		if field.Params.NotNull && cell == nil {
			return &RowValidationError{Row: idx, Field: field.Name, Reason: "null value in not-null field"}
		}
		if forUpdate {
			if field.Params.AutoIncrement && !field.Params.PrimaryKey &&
				!schema.IsUndefined(cell) && !api.allowAutoIncUpdates {
				return &RowValidationError{Row: idx, Field: field.Name, Reason: "auto-increment field cannot be updated"}
			}
		} else if field.Params.PrimaryKey && !field.Params.AutoIncrement && schema.IsUndefined(cell) {
			return &RowValidationError{Row: idx, Field: field.Name, Reason: "missing primary key value"}
		}
		if forUpdate && field.Params.PrimaryKey && schema.IsUndefined(cell) {
			return &RowValidationError{Row: idx, Field: field.Name, Reason: "update row is missing its primary key value"}
		}
		if field.Kind == schema.KindString && field.MaxLength > 0 {
			if str, ok := cell.(string); ok && len(str) > field.MaxLength {
				overflow := &RowValidationError{Row: idx, Field: field.Name,
					Reason: fmt.Sprintf("value of %d characters exceeds maximum length %d", len(str), field.MaxLength)}
				if !api.maxLengthAsWarning {
					return overflow
				}
				res.AddWarning(overflow.Error())
			}
		}
	}
	return nil
}

// insertRowSQL builds one INSERT statement, skipping undefined cells so
// database defaults and auto-increment sequences apply.
func (api *API) insertRowSQL(row schema.Row) (string, error) {
	var columns, values []string
	for i, field := range api.model.Fields {
		if schema.IsUndefined(row[i]) {
			continue
		}
		columns = append(columns, api.d.PrintColumnName(field.Name))
		values = append(values, field.PrintCellAsSQLValue(api.d, row[i]))
	}
	if len(columns) == 0 {
		return "", errors.New("row has no values to insert")
	}
	return "INSERT INTO " + api.d.PrintTableName(api.model.Table) +
		" (" + strings.Join(columns, ",") + ") VALUES (" + strings.Join(values, ",") + ");", nil
}

// updateRowSQL builds one UPDATE statement addressed by the row's primary
// key cells. Key columns never appear in the SET list.
func (api *API) updateRowSQL(row schema.Row) (string, error) {
	var assignments []string
	pkCells := make([]schema.Cell, 0, 2)
	for i, field := range api.model.Fields {
		if field.Params.PrimaryKey {
			pkCells = append(pkCells, row[i])
			continue
		}
		if schema.IsUndefined(row[i]) {
			continue
		}
		assignments = append(assignments,
			api.d.PrintColumnName(field.Name)+"="+field.PrintCellAsSQLValue(api.d, row[i]))
	}
	if len(assignments) == 0 {
		return "", errors.New("row has no values to update")
	}
	where, err := api.primaryKeyWhere(pkCells)
	if err != nil {
		return "", err
	}
	return "UPDATE " + api.d.PrintTableName(api.model.Table) +
		" SET " + strings.Join(assignments, ",") + " WHERE " + where + ";", nil
}

// primaryKeyWhere prints the AND-joined equality conditions addressing one
// row by its primary key cells, in model order.
func (api *API) primaryKeyWhere(pkCells []schema.Cell) (string, error) {
	pkIndexes := api.model.PrimaryKeyIndexes()
	if len(pkIndexes) == 0 {
		return "", fmt.Errorf("%s has no primary keys: %w", api.model.Table, ErrInvalidID)
	}
	if len(pkCells) != len(pkIndexes) {
		return "", fmt.Errorf("got %d key values for %d primary keys: %w", len(pkCells), len(pkIndexes), ErrInvalidID)
	}
	conditions := make([]string, len(pkIndexes))
	for i, idx := range pkIndexes {
		field := api.model.Fields[idx]
		if pkCells[i] == nil || schema.IsUndefined(pkCells[i]) {
			return "", fmt.Errorf("primary key %s has no value: %w", field.Name, ErrInvalidID)
		}
		conditions[i] = "(" + api.d.PrintColumnName(field.Name) + " = " + field.PrintCellAsSQLValue(api.d, pkCells[i]) + ")"
	}
	return strings.Join(conditions, " AND "), nil
}

// idFilter turns an id locator into an equality filter over the primary
// keys, so single-row GETs reuse the normal select path.
func (api *API) idFilter(id string) (params.Filter, error) {
	pkCells, err := api.parseID(id)
	if err != nil {
		return params.Filter{}, err
	}
	pkIndexes := api.model.PrimaryKeyIndexes()
	var filter params.Filter
	for i, idx := range pkIndexes {
		field := api.model.Fields[idx]
		comparison := params.Comparison(field.Name, params.OpEq, schema.CellAsString(pkCells[i]))
		filter = params.CombineFilters(filter, params.OpAnd, comparison)
	}
	return filter, nil
}

// applyID writes the id's primary key cells into the row, overriding any
// key values carried in the body.
func (api *API) applyID(row schema.Row, id string) error {
	pkCells, err := api.parseID(id)
	if err != nil {
		return err
	}
	for i, idx := range api.model.PrimaryKeyIndexes() {
		row[idx] = pkCells[i]
	}
	return nil
}
