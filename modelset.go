package restdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/restdb/restdb/params"
	"github.com/restdb/restdb/schema"
)

// ModelSet pairs a data model with a live row cursor and the query params
// that produced it. It is consumed exactly once via WriteString; the cursor
// is owned by the writer for the duration of the call.
type ModelSet struct {
	Model  *schema.Model
	Cursor Cursor
	Params params.SQLParams

	api      *API
	consumed bool
}

// NewModelSet wraps a cursor for serialization against the API's model.
func (api *API) NewModelSet(cursor Cursor, p params.SQLParams) *ModelSet {
	return &ModelSet{Model: api.model, Cursor: cursor, Params: p, api: api}
}

// WriteString serializes the whole cursor into the requested wire format.
// Warnings raised along the way are attached to res when it is non-nil.
func (ms *ModelSet) WriteString(ctx context.Context, contentType ContentType, res *Result) (string, error) {
	if ms.consumed {
		return "", ErrCursorConsumed
	}
	ms.consumed = true
	defer ms.Cursor.Close()

	switch contentType {
	case ContentTypeJSON:
		return ms.writeJSON(ctx)
	case ContentTypeCSV:
		return ms.writeCSV(ctx)
	case ContentTypeFormData:
		return ms.writeFormData(ctx)
	case ContentTypeURLEncoded:
		return ms.writeURLEncoded(ctx, res)
	}
	return "", fmt.Errorf("cannot serialize rows as %q: %w", contentType, ErrUnsupportedContentType)
}

func (ms *ModelSet) warn(res *Result, message string) {
	if res != nil {
		res.AddWarning(message)
	}
	ms.api.log.Warn(context.Background(), message)
}

// hashedField reports whether the field's values go through the hashid
// provider on the wire. Aggregated values are never hashed: an aggregate of
// ids is a number, not a row identifier.
func (ms *ModelSet) hashedField(field schema.Field) bool {
	if ms.api.hasher == nil || !ms.Model.Options.UseHashids {
		return false
	}
	if !field.Params.PrimaryKey && !field.Params.ForeignKey {
		return false
	}
	if field.Kind != schema.KindNumber {
		return false
	}
	return !ms.Params.Aggregate.IsAggregated(field.Name)
}

// rowID synthesizes the virtual id of a row: its primary key values, each
// hashed when hashing applies, joined by a space.
func (ms *ModelSet) rowID(row schema.Row) (string, error) {
	pkIndexes := ms.Model.PrimaryKeyIndexes()
	parts := make([]string, 0, len(pkIndexes))
	for _, idx := range pkIndexes {
		field := ms.Model.Fields[idx]
		if idx >= len(row) {
			return "", fmt.Errorf("row has no value for primary key %s", field.Name)
		}
		cell := row[idx]
		if ms.hashedField(field) {
			if value, ok := cellAsInt64(cell); ok {
				encoded, err := ms.api.hasher.Encode(field.Name, value)
				if err != nil {
					return "", err
				}
				parts = append(parts, encoded)
				continue
			}
		}
		parts = append(parts, schema.CellAsString(cell))
	}
	return strings.Join(parts, " "), nil
}

// parseID reverses rowID into primary key cells.
func (api *API) parseID(id string) ([]schema.Cell, error) {
	pkIndexes := api.model.PrimaryKeyIndexes()
	parts := strings.Split(id, " ")
	if id == "" || len(parts) != len(pkIndexes) {
		return nil, fmt.Errorf("id %q does not match the %d primary keys of %s: %w",
			id, len(pkIndexes), api.model.Table, ErrInvalidID)
	}
	cells := make([]schema.Cell, len(parts))
	for i, part := range parts {
		field := api.model.Fields[pkIndexes[i]]
		if api.hashedKeyField(field) {
			value, err := api.hasher.Decode(field.Name, part)
			if err != nil {
				return nil, err
			}
			cells[i] = value
			continue
		}
		cell, err := field.DeserializeCell(part)
		if err != nil {
			return nil, fmt.Errorf("id %q: %w", id, err)
		}
		cells[i] = cell
	}
	return cells, nil
}

// hashedKeyField is the request-path twin of ModelSet.hashedField; incoming
// ids and key values never carry aggregates.
func (api *API) hashedKeyField(field schema.Field) bool {
	if api.hasher == nil || !api.model.Options.UseHashids {
		return false
	}
	if !field.Params.PrimaryKey && !field.Params.ForeignKey {
		return false
	}
	return field.Kind == schema.KindNumber
}

func cellAsInt64(cell schema.Cell) (int64, bool) {
	switch val := cell.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case float64:
		if val == float64(int64(val)) {
			return int64(val), true
		}
	}
	return 0, false
}

// serializeCell runs a cell through the field codec, honoring the API
// locale when one is configured.
func (ms *ModelSet) serializeCell(field schema.Field, cell schema.Cell) (schema.Cell, error) {
	if ms.api.useLocale {
		return field.SerializeCellWithLocale(ms.api.d, ms.api.locale, cell)
	}
	return field.SerializeCell(ms.api.d, cell)
}
