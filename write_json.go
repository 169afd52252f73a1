package restdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/restdb/restdb/schema"
)

// writeJSON emits the cursor as an array of objects. Null cells appear as
// literal null; undefined cells produce no key at all. Booleans and
// non-hashed numbers are bare literals, everything else is a quoted string.
func (ms *ModelSet) writeJSON(ctx context.Context) (string, error) {
	var sb strings.Builder
	sb.WriteByte('[')

	first := true
	for {
		ok, err := ms.Cursor.Next(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false

		if err := ms.writeJSONRow(&sb, ms.Cursor.Row()); err != nil {
			return "", err
		}
	}

	sb.WriteByte(']')
	return sb.String(), nil
}

func (ms *ModelSet) writeJSONRow(sb *strings.Builder, row schema.Row) error {
	id, err := ms.rowID(row)
	if err != nil {
		return err
	}
	sb.WriteString(`{"id":`)
	sb.WriteString(jsonString(id))

	for i, field := range ms.Model.Fields {
		if field.Name == "id" {
			// the synthesized id key already carries this field's value
			continue
		}
		if !ms.Params.Select.IsSelected(field) {
			continue
		}
		if i >= len(row) {
			return fmt.Errorf("row has %d cells, model has %d fields", len(row), len(ms.Model.Fields))
		}
		cell := row[i]
		if schema.IsUndefined(cell) {
			continue
		}
		sb.WriteByte(',')
		sb.WriteString(jsonString(field.Name))
		sb.WriteByte(':')

		if cell == nil {
			sb.WriteString("null")
			continue
		}
		if ms.hashedField(field) {
			if value, ok := cellAsInt64(cell); ok {
				encoded, err := ms.api.hasher.Encode(field.Name, value)
				if err != nil {
					return err
				}
				sb.WriteString(jsonString(encoded))
				continue
			}
		}
		// bare literals must stay machine readable, so locale formatting
		// applies only to quoted kinds
		var serialized schema.Cell
		if field.Kind == schema.KindBoolean || field.Kind == schema.KindNumber {
			serialized, err = field.SerializeCell(ms.api.d, cell)
		} else {
			serialized, err = ms.serializeCell(field, cell)
		}
		if err != nil {
			return err
		}
		if serialized == nil {
			sb.WriteString("null")
			continue
		}
		text := schema.CellAsString(serialized)
		switch field.Kind {
		case schema.KindBoolean, schema.KindNumber:
			sb.WriteString(text)
		default:
			sb.WriteString(jsonString(text))
		}
	}

	sb.WriteByte('}')
	return nil
}

func jsonString(s string) string {
	encoded, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(encoded)
}
