package restdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/restdb/restdb/schema"
)

// writeCSV emits a quoted header row ("id" plus the selected fields) and one
// data row per cursor row. Null cells become the bare token null, undefined
// cells stay empty, matching what the CSV row parser reads back.
func (ms *ModelSet) writeCSV(ctx context.Context) (string, error) {
	var sb strings.Builder

	sb.WriteString(csvQuote("id"))
	for _, field := range ms.Model.Fields {
		if field.Name == "id" || !ms.Params.Select.IsSelected(field) {
			continue
		}
		sb.WriteByte(',')
		sb.WriteString(csvQuote(field.Name))
	}

	for {
		ok, err := ms.Cursor.Next(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		sb.WriteString("\r\n")
		if err := ms.writeCSVRow(&sb, ms.Cursor.Row()); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

func (ms *ModelSet) writeCSVRow(sb *strings.Builder, row schema.Row) error {
	id, err := ms.rowID(row)
	if err != nil {
		return err
	}
	sb.WriteString(csvQuote(id))

	for i, field := range ms.Model.Fields {
		if field.Name == "id" || !ms.Params.Select.IsSelected(field) {
			continue
		}
		if i >= len(row) {
			return fmt.Errorf("row has %d cells, model has %d fields", len(row), len(ms.Model.Fields))
		}
		sb.WriteByte(',')
		cell := row[i]
		if schema.IsUndefined(cell) {
			continue
		}
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
				sb.WriteString(csvQuote(encoded))
				continue
			}
		}
		serialized, err := field.SerializeCell(ms.api.d, cell)
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
			sb.WriteString(csvQuote(text))
		}
	}
	return nil
}

func csvQuote(val string) string {
	return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
}
