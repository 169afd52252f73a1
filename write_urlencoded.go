package restdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/restdb/restdb/schema"
)

// writeURLEncoded emits one key=value&... line per row, newline joined. The
// format has no multi-record convention, so more than one row raises a
// warning rather than an error.
func (ms *ModelSet) writeURLEncoded(ctx context.Context, res *Result) (string, error) {
	var lines []string
	for {
		ok, err := ms.Cursor.Next(ctx)
		if err != nil {
			return "", err
		}
		if !ok {
			break
		}
		line, err := ms.writeURLEncodedRow(ms.Cursor.Row())
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	if len(lines) > 1 {
		ms.warn(res, "urlencoded output has no standard multi-record convention; writing multiple rows")
	}
	return strings.Join(lines, "\n"), nil
}

func (ms *ModelSet) writeURLEncodedRow(row schema.Row) (string, error) {
	id, err := ms.rowID(row)
	if err != nil {
		return "", err
	}
	parts := []string{"id=" + url.QueryEscape(id)}

	for i, field := range ms.Model.Fields {
		if field.Name == "id" || !ms.Params.Select.IsSelected(field) {
			continue
		}
		if i >= len(row) {
			return "", fmt.Errorf("row has %d cells, model has %d fields", len(row), len(ms.Model.Fields))
		}
		cell := row[i]
		if schema.IsUndefined(cell) {
			continue
		}
		if cell == nil {
			parts = append(parts, url.QueryEscape(field.Name)+"=null")
			continue
		}
		if ms.hashedField(field) {
			if value, ok := cellAsInt64(cell); ok {
				encoded, err := ms.api.hasher.Encode(field.Name, value)
				if err != nil {
					return "", err
				}
				parts = append(parts, url.QueryEscape(field.Name)+"="+url.QueryEscape(encoded))
				continue
			}
		}
		serialized, err := ms.serializeCell(field, cell)
		if err != nil {
			return "", err
		}
		parts = append(parts, url.QueryEscape(field.Name)+"="+url.QueryEscape(schema.CellAsString(serialized)))
	}
	return strings.Join(parts, "&"), nil
}
