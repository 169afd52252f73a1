package restdb

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/restdb/restdb/schema"
)

// parseJSON accepts either a single object or an array of objects. Object
// keys are matched against model field names; unknown keys are skipped with
// a warning, and nested values are flattened one level to their JSON text.
func (p *rowParser) parseJSON(data []byte) ([]schema.Row, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	var objects []map[string]any
	switch value := parsed.(type) {
	case map[string]any:
		objects = append(objects, value)
	case []any:
		for _, item := range value {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("array element %T is not an object", item)
			}
			objects = append(objects, obj)
		}
	default:
		return nil, fmt.Errorf("top-level JSON value %T is not an object or array", parsed)
	}

	rows := make([]schema.Row, 0, len(objects))
	for idx, obj := range objects {
		row, err := p.rowFromJSONObject(obj)
		if err != nil {
			return nil, err
		}
		if row.IsAllUndefined() {
			p.warn(fmt.Sprintf("object #%d contains no known fields of %s, skipping", idx, p.api.model.Table))
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (p *rowParser) rowFromJSONObject(obj map[string]any) (schema.Row, error) {
	model := p.api.model
	row := schema.NewRow(len(model.Fields))
	known := make(map[string]bool, len(model.Fields))
	for i, field := range model.Fields {
		known[field.Name] = true
		raw, ok := obj[field.Name]
		if !ok {
			continue
		}
		cell, err := p.jsonValueAsCell(field, raw)
		if err != nil {
			return nil, err
		}
		row[i] = cell
	}
	for key := range obj {
		if !known[key] && key != "id" {
			p.warn(fmt.Sprintf("field %q does not exist in %s, skipping", key, model.Table))
		}
	}
	return row, nil
}

func (p *rowParser) jsonValueAsCell(field schema.Field, raw any) (schema.Cell, error) {
	switch value := raw.(type) {
	case nil:
		return field.DeserializeCell(nil)
	case string:
		return p.deserializeInput(field, value)
	case bool:
		return field.DeserializeCell(strconv.FormatBool(value))
	case float64:
		return field.DeserializeCell(strconv.FormatFloat(value, 'f', -1, 64))
	default:
		// nested arrays and objects flatten to their JSON text
		nested, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		return field.DeserializeCell(string(nested))
	}
}
