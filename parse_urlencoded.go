package restdb

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/restdb/restdb/schema"
)

// parseURLEncoded reads one key=value&key=value line per row, newline
// separated. The bare word null decodes to SQL NULL, matching the writer.
func (p *rowParser) parseURLEncoded(body string) ([]schema.Row, error) {
	model := p.api.model
	var rows []schema.Row
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		row := schema.NewRow(len(model.Fields))
		for _, pair := range strings.Split(line, "&") {
			key, rawValue, _ := strings.Cut(pair, "=")
			key, err := url.QueryUnescape(key)
			if err != nil {
				return nil, fmt.Errorf("undecodable key %q: %w", pair, err)
			}
			if key == "" {
				continue
			}
			field, idx, err := model.FieldByName(key)
			if err != nil {
				// the id key is synthesized output, not worth a warning
				if key != "id" {
					p.warn(fmt.Sprintf("field %q does not exist in %s, skipping", key, model.Table))
				}
				continue
			}
			value, err := url.QueryUnescape(rawValue)
			if err != nil {
				return nil, fmt.Errorf("field %q: undecodable value: %w", key, err)
			}
			cell, err := p.urlValueAsCell(field, value)
			if err != nil {
				return nil, err
			}
			row[idx] = cell
		}
		if row.IsAllUndefined() {
			p.warn(fmt.Sprintf("line contains no known fields of %s, skipping", model.Table))
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (p *rowParser) urlValueAsCell(field schema.Field, value string) (schema.Cell, error) {
	if value == "null" {
		return field.DeserializeCell(nil)
	}
	return p.deserializeInput(field, value)
}
