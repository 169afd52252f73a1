package restdb

import (
	"fmt"

	"github.com/restdb/restdb/schema"
)

// csvValue keeps track of whether a value was quoted: an unquoted empty
// value means the cell was never set, a quoted empty value is an empty
// string, and an unquoted null is SQL NULL.
type csvValue struct {
	text   string
	quoted bool
}

// parseCSV reads a header line naming the columns, then one row per record.
// Values are optionally double-quoted with "" escaping inside; records end
// at the first carriage return outside quotes.
func (p *rowParser) parseCSV(data []byte) ([]schema.Row, error) {
	model := p.api.model
	pos := 0
	header, pos := scanCSVRecord(data, pos)
	if len(header) == 0 {
		return nil, fmt.Errorf("csv data has no header line")
	}
	mapping := make([]int, len(header))
	for col, value := range header {
		mapping[col] = -1
		// the leading id column is synthesized by the writer, not a field
		if col == 0 && value.text == "id" {
			continue
		}
		if _, idx, err := model.FieldByName(value.text); err == nil {
			mapping[col] = idx
		} else {
			p.warn(fmt.Sprintf("column %q does not exist in %s, skipping", value.text, model.Table))
		}
	}

	var rows []schema.Row
	for pos < len(data) {
		values, next := scanCSVRecord(data, pos)
		pos = next
		if len(values) == 0 || (len(values) == 1 && !values[0].quoted && values[0].text == "") {
			continue
		}
		row := schema.NewRow(len(model.Fields))
		for col, value := range values {
			if col >= len(mapping) {
				p.warn(fmt.Sprintf("record has %d values but the header names %d columns", len(values), len(header)))
				break
			}
			idx := mapping[col]
			if idx < 0 {
				continue
			}
			cell, err := p.csvValueAsCell(model.Fields[idx], value)
			if err != nil {
				return nil, err
			}
			row[idx] = cell
		}
		if row.IsAllUndefined() {
			p.warn(fmt.Sprintf("record contains no known fields of %s, skipping", model.Table))
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (p *rowParser) csvValueAsCell(field schema.Field, value csvValue) (schema.Cell, error) {
	if !value.quoted {
		switch value.text {
		case "":
			return schema.Undefined, nil
		case "null":
			return field.DeserializeCell(nil)
		}
	}
	return p.deserializeInput(field, value.text)
}

// scanCSVRecord reads one record starting at pos and returns its values and
// the position after the record terminator.
func scanCSVRecord(data []byte, pos int) ([]csvValue, int) {
	var values []csvValue
	for pos <= len(data) {
		var value csvValue
		if pos < len(data) && data[pos] == '"' {
			value.quoted = true
			pos++
			start := pos
			var text []byte
			for pos < len(data) {
				if data[pos] == '"' {
					if pos+1 < len(data) && data[pos+1] == '"' {
						text = append(text, data[start:pos+1]...)
						pos += 2
						start = pos
						continue
					}
					break
				}
				pos++
			}
			text = append(text, data[start:pos]...)
			value.text = string(text)
			if pos < len(data) {
				pos++ // closing quote
			}
		} else {
			start := pos
			for pos < len(data) && data[pos] != ',' && data[pos] != '\r' && data[pos] != '\n' {
				pos++
			}
			value.text = string(data[start:pos])
		}
		values = append(values, value)
		if pos >= len(data) {
			return values, pos
		}
		switch data[pos] {
		case ',':
			pos++
		case '\r':
			pos++
			if pos < len(data) && data[pos] == '\n' {
				pos++
			}
			return values, pos
		case '\n':
			return values, pos + 1
		default:
			// stray byte after a closing quote, skip to the next separator
			for pos < len(data) && data[pos] != ',' && data[pos] != '\r' && data[pos] != '\n' {
				pos++
			}
		}
	}
	return values, pos
}
