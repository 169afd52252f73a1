package restdb

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/restdb/restdb/schema"
)

// parseFormData reads one multipart body into a single row. Plain parts
// carry text values, file parts carry blob contents either raw or base64
// encoded per their Content-Transfer-Encoding header.
func (p *rowParser) parseFormData(body io.Reader, boundary string) ([]schema.Row, error) {
	model := p.api.model
	reader := multipart.NewReader(body, boundary)
	row := schema.NewRow(len(model.Fields))
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		name := part.FormName()
		if name == "" {
			p.warn("multipart part without a form name, skipping")
			continue
		}
		field, idx, err := model.FieldByName(name)
		if err != nil {
			// the id param is synthesized output, not worth a warning
			if name != "id" {
				p.warn(fmt.Sprintf("field %q does not exist in %s, skipping", name, model.Table))
			}
			continue
		}
		if ct := part.Header.Get("Content-Type"); strings.HasPrefix(ct, "multipart/") {
			p.warn(fmt.Sprintf("nested multipart content in field %q is not supported, skipping", name))
			continue
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return nil, err
		}
		cell, err := p.formPartAsCell(field, part, data)
		if err != nil {
			return nil, err
		}
		row[idx] = cell
	}
	if row.IsAllUndefined() {
		p.warn(fmt.Sprintf("multipart body contains no known fields of %s, skipping", model.Table))
		return nil, nil
	}
	return []schema.Row{row}, nil
}

func (p *rowParser) formPartAsCell(field schema.Field, part *multipart.Part, data []byte) (schema.Cell, error) {
	encoding := part.Header.Get("Content-Transfer-Encoding")
	if strings.EqualFold(encoding, "base64") {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w: %w", field.Name, schema.ErrInvalidValue, err)
		}
		return field.DeserializeCell(decoded)
	}
	if part.FileName() != "" {
		// raw file contents
		return field.DeserializeCell(data)
	}
	text := string(data)
	if text == "null" {
		return field.DeserializeCell(nil)
	}
	return p.deserializeInput(field, text)
}
