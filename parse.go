package restdb

import (
	"context"
	"fmt"
	"io"

	"github.com/restdb/restdb/schema"
)

// rowParser deserializes one request body into rows, collecting non-fatal
// parse warnings on the result.
type rowParser struct {
	api *API
	res *Result
}

// ParseRows deserializes a request body of the given content type into rows
// shaped by the API's model. Parse warnings (skipped rows, unmapped fields)
// are attached to res; only malformed values fail.
func (api *API) ParseRows(ctx context.Context, contentType ContentType, ctParams map[string]string, body io.Reader, res *Result) ([]schema.Row, error) {
	parser := &rowParser{api: api, res: res}
	switch contentType {
	case ContentTypeJSON:
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		return parser.parseJSON(data)
	case ContentTypeCSV:
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		return parser.parseCSV(data)
	case ContentTypeFormData:
		boundary := ctParams["boundary"]
		if boundary == "" {
			boundary = FormDataBoundary
		}
		return parser.parseFormData(body, boundary)
	case ContentTypeURLEncoded:
		data, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}
		return parser.parseURLEncoded(string(data))
	}
	return nil, fmt.Errorf("cannot parse rows from %q: %w", contentType, ErrUnsupportedContentType)
}

func (p *rowParser) warn(message string) {
	if p.res != nil {
		p.res.AddWarning(message)
	}
	p.api.log.Warn(context.Background(), message)
}

// deserializeInput converts one wire value into a cell, decoding hashed key
// values back to their numeric form first.
func (p *rowParser) deserializeInput(field schema.Field, value schema.Cell) (schema.Cell, error) {
	if str, ok := value.(string); ok && str != "" && p.api.hashedKeyField(field) {
		decoded, err := p.api.hasher.Decode(field.Name, str)
		if err != nil {
			return nil, err
		}
		return decoded, nil
	}
	return field.DeserializeCell(value)
}
