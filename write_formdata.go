package restdb

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/restdb/restdb/schema"
)

// FormDataBoundary delimits the blocks of multipart output.
const FormDataBoundary = "----restdbFormBoundary4975xm27"

// writeFormData serializes only the current single row; multipart output has
// no multi-record convention. Blob fields become base64 file blocks, all
// other fields parameter blocks.
func (ms *ModelSet) writeFormData(ctx context.Context) (string, error) {
	ok, err := ms.Cursor.Next(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	row := ms.Cursor.Row()

	var sb strings.Builder
	id, err := ms.rowID(row)
	if err != nil {
		return "", err
	}
	writeFormDataParam(&sb, "id", id)

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
			writeFormDataParam(&sb, field.Name, "null")
			continue
		}
		if field.Kind == schema.KindBlob {
			data, _ := cell.([]byte)
			writeFormDataFile(&sb, field.Name, data)
			continue
		}
		if ms.hashedField(field) {
			if value, ok := cellAsInt64(cell); ok {
				encoded, err := ms.api.hasher.Encode(field.Name, value)
				if err != nil {
					return "", err
				}
				writeFormDataParam(&sb, field.Name, encoded)
				continue
			}
		}
		serialized, err := ms.serializeCell(field, cell)
		if err != nil {
			return "", err
		}
		writeFormDataParam(&sb, field.Name, schema.CellAsString(serialized))
	}

	sb.WriteString("--" + FormDataBoundary + "--\r\n")
	return sb.String(), nil
}

func writeFormDataParam(sb *strings.Builder, name, value string) {
	sb.WriteString("--" + FormDataBoundary + "\r\n")
	sb.WriteString(`Content-Disposition: form-data; name="` + name + `"`)
	sb.WriteString("\r\n\r\n")
	sb.WriteString(value)
	sb.WriteString("\r\n")
}

func writeFormDataFile(sb *strings.Builder, name string, data []byte) {
	sb.WriteString("--" + FormDataBoundary + "\r\n")
	sb.WriteString(`Content-Disposition: form-data; name="` + name + `"; filename="` + name + `"`)
	sb.WriteString("\r\n")
	sb.WriteString("Content-Type: application/octet-stream\r\n")
	sb.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	sb.WriteString("\r\n")
}
