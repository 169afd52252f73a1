package schema_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/schema"
)

func testDialect(t *testing.T) dialect.Dialect {
	t.Helper()
	d, err := dialect.New("postgres")
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	d := testDialect(t)

	results := []struct {
		Field schema.Field
		Cell  schema.Cell
	}{
		{schema.Field{Name: "name", Kind: schema.KindString, SQLType: "varchar(80)"}, "Bob"},
		{schema.Field{Name: "name", Kind: schema.KindString, SQLType: "varchar(80)"}, nil},
		{schema.Field{Name: "active", Kind: schema.KindBoolean, SQLType: "boolean"}, true},
		{schema.Field{Name: "active", Kind: schema.KindBoolean, SQLType: "boolean"}, false},
		{schema.Field{Name: "age", Kind: schema.KindNumber, SQLType: "integer"}, int64(42)},
		{schema.Field{Name: "score", Kind: schema.KindNumber, SQLType: "float8"}, 1.5},
		{schema.Field{Name: "age", Kind: schema.KindNumber, SQLType: "integer"}, nil},
		{schema.Field{Name: "photo", Kind: schema.KindBlob, SQLType: "bytea"}, []byte{0x01, 0x02, 0xff}},
		{schema.Field{Name: "born", Kind: schema.KindDatetime, SQLType: "timestamp"}, time.Date(2023, 5, 1, 12, 30, 0, 0, time.UTC)},
		{schema.Field{Name: "born", Kind: schema.KindDatetime, SQLType: "timestamp"}, nil},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			serialized, err := result.Field.SerializeCell(d, result.Cell)
			if err != nil {
				t.Fatalf("serialize failed: %v", err)
			}
			got, err := result.Field.DeserializeCell(serialized)
			if err != nil {
				t.Fatalf("deserialize failed: %v", err)
			}
			if ts, ok := result.Cell.(time.Time); ok {
				if !got.(time.Time).Equal(ts) {
					t.Errorf("got %v, want %v", got, ts)
				}
				return
			}
			if !reflect.DeepEqual(got, result.Cell) {
				t.Errorf("got %v (%T), want %v (%T)", got, got, result.Cell, result.Cell)
			}
		})
	}
}

func TestBooleanCoercion(t *testing.T) {
	d := testDialect(t)
	field := schema.Field{Name: "active", Kind: schema.KindBoolean, SQLType: "boolean"}

	results := []struct {
		Raw    schema.Cell
		Result string
	}{
		{"0", "false"},
		{"", "false"},
		{"FALSE", "false"},
		{"000", "false"},
		{"0.0", "false"},
		{"1", "true"},
		{"true", "true"},
		{"anything", "true"},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			got, err := field.SerializeCell(d, result.Raw)
			if err != nil {
				t.Fatal(err)
			}
			if got != result.Result {
				t.Errorf("SerializeCell(%q) got %v, want %v", result.Raw, got, result.Result)
			}
		})
	}
}

func TestDeserializeNumberFailsClosed(t *testing.T) {
	field := schema.Field{Name: "age", Kind: schema.KindNumber, SQLType: "integer"}

	for idx, input := range []string{"abc", "12abc", "NaN", "1;DROP TABLE users"} {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			_, err := field.DeserializeCell(input)
			if !errors.Is(err, schema.ErrInvalidValue) {
				t.Errorf("DeserializeCell(%q) err = %v, want ErrInvalidValue", input, err)
			}
		})
	}
}

func TestDeserializeNullAndUndefined(t *testing.T) {
	numField := schema.Field{Name: "age", Kind: schema.KindNumber, SQLType: "integer"}

	got, err := numField.DeserializeCell(schema.Undefined)
	if err != nil {
		t.Fatal(err)
	}
	if !schema.IsUndefined(got) {
		t.Errorf("undefined should stay undefined, got %v", got)
	}

	got, err = numField.DeserializeCell(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("null should stay null, got %v", got)
	}

	got, err = numField.DeserializeCell("")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("empty should become null, got %v", got)
	}

	boolField := schema.Field{Name: "active", Kind: schema.KindBoolean, SQLType: "boolean"}
	got, err = boolField.DeserializeCell(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != false {
		t.Errorf("null boolean should deserialize to false, got %v", got)
	}

	blobField := schema.Field{Name: "photo", Kind: schema.KindBlob, SQLType: "bytea"}
	got, err = blobField.DeserializeCell(nil)
	if err != nil {
		t.Fatal(err)
	}
	if data, ok := got.([]byte); !ok || len(data) != 0 {
		t.Errorf("null blob should deserialize to an empty byte slice, got %v", got)
	}
}

func TestSerializeDatetimeFromSQLString(t *testing.T) {
	d := testDialect(t)
	field := schema.Field{Name: "born", Kind: schema.KindDatetime, SQLType: "timestamp"}

	got, err := field.SerializeCell(d, "2023-05-01 12:30:00")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2023-05-01T12:30:00Z" {
		t.Errorf("got %v, want 2023-05-01T12:30:00Z", got)
	}

	if _, err := field.SerializeCell(d, "not a date"); err == nil {
		t.Error("expected error for unparsable date")
	}
}

func TestSerializeCellWithLocale(t *testing.T) {
	d := testDialect(t)
	ts := time.Date(2023, 5, 1, 14, 30, 5, 0, time.UTC)

	dateField := schema.Field{Name: "born", Kind: schema.KindDatetime, SQLType: "timestamp"}
	got, err := dateField.SerializeCellWithLocale(d, language.German, ts)
	if err != nil {
		t.Fatal(err)
	}
	if got != "01.05.2023, 14:30:05" {
		t.Errorf("got %v", got)
	}

	numField := schema.Field{Name: "amount", Kind: schema.KindNumber, SQLType: "bigint"}
	got, err = numField.SerializeCellWithLocale(d, language.AmericanEnglish, int64(1234567))
	if err != nil {
		t.Fatal(err)
	}
	if got != "1,234,567" {
		t.Errorf("got %v", got)
	}
}
