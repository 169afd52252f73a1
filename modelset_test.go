package restdb

import (
	"context"
	"strings"
	"testing"

	"github.com/restdb/restdb/params"
	"github.com/restdb/restdb/schema"
)

func TestWriteJSONNullVsUndefined(t *testing.T) {
	api := newTestAPI(t, &fakeDB{}, testModel(schema.ModelOptions{}), Options{})
	data := []struct {
		row  schema.Row
		want string
	}{
		{
			row:  schema.Row{int64(1), "Ada", int64(36), true, schema.Undefined},
			want: `{"id":"1","name":"Ada","age":36,"active":true}`,
		},
		{
			row:  schema.Row{int64(2), "Bob", nil, false, schema.Undefined},
			want: `{"id":"2","name":"Bob","age":null,"active":false}`,
		},
		{
			row:  schema.Row{int64(3), "Eve", schema.Undefined, schema.Undefined, nil},
			want: `{"id":"3","name":"Eve","avatar":null}`,
		},
	}
	for idx, c := range data {
		ms := api.NewModelSet(NewSliceCursor(c.row), params.SQLParams{})
		got, err := ms.WriteString(context.Background(), ContentTypeJSON, nil)
		if err != nil {
			t.Fatalf("case #%v: %v", idx, err)
		}
		if got != "["+c.want+"]" {
			t.Errorf("case #%v: got %v want [%v]", idx, got, c.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	api := newTestAPI(t, &fakeDB{}, testModel(schema.ModelOptions{}), Options{})
	ms := api.NewModelSet(NewSliceCursor(
		schema.Row{int64(1), "Ada", int64(36), true, nil},
		schema.Row{int64(2), `say "hi"`, schema.Undefined, false, schema.Undefined},
	), params.SQLParams{})
	got, err := ms.WriteString(context.Background(), ContentTypeCSV, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := `"id","name","age","active","avatar"` + "\r\n" +
		`"1","Ada",36,true,null` + "\r\n" +
		`"2","say ""hi""",,false,`
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestWriteURLEncoded(t *testing.T) {
	api := newTestAPI(t, &fakeDB{}, testModel(schema.ModelOptions{}), Options{})
	ms := api.NewModelSet(NewSliceCursor(
		schema.Row{int64(1), "Ada Lovelace", nil, true, schema.Undefined},
		schema.Row{int64(2), "Bob", int64(9), false, schema.Undefined},
	), params.SQLParams{})
	res := NewResult()
	got, err := ms.WriteString(context.Background(), ContentTypeURLEncoded, res)
	if err != nil {
		t.Fatal(err)
	}
	want := "id=1&name=Ada+Lovelace&age=null&active=true\nid=2&name=Bob&age=9&active=false"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if len(res.Warnings()) != 1 {
		t.Errorf("expected one multi-record warning, got %v", res.Messages)
	}
}

func TestWriteFormDataSingleRow(t *testing.T) {
	api := newTestAPI(t, &fakeDB{}, testModel(schema.ModelOptions{}), Options{})
	ms := api.NewModelSet(NewSliceCursor(
		schema.Row{int64(1), "Ada", schema.Undefined, schema.Undefined, []byte("hi")},
		schema.Row{int64(2), "Bob", schema.Undefined, schema.Undefined, schema.Undefined},
	), params.SQLParams{})
	got, err := ms.WriteString(context.Background(), ContentTypeFormData, nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "Bob") {
		t.Errorf("form-data output must serialize only the first row, got %q", got)
	}
	for _, fragment := range []string{
		`Content-Disposition: form-data; name="id"` + "\r\n\r\n1\r\n",
		`Content-Disposition: form-data; name="name"` + "\r\n\r\nAda\r\n",
		`name="avatar"; filename="avatar"`,
		"Content-Transfer-Encoding: base64\r\n\r\naGk=\r\n",
		"--" + FormDataBoundary + "--\r\n",
	} {
		if !strings.Contains(got, fragment) {
			t.Errorf("output missing %q:\n%v", fragment, got)
		}
	}
}

// a model field named id must not be emitted next to the synthesized id
// key; its value already rides in the id
func TestWriteSynthesizedIDReplacesLikeNamedField(t *testing.T) {
	api := newTestAPI(t, &fakeDB{}, testModel(schema.ModelOptions{}), Options{})
	row := schema.Row{int64(1), "Ada", int64(36), true, schema.Undefined}

	ms := api.NewModelSet(NewSliceCursor(row), params.SQLParams{})
	got, err := ms.WriteString(context.Background(), ContentTypeJSON, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(got, `"id":`); n != 1 {
		t.Errorf("JSON output has %d id keys, want 1: %v", n, got)
	}

	ms = api.NewModelSet(NewSliceCursor(row), params.SQLParams{})
	got, err = ms.WriteString(context.Background(), ContentTypeCSV, nil)
	if err != nil {
		t.Fatal(err)
	}
	header := strings.Split(got, "\r\n")[0]
	if n := strings.Count(header, `"id"`); n != 1 {
		t.Errorf("CSV header has %d id columns, want 1: %v", n, header)
	}

	ms = api.NewModelSet(NewSliceCursor(row), params.SQLParams{})
	got, err = ms.WriteString(context.Background(), ContentTypeURLEncoded, NewResult())
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(got, "id="); n != 1 {
		t.Errorf("urlencoded output has %d id params, want 1: %v", n, got)
	}
}

// a cursor yielding fewer cells than the model has fields must error, not
// panic
func TestWriteShortRowFails(t *testing.T) {
	api := newTestAPI(t, &fakeDB{}, testModel(schema.ModelOptions{}), Options{})
	short := schema.Row{int64(1), "Ada"}
	for idx, contentType := range []ContentType{ContentTypeJSON, ContentTypeCSV, ContentTypeURLEncoded, ContentTypeFormData} {
		ms := api.NewModelSet(NewSliceCursor(short), params.SQLParams{})
		if _, err := ms.WriteString(context.Background(), contentType, NewResult()); err == nil {
			t.Errorf("case #%v: expected an error for the short row", idx)
		}
	}
}

func TestModelSetConsumedOnce(t *testing.T) {
	api := newTestAPI(t, &fakeDB{}, testModel(schema.ModelOptions{}), Options{})
	ms := api.NewModelSet(NewSliceCursor(), params.SQLParams{})
	if _, err := ms.WriteString(context.Background(), ContentTypeJSON, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := ms.WriteString(context.Background(), ContentTypeJSON, nil); err != ErrCursorConsumed {
		t.Errorf("got %v want ErrCursorConsumed", err)
	}
}

func TestRowIDHashingRoundTrip(t *testing.T) {
	api := newTestAPI(t, &fakeDB{}, testModel(schema.ModelOptions{UseHashids: true}),
		Options{Hasher: NewHashProvider("test salt", 12)})
	ms := api.NewModelSet(NewSliceCursor(), params.SQLParams{})
	id, err := ms.rowID(schema.Row{int64(42), "Ada", schema.Undefined, schema.Undefined, schema.Undefined})
	if err != nil {
		t.Fatal(err)
	}
	if id == "42" {
		t.Fatal("id was not hashed")
	}
	cells, err := api.parseID(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(cells) != 1 || cells[0] != int64(42) {
		t.Errorf("got %v want [42]", cells)
	}
}

func TestRowIDHashingSkippedUnderAggregate(t *testing.T) {
	api := newTestAPI(t, &fakeDB{}, testModel(schema.ModelOptions{UseHashids: true}),
		Options{Hasher: NewHashProvider("test salt", 12)})
	p, err := params.Parse("", "", "", "max(id)", "")
	if err != nil {
		t.Fatal(err)
	}
	ms := api.NewModelSet(NewSliceCursor(), p)
	id, err := ms.rowID(schema.Row{int64(42), schema.Undefined, schema.Undefined, schema.Undefined, schema.Undefined})
	if err != nil {
		t.Fatal(err)
	}
	if id != "42" {
		t.Errorf("aggregated key must not be hashed, got %q", id)
	}
}
