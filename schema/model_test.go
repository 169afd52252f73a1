package schema_test

import (
	"errors"
	"testing"

	"github.com/restdb/restdb/schema"
)

func testFields() []schema.Field {
	return []schema.Field{
		{Name: "id", Kind: schema.KindNumber, SQLType: "integer", Params: schema.FieldParams{PrimaryKey: true, AutoIncrement: true, NotNull: true}},
		{Name: "name", Kind: schema.KindString, SQLType: "varchar(80)", MaxLength: 80, Params: schema.FieldParams{NotNull: true}},
		{Name: "age", Kind: schema.KindNumber, SQLType: "integer"},
		{Name: "secret", Kind: schema.KindString, SQLType: "text"},
	}
}

func TestModelFieldLookup(t *testing.T) {
	model := schema.NewModel("users", testFields(), schema.ModelOptions{})

	field, idx, err := model.FieldByName("age")
	if err != nil {
		t.Fatal(err)
	}
	if field.Name != "age" || idx != 2 {
		t.Errorf("got %v at %v", field.Name, idx)
	}

	_, _, err = model.FieldByName("nosuch")
	if !errors.Is(err, schema.ErrInvalidField) {
		t.Errorf("err = %v, want ErrInvalidField", err)
	}
}

func TestModelFieldFiltering(t *testing.T) {
	model := schema.NewModel("users", testFields(), schema.ModelOptions{ExcludeFields: []string{"secret"}})
	if len(model.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(model.Fields))
	}

	// primary keys survive include lists that do not mention them
	model = schema.NewModel("users", testFields(), schema.ModelOptions{IncludeFields: []string{"name"}})
	if len(model.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(model.Fields))
	}
	if model.Fields[0].Name != "id" || model.Fields[1].Name != "name" {
		t.Errorf("unexpected field order: %v, %v", model.Fields[0].Name, model.Fields[1].Name)
	}
}

func TestPrimaryKeyIndexes(t *testing.T) {
	model := schema.NewModel("users", testFields(), schema.ModelOptions{})
	indexes := model.PrimaryKeyIndexes()
	if len(indexes) != 1 || indexes[0] != 0 {
		t.Errorf("got %v, want [0]", indexes)
	}
}

func TestNamingStrategy(t *testing.T) {
	ns := schema.NamingStrategy{}
	if got := ns.TableName("UserAccount"); got != "user_accounts" {
		t.Errorf("got %v, want user_accounts", got)
	}

	ns = schema.NamingStrategy{TablePrefix: "api_", SingularTable: true}
	if got := ns.TableName("Order"); got != "api_order" {
		t.Errorf("got %v, want api_order", got)
	}
}
