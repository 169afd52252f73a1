package params_test

import (
	"testing"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/schema"
)

func testModel(t *testing.T) (*schema.Model, dialect.Dialect) {
	t.Helper()
	d, err := dialect.New("postgres")
	if err != nil {
		t.Fatal(err)
	}
	model := schema.NewModel("users", []schema.Field{
		{Name: "id", Kind: schema.KindNumber, SQLType: "integer", Params: schema.FieldParams{PrimaryKey: true, AutoIncrement: true, NotNull: true}},
		{Name: "name", Kind: schema.KindString, SQLType: "varchar(80)", MaxLength: 80},
		{Name: "age", Kind: schema.KindNumber, SQLType: "integer"},
		{Name: "amount", Kind: schema.KindNumber, SQLType: "numeric(10,2)"},
		{Name: "active", Kind: schema.KindBoolean, SQLType: "boolean"},
	}, schema.ModelOptions{})
	return model, d
}
