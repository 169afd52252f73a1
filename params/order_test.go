package params_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/restdb/restdb/params"
	"github.com/restdb/restdb/schema"
)

func TestOrderToSQL(t *testing.T) {
	model, d := testModel(t)

	results := []struct {
		Order  string
		Result string
	}{
		{"", ""},
		{"name", `"name" ASC`},
		{"name ASC", `"name" ASC`},
		{"name DESC", `"name" DESC`},
		{"name desc", `"name" DESC`},
		{"name+", `"name" ASC`},
		{"name-", `"name" DESC`},
		{"name,age DESC", `"name" ASC,"age" DESC`},
		{"age-,name+", `"age" DESC,"name" ASC`},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			order, err := params.ParseOrder(result.Order)
			if err != nil {
				t.Fatalf("ParseOrder(%q) failed: %v", result.Order, err)
			}
			got, err := order.ToSQL(model, d)
			if err != nil {
				t.Fatal(err)
			}
			if got != result.Result {
				t.Errorf("got %v, want %v", got, result.Result)
			}
		})
	}
}

func TestOrderFailsClosed(t *testing.T) {
	if _, err := params.ParseOrder("name SIDEWAYS"); !errors.Is(err, params.ErrSyntax) {
		t.Errorf("err = %v, want ErrSyntax", err)
	}
	if _, err := params.ParseOrder("name ASC extra"); !errors.Is(err, params.ErrSyntax) {
		t.Errorf("err = %v, want ErrSyntax", err)
	}

	model, d := testModel(t)
	order, err := params.ParseOrder("nosuch")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := order.ToSQL(model, d); !errors.Is(err, schema.ErrInvalidField) {
		t.Errorf("err = %v, want ErrInvalidField", err)
	}
}
