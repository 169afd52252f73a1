package params_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/restdb/restdb/params"
	"github.com/restdb/restdb/schema"
)

func TestAggregateColumnProjection(t *testing.T) {
	model, d := testModel(t)

	agg, err := params.ParseAggregate("sum(amount)")
	if err != nil {
		t.Fatal(err)
	}
	sel, err := params.ParseSelect("")
	if err != nil {
		t.Fatal(err)
	}

	got, err := agg.PrintSQLColumnNames(model, d, sel)
	if err != nil {
		t.Fatal(err)
	}
	// one column per model field, in model order
	want := `"id","name","age",sum("amount") as "amount","active"`
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAggregatePlaceholderForUnselected(t *testing.T) {
	model, d := testModel(t)

	agg, err := params.ParseAggregate("sum(amount)")
	if err != nil {
		t.Fatal(err)
	}
	sel, err := params.ParseSelect("name")
	if err != nil {
		t.Fatal(err)
	}

	got, err := agg.PrintSQLColumnNames(model, d, sel)
	if err != nil {
		t.Fatal(err)
	}
	want := `"id","name",MIN('-') as "age",sum("amount") as "amount",MIN('-') as "active"`
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	groupBy, err := agg.PrintSQLGroupBy(model, d, sel)
	if err != nil {
		t.Fatal(err)
	}
	if groupBy != `"id","name"` {
		t.Errorf("got %v", groupBy)
	}
}

func TestAggregateParse(t *testing.T) {
	results := []struct {
		Input      string
		Aggregated []string
		Plain      []string
	}{
		{"count(id)", []string{"id"}, []string{"name"}},
		{"sum(amount),avg(age)", []string{"amount", "age"}, []string{"id"}},
		{"MAX(age)", []string{"age"}, nil},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			agg, err := params.ParseAggregate(result.Input)
			if err != nil {
				t.Fatal(err)
			}
			for _, name := range result.Aggregated {
				if !agg.IsAggregated(name) {
					t.Errorf("%q should be aggregated", name)
				}
			}
			for _, name := range result.Plain {
				if agg.IsAggregated(name) {
					t.Errorf("%q should not be aggregated", name)
				}
			}
		})
	}
}

func TestAggregateFailsClosed(t *testing.T) {
	for idx, input := range []string{"median(age)", "sum(age", "sum", "sum(age);--"} {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			if _, err := params.ParseAggregate(input); !errors.Is(err, params.ErrSyntax) {
				t.Errorf("ParseAggregate(%q) err = %v, want ErrSyntax", input, err)
			}
		})
	}

	model, d := testModel(t)
	agg, err := params.ParseAggregate("sum(nosuch)")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := agg.PrintSQLColumnNames(model, d, params.Select{}); !errors.Is(err, schema.ErrInvalidField) {
		t.Errorf("err = %v, want ErrInvalidField", err)
	}
}
