package restdb

import (
	"context"
	"testing"

	"github.com/restdb/restdb/dialect"
	"github.com/restdb/restdb/logger"
	"github.com/restdb/restdb/schema"
)

func testModel(opts schema.ModelOptions) *schema.Model {
	return schema.NewModel("users", []schema.Field{
		{Name: "id", Kind: schema.KindNumber, SQLType: "INTEGER",
			Params: schema.FieldParams{PrimaryKey: true, AutoIncrement: true, NotNull: true}},
		{Name: "name", Kind: schema.KindString, SQLType: "VARCHAR(80)", MaxLength: 80,
			Params: schema.FieldParams{NotNull: true}},
		{Name: "age", Kind: schema.KindNumber, SQLType: "INTEGER"},
		{Name: "active", Kind: schema.KindBoolean, SQLType: "BOOLEAN"},
		{Name: "avatar", Kind: schema.KindBlob, SQLType: "BLOB"},
	}, opts)
}

// fakeDB records the SQL it receives and serves canned rows.
type fakeDB struct {
	queries  []string
	execs    []string
	rows     []schema.Row
	affected int64
	err      error
}

func (f *fakeDB) Query(ctx context.Context, sql string) (Cursor, error) {
	f.queries = append(f.queries, sql)
	if f.err != nil {
		return nil, f.err
	}
	return NewSliceCursor(f.rows...), nil
}

func (f *fakeDB) Exec(ctx context.Context, sql string) (int64, error) {
	f.execs = append(f.execs, sql)
	return f.affected, f.err
}

func newTestAPI(t *testing.T, db *fakeDB, model *schema.Model, opts Options) *API {
	t.Helper()
	d, err := dialect.New("sqlite3")
	if err != nil {
		t.Fatalf("dialect: %v", err)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard
	}
	api, err := New(db, d, model, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return api
}
