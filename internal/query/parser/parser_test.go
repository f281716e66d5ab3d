package parser

import (
	"testing"

	engerr "github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/errors"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/pkg/types"
)

func mustParse(t *testing.T, input string) Statement {
	t.Helper()
	stmt, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return stmt
}

func TestParseCreateTable(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE users (id INT PRIMARY KEY, email TEXT UNIQUE, name TEXT, balance FLOAT)")
	create, ok := stmt.(*CreateTableStatement)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if create.Table != "users" {
		t.Errorf("table = %q", create.Table)
	}
	if len(create.Columns) != 4 {
		t.Fatalf("columns = %d", len(create.Columns))
	}

	id := create.Columns[0]
	if id.Name != "id" || id.TypeName != "INT" || !id.PrimaryKey || id.Unique {
		t.Errorf("id column = %+v", id)
	}
	email := create.Columns[1]
	if email.Name != "email" || !email.Unique || email.PrimaryKey {
		t.Errorf("email column = %+v", email)
	}
	if create.Columns[2].PrimaryKey || create.Columns[2].Unique {
		t.Errorf("name column = %+v", create.Columns[2])
	}
}

func TestParseCreateTable_ConstraintOrder(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE t (id INT UNIQUE PRIMARY KEY)")
	col := stmt.(*CreateTableStatement).Columns[0]
	if !col.PrimaryKey || !col.Unique {
		t.Errorf("constraints should parse in either order, got %+v", col)
	}
}

func TestParseCreateTable_TypeNameKeptVerbatim(t *testing.T) {
	stmt := mustParse(t, "CREATE TABLE t (id integer PRIMARY KEY)")
	col := stmt.(*CreateTableStatement).Columns[0]
	if col.TypeName != "integer" {
		t.Errorf("TypeName = %q, want the raw spelling", col.TypeName)
	}
}

func TestParseInsert(t *testing.T) {
	stmt := mustParse(t, "INSERT INTO users VALUES (1, 'Alice', -2.5, 'O''Brien')")
	ins, ok := stmt.(*InsertStatement)
	if !ok {
		t.Fatalf("got %T", stmt)
	}
	if ins.Table != "users" {
		t.Errorf("table = %q", ins.Table)
	}
	want := []types.Value{
		types.NewInt(1),
		types.NewText("Alice"),
		types.NewFloat(-2.5),
		types.NewText("O'Brien"),
	}
	if len(ins.Values) != len(want) {
		t.Fatalf("values = %v", ins.Values)
	}
	for i, v := range want {
		if ins.Values[i] != v {
			t.Errorf("value %d = %#v, want %#v", i, ins.Values[i], v)
		}
	}
}

func TestParseInsert_NegativeInt(t *testing.T) {
	stmt := mustParse(t, "INSERT INTO t VALUES (-7)")
	ins := stmt.(*InsertStatement)
	if ins.Values[0] != types.NewInt(-7) {
		t.Errorf("value = %#v", ins.Values[0])
	}
}

func TestParseSelect_Star(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM users")
	sel := stmt.(*SelectStatement)
	if len(sel.Columns) != 0 {
		t.Errorf("SELECT * should carry no explicit columns, got %v", sel.Columns)
	}
	if sel.From != "users" || sel.Join != nil || sel.Where != nil {
		t.Errorf("statement = %+v", sel)
	}
}

func TestParseSelect_ColumnsAndWhere(t *testing.T) {
	stmt := mustParse(t, "SELECT id, name FROM users WHERE name = 'Alice'")
	sel := stmt.(*SelectStatement)
	if len(sel.Columns) != 2 || sel.Columns[0].Column != "id" || sel.Columns[1].Column != "name" {
		t.Errorf("columns = %v", sel.Columns)
	}
	if sel.Where == nil || sel.Where.Column.Column != "name" || sel.Where.Value != types.NewText("Alice") {
		t.Errorf("where = %+v", sel.Where)
	}
}

func TestParseSelect_Join(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM orders JOIN customers ON orders.customer_id = customers.id WHERE customers.name = 'Alice'")
	sel := stmt.(*SelectStatement)
	if sel.From != "orders" {
		t.Errorf("from = %q", sel.From)
	}
	if sel.Join == nil {
		t.Fatal("expected join clause")
	}
	if sel.Join.Table != "customers" {
		t.Errorf("join table = %q", sel.Join.Table)
	}
	if sel.Join.Left != (ColumnRef{Table: "orders", Column: "customer_id"}) {
		t.Errorf("join left = %+v", sel.Join.Left)
	}
	if sel.Join.Right != (ColumnRef{Table: "customers", Column: "id"}) {
		t.Errorf("join right = %+v", sel.Join.Right)
	}
	if sel.Where == nil || sel.Where.Column.Table != "customers" {
		t.Errorf("where = %+v", sel.Where)
	}
}

func TestParseSelect_InnerJoin(t *testing.T) {
	stmt := mustParse(t, "SELECT * FROM a INNER JOIN b ON a.x = b.y")
	if stmt.(*SelectStatement).Join == nil {
		t.Error("INNER JOIN should parse like JOIN")
	}
}

func TestParseSelect_QualifiedProjection(t *testing.T) {
	stmt := mustParse(t, "SELECT users.id FROM users")
	sel := stmt.(*SelectStatement)
	if sel.Columns[0] != (ColumnRef{Table: "users", Column: "id"}) {
		t.Errorf("column = %+v", sel.Columns[0])
	}
}

func TestParseUpdate(t *testing.T) {
	stmt := mustParse(t, "UPDATE users SET name = 'Bob', balance = 3.5 WHERE id = 1")
	upd := stmt.(*UpdateStatement)
	if upd.Table != "users" {
		t.Errorf("table = %q", upd.Table)
	}
	if len(upd.Assignments) != 2 {
		t.Fatalf("assignments = %v", upd.Assignments)
	}
	if upd.Assignments[0] != (Assignment{Column: "name", Value: types.NewText("Bob")}) {
		t.Errorf("assignment 0 = %+v", upd.Assignments[0])
	}
	if upd.Assignments[1] != (Assignment{Column: "balance", Value: types.NewFloat(3.5)}) {
		t.Errorf("assignment 1 = %+v", upd.Assignments[1])
	}
	if upd.Where == nil || upd.Where.Value != types.NewInt(1) {
		t.Errorf("where = %+v", upd.Where)
	}
}

func TestParseDelete(t *testing.T) {
	stmt := mustParse(t, "DELETE FROM users WHERE id = 9")
	del := stmt.(*DeleteStatement)
	if del.Table != "users" {
		t.Errorf("table = %q", del.Table)
	}
	if del.Where == nil || del.Where.Value != types.NewInt(9) {
		t.Errorf("where = %+v", del.Where)
	}
}

func TestParse_TrailingSemicolon(t *testing.T) {
	mustParse(t, "SELECT * FROM users;")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"unknown verb", "EXPLAIN SELECT * FROM t"},
		{"create without parens", "CREATE TABLE t id INT PRIMARY KEY"},
		{"create without type", "CREATE TABLE t (id)"},
		{"primary without key", "CREATE TABLE t (id INT PRIMARY)"},
		{"insert without values", "INSERT INTO t (1, 2)"},
		{"insert unclosed list", "INSERT INTO t VALUES (1, 2"},
		{"insert keyword as literal", "INSERT INTO t VALUES (SELECT)"},
		{"negative string literal", "INSERT INTO t VALUES (-'x')"},
		{"select without from", "SELECT *"},
		{"join without on", "SELECT * FROM a JOIN b"},
		{"join unqualified column", "SELECT * FROM a JOIN b ON x = b.y"},
		{"inner without join", "SELECT * FROM a INNER b ON a.x = b.y"},
		{"where without value", "SELECT * FROM t WHERE id ="},
		{"where without operator", "SELECT * FROM t WHERE id 5"},
		{"update without where", "UPDATE t SET a = 1"},
		{"delete without where", "DELETE FROM t"},
		{"delete without from", "DELETE t WHERE id = 1"},
		{"trailing garbage", "SELECT * FROM t; SELECT * FROM t"},
		{"unterminated string", "INSERT INTO t VALUES ('oops)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", tt.input)
			}
			if !engerr.IsSyntax(err) {
				t.Errorf("Parse(%q) error should be a syntax error, got %v", tt.input, err)
			}
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"CREATE TABLE users (id INT PRIMARY KEY, email TEXT UNIQUE, name TEXT)",
		"INSERT INTO users VALUES (1, 'a@x.com', 'Alice')",
		"SELECT * FROM users",
		"SELECT id, name FROM users WHERE id = 1",
		"SELECT * FROM orders JOIN customers ON orders.customer_id = customers.id",
		"UPDATE users SET name = 'Bob' WHERE id = 1",
		"DELETE FROM users WHERE id = 1",
	}

	for _, input := range inputs {
		first := mustParse(t, input)
		second := mustParse(t, first.String())
		if first.String() != second.String() {
			t.Errorf("round trip diverged:\n  in:  %q\n  1st: %q\n  2nd: %q", input, first.String(), second.String())
		}
	}
}
