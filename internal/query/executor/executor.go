// Package executor interprets parsed statements against the database.
package executor

import (
	"fmt"
	"time"

	engerr "github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/errors"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/observability"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/query/parser"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/storage"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/pkg/types"
)

// Executor runs statements against one Database. It resolves every
// table and column reference before touching a row, so a statement
// naming something nonexistent never causes a partial mutation.
type Executor struct {
	db    *storage.Database
	stats *observability.QueryStats
}

// New creates an Executor over the given database. stats may be nil.
func New(db *storage.Database, stats *observability.QueryStats) *Executor {
	return &Executor{db: db, stats: stats}
}

// Execute interprets one statement and returns its result.
func (e *Executor) Execute(stmt parser.Statement) (*Result, error) {
	start := time.Now()
	res, err := e.exec(stmt)
	if e.stats != nil {
		e.stats.RecordStatement(shapeOf(stmt), time.Since(start), err != nil)
	}
	return res, err
}

func (e *Executor) exec(stmt parser.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStatement:
		return e.execCreateTable(s)
	case *parser.InsertStatement:
		return e.execInsert(s)
	case *parser.SelectStatement:
		if s.Join != nil {
			return e.execJoin(s)
		}
		return e.execSelect(s)
	case *parser.UpdateStatement:
		return e.execUpdate(s)
	case *parser.DeleteStatement:
		return e.execDelete(s)
	default:
		return nil, engerr.NewInternalError(fmt.Sprintf("unhandled statement type %T", stmt), nil)
	}
}

// execCreateTable maps the declared type names onto the column model
// and registers the table.
func (e *Executor) execCreateTable(stmt *parser.CreateTableStatement) (*Result, error) {
	schema := types.Schema{Columns: make([]types.ColumnDef, len(stmt.Columns))}
	for i, spec := range stmt.Columns {
		ct, err := types.ColumnTypeFromName(spec.TypeName)
		if err != nil {
			return nil, engerr.Wrap(engerr.ErrCategorySemantic, engerr.CodeUnknownType,
				fmt.Sprintf("column %q", spec.Name), err)
		}
		schema.Columns[i] = types.ColumnDef{
			Name:       spec.Name,
			Type:       ct,
			PrimaryKey: spec.PrimaryKey,
			Unique:     spec.Unique,
		}
	}

	if _, err := e.db.CreateTable(stmt.Table, schema); err != nil {
		return nil, err
	}
	return &Result{Message: fmt.Sprintf("Table %q created", stmt.Table)}, nil
}

func (e *Executor) execInsert(stmt *parser.InsertStatement) (*Result, error) {
	t, err := e.db.GetTable(stmt.Table)
	if err != nil {
		return nil, err
	}
	if err := t.Insert(stmt.Values); err != nil {
		return nil, err
	}
	return &Result{
		RowsAffected: 1,
		Message:      fmt.Sprintf("Inserted 1 row into %q", stmt.Table),
	}, nil
}

func (e *Executor) execSelect(stmt *parser.SelectStatement) (*Result, error) {
	t, err := e.db.GetTable(stmt.From)
	if err != nil {
		return nil, err
	}
	schema := t.Schema()

	cols := schema.ColumnNames()
	if len(stmt.Columns) > 0 {
		cols = make([]string, len(stmt.Columns))
		for i, ref := range stmt.Columns {
			if ref.Table != "" && ref.Table != stmt.From {
				return nil, engerr.NewUnknownTableError(ref.Table)
			}
			if _, ok := schema.Column(ref.Column); !ok {
				return nil, engerr.NewUnknownColumnError(stmt.From, ref.Column)
			}
			cols[i] = ref.Column
		}
	}

	pred, err := e.predicateFor(stmt.From, stmt.Where)
	if err != nil {
		return nil, err
	}

	rows, err := t.Select(pred)
	if err != nil {
		return nil, err
	}

	out := make([]types.Row, len(rows))
	for i, row := range rows {
		pr := make(types.Row, len(cols))
		for _, c := range cols {
			pr[c] = row[c]
		}
		out[i] = pr
	}
	return &Result{
		Columns: cols,
		Rows:    out,
		Message: fmt.Sprintf("Selected %d row(s)", len(out)),
	}, nil
}

// execJoin runs a nested-loop inner join: every row of the left table
// against every row of the right, emitting a combined row with
// table-qualified column names wherever the ON columns compare equal.
// Statement order fixes the loop order, which fixes output row order.
func (e *Executor) execJoin(stmt *parser.SelectStatement) (*Result, error) {
	// Without aliases both sides of a self-join would share one
	// qualifier, collapsing their columns in the combined row.
	if stmt.From == stmt.Join.Table {
		return nil, engerr.New(engerr.ErrCategorySemantic, engerr.CodeSelfJoin,
			fmt.Sprintf("table %q cannot be joined with itself", stmt.From))
	}

	left, err := e.db.GetTable(stmt.From)
	if err != nil {
		return nil, err
	}
	right, err := e.db.GetTable(stmt.Join.Table)
	if err != nil {
		return nil, err
	}

	leftCol, rightCol, err := resolveJoinColumns(stmt, left, right)
	if err != nil {
		return nil, err
	}

	// Output columns: either the explicit projection or all columns of
	// both tables, left first, qualified by table name.
	var outCols []string
	if len(stmt.Columns) == 0 {
		for _, c := range left.Schema().ColumnNames() {
			outCols = append(outCols, stmt.From+"."+c)
		}
		for _, c := range right.Schema().ColumnNames() {
			outCols = append(outCols, stmt.Join.Table+"."+c)
		}
	} else {
		outCols = make([]string, len(stmt.Columns))
		for i, ref := range stmt.Columns {
			name, _, err := resolveCombinedColumn(ref, stmt, left, right)
			if err != nil {
				return nil, err
			}
			outCols[i] = name
		}
	}

	// Resolve the WHERE column against the combined row before the scan.
	var whereName string
	var whereVal types.Value
	if stmt.Where != nil {
		name, def, err := resolveCombinedColumn(stmt.Where.Column, stmt, left, right)
		if err != nil {
			return nil, err
		}
		v, err := types.Coerce(stmt.Where.Value, def.Type)
		if err != nil {
			return nil, engerr.NewTypeMismatchError(name, err)
		}
		whereName, whereVal = name, v
		if e.stats != nil {
			e.stats.RecordPredicate(whereName, "=")
		}
	}

	leftRows, err := left.Select(nil)
	if err != nil {
		return nil, err
	}
	rightRows, err := right.Select(nil)
	if err != nil {
		return nil, err
	}

	var out []types.Row
	for _, lr := range leftRows {
		for _, rr := range rightRows {
			if !lr[leftCol].Equal(rr[rightCol]) {
				continue
			}
			merged := make(types.Row, len(lr)+len(rr))
			for c, v := range lr {
				merged[stmt.From+"."+c] = v
			}
			for c, v := range rr {
				merged[stmt.Join.Table+"."+c] = v
			}
			if stmt.Where != nil && !merged[whereName].Equal(whereVal) {
				continue
			}
			pr := make(types.Row, len(outCols))
			for _, c := range outCols {
				pr[c] = merged[c]
			}
			out = append(out, pr)
		}
	}

	return &Result{
		Columns: outCols,
		Rows:    out,
		Message: fmt.Sprintf("Selected %d row(s) from join", len(out)),
	}, nil
}

func (e *Executor) execUpdate(stmt *parser.UpdateStatement) (*Result, error) {
	t, err := e.db.GetTable(stmt.Table)
	if err != nil {
		return nil, err
	}
	pred, err := e.predicateFor(stmt.Table, stmt.Where)
	if err != nil {
		return nil, err
	}

	assignments := make([]storage.Assignment, len(stmt.Assignments))
	for i, a := range stmt.Assignments {
		assignments[i] = storage.Assignment{Column: a.Column, Value: a.Value}
	}

	n, err := t.Update(pred, assignments)
	if err != nil {
		return nil, err
	}
	return &Result{
		RowsAffected: n,
		Message:      fmt.Sprintf("Updated %d row(s)", n),
	}, nil
}

func (e *Executor) execDelete(stmt *parser.DeleteStatement) (*Result, error) {
	t, err := e.db.GetTable(stmt.Table)
	if err != nil {
		return nil, err
	}
	pred, err := e.predicateFor(stmt.Table, stmt.Where)
	if err != nil {
		return nil, err
	}

	n, err := t.Delete(pred)
	if err != nil {
		return nil, err
	}
	return &Result{
		RowsAffected: n,
		Message:      fmt.Sprintf("Deleted %d row(s)", n),
	}, nil
}

// predicateFor translates a WHERE clause into a storage predicate for
// a single-table statement. A qualifier naming a different table is a
// reference to something that does not exist in scope.
func (e *Executor) predicateFor(table string, where *parser.WhereClause) (*storage.Predicate, error) {
	if where == nil {
		return nil, nil
	}
	if where.Column.Table != "" && where.Column.Table != table {
		return nil, engerr.NewUnknownTableError(where.Column.Table)
	}
	if e.stats != nil {
		e.stats.RecordPredicate(table+"."+where.Column.Column, "=")
	}
	return &storage.Predicate{Column: where.Column.Column, Value: where.Value}, nil
}

// resolveJoinColumns resolves the ON condition to one column per side,
// regardless of which side of the equality names which table.
func resolveJoinColumns(stmt *parser.SelectStatement, left, right *storage.Table) (string, string, error) {
	refs := [2]parser.ColumnRef{stmt.Join.Left, stmt.Join.Right}
	var leftCol, rightCol string

	for _, ref := range refs {
		switch ref.Table {
		case stmt.From:
			if _, ok := left.Schema().Column(ref.Column); !ok {
				return "", "", engerr.NewUnknownColumnError(ref.Table, ref.Column)
			}
			if leftCol != "" {
				return "", "", engerr.New(engerr.ErrCategorySemantic, engerr.CodeAmbiguousColumn,
					"ON condition must reference both joined tables")
			}
			leftCol = ref.Column
		case stmt.Join.Table:
			if _, ok := right.Schema().Column(ref.Column); !ok {
				return "", "", engerr.NewUnknownColumnError(ref.Table, ref.Column)
			}
			if rightCol != "" {
				return "", "", engerr.New(engerr.ErrCategorySemantic, engerr.CodeAmbiguousColumn,
					"ON condition must reference both joined tables")
			}
			rightCol = ref.Column
		default:
			return "", "", engerr.NewUnknownTableError(ref.Table)
		}
	}
	return leftCol, rightCol, nil
}

// resolveCombinedColumn resolves a column reference against the
// combined row of a join, returning the qualified output name and the
// column definition. A bare reference must be unambiguous between the
// two tables.
func resolveCombinedColumn(ref parser.ColumnRef, stmt *parser.SelectStatement, left, right *storage.Table) (string, types.ColumnDef, error) {
	if ref.Table != "" {
		switch ref.Table {
		case stmt.From:
			if def, ok := left.Schema().Column(ref.Column); ok {
				return ref.Table + "." + ref.Column, def, nil
			}
		case stmt.Join.Table:
			if def, ok := right.Schema().Column(ref.Column); ok {
				return ref.Table + "." + ref.Column, def, nil
			}
		default:
			return "", types.ColumnDef{}, engerr.NewUnknownTableError(ref.Table)
		}
		return "", types.ColumnDef{}, engerr.NewUnknownColumnError(ref.Table, ref.Column)
	}

	leftDef, inLeft := left.Schema().Column(ref.Column)
	rightDef, inRight := right.Schema().Column(ref.Column)
	switch {
	case inLeft && inRight:
		return "", types.ColumnDef{}, engerr.New(engerr.ErrCategorySemantic, engerr.CodeAmbiguousColumn,
			fmt.Sprintf("column %q exists in both joined tables", ref.Column))
	case inLeft:
		return stmt.From + "." + ref.Column, leftDef, nil
	case inRight:
		return stmt.Join.Table + "." + ref.Column, rightDef, nil
	default:
		return "", types.ColumnDef{}, engerr.New(engerr.ErrCategorySemantic, engerr.CodeUnknownColumn,
			fmt.Sprintf("column %q does not exist in the joined tables", ref.Column))
	}
}
