// Package storage implements the in-memory row store: tables, schemas,
// and the hash indexes that enforce primary key and unique constraints.
package storage

import (
	"fmt"

	engerr "github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/errors"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/pkg/types"
)

// Predicate is a single-column equality condition, the only filter
// shape the engine supports. Value holds the raw statement literal;
// it is coerced against the column's declared type at evaluation time.
type Predicate struct {
	Column string
	Value  types.Value
}

// Assignment is one column = value pair from an UPDATE SET clause.
type Assignment struct {
	Column string
	Value  types.Value
}

// Table owns one schema and its row set. Rows live in insertion order.
// The primary key index and the per-column unique indexes map coerced
// values to row positions, never to row pointers, so deletions can
// relocate rows without dangling references.
//
// Invariant: after every operation the primary key index enumerates
// exactly the stored rows, and every unique index entry points at the
// row holding that value. VerifyIndexes re-checks this.
type Table struct {
	name   string
	schema types.Schema
	pkCol  string

	rows []types.Row

	pkIndex       map[types.Value]int
	uniqueIndexes map[string]map[types.Value]int
}

// NewTable creates a table for the given schema. The schema must
// declare exactly one primary key and no duplicate column names.
func NewTable(name string, schema types.Schema) (*Table, error) {
	if len(schema.Columns) == 0 {
		return nil, engerr.New(engerr.ErrCategorySemantic, engerr.CodeParseError,
			fmt.Sprintf("table %q has no columns", name))
	}

	seen := make(map[string]bool, len(schema.Columns))
	pkCount := 0
	for _, col := range schema.Columns {
		if seen[col.Name] {
			return nil, engerr.New(engerr.ErrCategorySemantic, engerr.CodeDuplicateColumnName,
				fmt.Sprintf("duplicate column %q in table %q", col.Name, name))
		}
		seen[col.Name] = true
		if col.PrimaryKey {
			pkCount++
		}
	}
	if pkCount > 1 {
		return nil, engerr.New(engerr.ErrCategorySemantic, engerr.CodeMultiplePrimaryKeys,
			fmt.Sprintf("table %q declares more than one PRIMARY KEY", name))
	}
	if pkCount == 0 {
		return nil, engerr.New(engerr.ErrCategorySemantic, engerr.CodeMissingPrimaryKey,
			fmt.Sprintf("table %q declares no PRIMARY KEY", name))
	}

	pkCol, _ := schema.PrimaryKey()
	t := &Table{
		name:          name,
		schema:        schema,
		pkCol:         pkCol,
		pkIndex:       make(map[types.Value]int),
		uniqueIndexes: make(map[string]map[types.Value]int),
	}
	for _, col := range schema.UniqueColumns() {
		t.uniqueIndexes[col] = make(map[types.Value]int)
	}
	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// Schema returns the table schema.
func (t *Table) Schema() types.Schema {
	return t.schema
}

// RowCount returns the number of stored rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// Insert validates a positional value list against the schema and
// appends it as a new row. The checks run in a fixed order: arity,
// per-column type coercion, primary key uniqueness, then unique
// columns in schema order. Nothing is stored until every check passes,
// so a rejected insert leaves no partial row or index entry behind.
func (t *Table) Insert(values []types.Value) error {
	if len(values) != len(t.schema.Columns) {
		return engerr.New(engerr.ErrCategorySemantic, engerr.CodeArityMismatch,
			fmt.Sprintf("table %q expects %d values, got %d", t.name, len(t.schema.Columns), len(values)))
	}

	row := make(types.Row, len(values))
	for i, col := range t.schema.Columns {
		v, err := types.Coerce(values[i], col.Type)
		if err != nil {
			return engerr.NewTypeMismatchError(col.Name, err)
		}
		row[col.Name] = v
	}

	pkVal := row[t.pkCol]
	if _, exists := t.pkIndex[pkVal]; exists {
		return t.duplicateError(t.pkCol, pkVal)
	}
	for _, col := range t.schema.UniqueColumns() {
		if _, exists := t.uniqueIndexes[col][row[col]]; exists {
			return t.duplicateError(col, row[col])
		}
	}

	pos := len(t.rows)
	t.rows = append(t.rows, row)
	t.pkIndex[pkVal] = pos
	for _, col := range t.schema.UniqueColumns() {
		t.uniqueIndexes[col][row[col]] = pos
	}
	return nil
}

// coercePredicate resolves the predicate column and coerces the literal
// to the column's declared type, so index lookups compare like with like.
func (t *Table) coercePredicate(pred *Predicate) (types.Value, error) {
	col, ok := t.schema.Column(pred.Column)
	if !ok {
		return types.Value{}, engerr.NewUnknownColumnError(t.name, pred.Column)
	}
	v, err := types.Coerce(pred.Value, col.Type)
	if err != nil {
		return types.Value{}, engerr.NewTypeMismatchError(col.Name, err)
	}
	return v, nil
}

// matchPositions returns the positions of rows matching the predicate,
// in insertion order. A nil predicate matches every row. The returned
// slice is a stable snapshot taken before any mutation.
func (t *Table) matchPositions(pred *Predicate) ([]int, error) {
	if pred == nil {
		all := make([]int, len(t.rows))
		for i := range t.rows {
			all[i] = i
		}
		return all, nil
	}

	v, err := t.coercePredicate(pred)
	if err != nil {
		return nil, err
	}

	// Point lookup through the hash index when filtering on the
	// primary key; every other column is a linear scan.
	if pred.Column == t.pkCol {
		if pos, ok := t.pkIndex[v]; ok {
			return []int{pos}, nil
		}
		return nil, nil
	}

	var matches []int
	for i, row := range t.rows {
		if row[pred.Column].Equal(v) {
			matches = append(matches, i)
		}
	}
	return matches, nil
}

// Select returns copies of the rows matching the predicate, in
// insertion order. Mutating the returned rows never touches stored data.
func (t *Table) Select(pred *Predicate) ([]types.Row, error) {
	positions, err := t.matchPositions(pred)
	if err != nil {
		return nil, err
	}
	out := make([]types.Row, 0, len(positions))
	for _, pos := range positions {
		out = append(out, t.rows[pos].Clone())
	}
	return out, nil
}

// Update applies the assignments to every row matching the predicate
// and returns the number of rows changed. Each assignment is
// re-validated as if it were a fresh value for the row: type coercion,
// then uniqueness against every other row (a row may keep its own
// current value). Validation runs for the whole match set before any
// row is touched, so a rejected update leaves the table unchanged.
func (t *Table) Update(pred *Predicate, assignments []Assignment) (int, error) {
	matches, err := t.matchPositions(pred)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, nil
	}

	coerced := make([]Assignment, len(assignments))
	for i, a := range assignments {
		col, ok := t.schema.Column(a.Column)
		if !ok {
			return 0, engerr.NewUnknownColumnError(t.name, a.Column)
		}
		v, err := types.Coerce(a.Value, col.Type)
		if err != nil {
			return 0, engerr.NewTypeMismatchError(col.Name, err)
		}
		coerced[i] = Assignment{Column: a.Column, Value: v}
	}

	for _, a := range coerced {
		col, _ := t.schema.Column(a.Column)
		if !col.PrimaryKey && !col.Unique {
			continue
		}
		// The same constant lands in every matched row, so assigning a
		// constrained column across two or more rows always collides.
		if len(matches) > 1 {
			return 0, t.duplicateError(a.Column, a.Value)
		}
		idx := t.indexFor(a.Column)
		if pos, exists := idx[a.Value]; exists && pos != matches[0] {
			return 0, t.duplicateError(a.Column, a.Value)
		}
	}

	for _, pos := range matches {
		row := t.rows[pos]
		for _, a := range coerced {
			if idx := t.indexFor(a.Column); idx != nil {
				delete(idx, row[a.Column])
				idx[a.Value] = pos
			}
			row[a.Column] = a.Value
		}
	}
	return len(matches), nil
}

// Delete removes every row matching the predicate and returns the
// number of rows removed. The match set is snapshotted before mutation,
// so deletion never skips or double-counts rows. Surviving rows keep
// their relative order; indexes are rebuilt to the new positions.
func (t *Table) Delete(pred *Predicate) (int, error) {
	matches, err := t.matchPositions(pred)
	if err != nil {
		return 0, err
	}
	if len(matches) == 0 {
		return 0, nil
	}

	doomed := make(map[int]bool, len(matches))
	for _, pos := range matches {
		doomed[pos] = true
	}

	kept := t.rows[:0]
	for i, row := range t.rows {
		if !doomed[i] {
			kept = append(kept, row)
		}
	}
	t.rows = kept
	t.rebuildIndexes()
	return len(matches), nil
}

// indexFor returns the hash index covering the column, or nil when the
// column is unconstrained.
func (t *Table) indexFor(column string) map[types.Value]int {
	if column == t.pkCol {
		return t.pkIndex
	}
	return t.uniqueIndexes[column]
}

func (t *Table) duplicateError(column string, v types.Value) error {
	details := map[string]interface{}{
		"table":  t.name,
		"column": column,
		"value":  v.Display(),
	}
	if column == t.pkCol {
		return engerr.NewConstraintError(engerr.CodeDuplicatePrimaryKey,
			fmt.Sprintf("primary key %s already exists in table %q", v, t.name)).WithDetails(details)
	}
	return engerr.NewConstraintError(engerr.CodeDuplicateUniqueValue,
		fmt.Sprintf("unique column %q already contains %s", column, v)).WithDetails(details)
}

// rebuildIndexes recomputes every index from the row sequence. Called
// after deletions shift row positions.
func (t *Table) rebuildIndexes() {
	t.pkIndex = make(map[types.Value]int, len(t.rows))
	for col := range t.uniqueIndexes {
		t.uniqueIndexes[col] = make(map[types.Value]int, len(t.rows))
	}
	for i, row := range t.rows {
		t.pkIndex[row[t.pkCol]] = i
		for col := range t.uniqueIndexes {
			t.uniqueIndexes[col][row[col]] = i
		}
	}
}

// VerifyIndexes checks that index contents and row contents are
// mutually consistent: the primary key index enumerates exactly the
// stored rows, and every unique index entry points at the row holding
// that value. Returns nil when the invariant holds.
func (t *Table) VerifyIndexes() error {
	if len(t.pkIndex) != len(t.rows) {
		return engerr.NewInternalError(
			fmt.Sprintf("table %q: pk index has %d entries for %d rows", t.name, len(t.pkIndex), len(t.rows)), nil)
	}
	for i, row := range t.rows {
		pos, ok := t.pkIndex[row[t.pkCol]]
		if !ok || pos != i {
			return engerr.NewInternalError(
				fmt.Sprintf("table %q: pk index entry for %s is stale", t.name, row[t.pkCol]), nil)
		}
	}
	for col, idx := range t.uniqueIndexes {
		if len(idx) != len(t.rows) {
			return engerr.NewInternalError(
				fmt.Sprintf("table %q: unique index on %q has %d entries for %d rows", t.name, col, len(idx), len(t.rows)), nil)
		}
		for i, row := range t.rows {
			pos, ok := idx[row[col]]
			if !ok || pos != i {
				return engerr.NewInternalError(
					fmt.Sprintf("table %q: unique index on %q is stale for %s", t.name, col, row[col]), nil)
			}
		}
	}
	return nil
}
