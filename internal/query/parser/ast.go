package parser

import (
	"fmt"
	"strings"

	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/pkg/types"
)

// Statement represents one parsed SQL statement. It is a transient
// value, alive for a single parse/execute cycle.
type Statement interface {
	statementNode()
	String() string
}

// ColumnRef references a column, optionally qualified by table name.
type ColumnRef struct {
	Table  string
	Column string
}

// String returns the SQL representation of the column reference.
func (c ColumnRef) String() string {
	if c.Table != "" {
		return fmt.Sprintf("%s.%s", c.Table, c.Column)
	}
	return c.Column
}

// WhereClause is the single equality condition the grammar allows.
type WhereClause struct {
	Column ColumnRef
	Value  types.Value
}

// String returns the SQL representation of the WHERE clause.
func (w *WhereClause) String() string {
	return fmt.Sprintf("WHERE %s = %s", w.Column, w.Value)
}

// ColumnSpec is one column definition inside CREATE TABLE. TypeName is
// kept as written; resolving it against the type vocabulary is the
// executor's job, so the parser stays a pure grammar component.
type ColumnSpec struct {
	Name       string
	TypeName   string
	PrimaryKey bool
	Unique     bool
}

// String returns the SQL representation of the column definition.
func (c ColumnSpec) String() string {
	var sb strings.Builder
	sb.WriteString(c.Name)
	sb.WriteString(" ")
	sb.WriteString(strings.ToUpper(c.TypeName))
	if c.PrimaryKey {
		sb.WriteString(" PRIMARY KEY")
	}
	if c.Unique {
		sb.WriteString(" UNIQUE")
	}
	return sb.String()
}

// CreateTableStatement represents CREATE TABLE.
type CreateTableStatement struct {
	Table   string
	Columns []ColumnSpec
}

func (s *CreateTableStatement) statementNode() {}

// String returns the SQL representation of the statement.
func (s *CreateTableStatement) String() string {
	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c.String()
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", s.Table, strings.Join(cols, ", "))
}

// InsertStatement represents INSERT INTO ... VALUES.
type InsertStatement struct {
	Table  string
	Values []types.Value
}

func (s *InsertStatement) statementNode() {}

// String returns the SQL representation of the statement.
func (s *InsertStatement) String() string {
	vals := make([]string, len(s.Values))
	for i, v := range s.Values {
		vals[i] = v.String()
	}
	return fmt.Sprintf("INSERT INTO %s VALUES (%s)", s.Table, strings.Join(vals, ", "))
}

// JoinClause is the single ON equality between two tables.
type JoinClause struct {
	Table string // right-hand table
	Left  ColumnRef
	Right ColumnRef
}

// String returns the SQL representation of the JOIN clause.
func (j *JoinClause) String() string {
	return fmt.Sprintf("JOIN %s ON %s = %s", j.Table, j.Left, j.Right)
}

// SelectStatement represents SELECT, with an optional join and an
// optional WHERE filter. An empty Columns slice means SELECT *.
type SelectStatement struct {
	Columns []ColumnRef
	From    string
	Join    *JoinClause
	Where   *WhereClause
}

func (s *SelectStatement) statementNode() {}

// String returns the SQL representation of the statement.
func (s *SelectStatement) String() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(s.Columns) == 0 {
		sb.WriteString("*")
	} else {
		cols := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			cols[i] = c.String()
		}
		sb.WriteString(strings.Join(cols, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(s.From)
	if s.Join != nil {
		sb.WriteString(" ")
		sb.WriteString(s.Join.String())
	}
	if s.Where != nil {
		sb.WriteString(" ")
		sb.WriteString(s.Where.String())
	}
	return sb.String()
}

// Assignment is one column = value pair in an UPDATE SET clause.
type Assignment struct {
	Column string
	Value  types.Value
}

// String returns the SQL representation of the assignment.
func (a Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Column, a.Value)
}

// UpdateStatement represents UPDATE ... SET ... WHERE.
type UpdateStatement struct {
	Table       string
	Assignments []Assignment
	Where       *WhereClause
}

func (s *UpdateStatement) statementNode() {}

// String returns the SQL representation of the statement.
func (s *UpdateStatement) String() string {
	assigns := make([]string, len(s.Assignments))
	for i, a := range s.Assignments {
		assigns[i] = a.String()
	}
	return fmt.Sprintf("UPDATE %s SET %s %s", s.Table, strings.Join(assigns, ", "), s.Where)
}

// DeleteStatement represents DELETE FROM ... WHERE.
type DeleteStatement struct {
	Table string
	Where *WhereClause
}

func (s *DeleteStatement) statementNode() {}

// String returns the SQL representation of the statement.
func (s *DeleteStatement) String() string {
	return fmt.Sprintf("DELETE FROM %s %s", s.Table, s.Where)
}
