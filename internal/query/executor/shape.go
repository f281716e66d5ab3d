package executor

import (
	"fmt"
	"strings"

	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/query/parser"
)

// shapeOf normalizes a statement for statistics aggregation: literal
// values become ? placeholders so executions of the same statement
// shape share one fingerprint.
func shapeOf(stmt parser.Statement) string {
	switch s := stmt.(type) {
	case *parser.CreateTableStatement:
		return s.String()
	case *parser.InsertStatement:
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(s.Values)), ", ")
		return fmt.Sprintf("INSERT INTO %s VALUES (%s)", s.Table, placeholders)
	case *parser.SelectStatement:
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
			fmt.Fprintf(&sb, " WHERE %s = ?", s.Where.Column)
		}
		return sb.String()
	case *parser.UpdateStatement:
		assigns := make([]string, len(s.Assignments))
		for i, a := range s.Assignments {
			assigns[i] = a.Column + " = ?"
		}
		return fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
			s.Table, strings.Join(assigns, ", "), s.Where.Column)
	case *parser.DeleteStatement:
		return fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.Table, s.Where.Column)
	default:
		return stmt.String()
	}
}
