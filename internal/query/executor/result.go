package executor

import "github.com/ChrispusGatia/simple-rdbms-pesapal2026/pkg/types"

// Result is the outcome of one executed statement: the ordered output
// columns, the output rows, and for mutating statements the affected
// row count. Rows are copies; mutating a Result never touches table
// storage.
type Result struct {
	Columns      []string
	Rows         []types.Row
	RowsAffected int
	Message      string
}

// ValueGrid returns the rows as a grid ordered by the result columns,
// for tabular rendering and JSON encoding.
func (r *Result) ValueGrid() [][]types.Value {
	grid := make([][]types.Value, len(r.Rows))
	for i, row := range r.Rows {
		cells := make([]types.Value, len(r.Columns))
		for j, col := range r.Columns {
			cells[j] = row[col]
		}
		grid[i] = cells
	}
	return grid
}
