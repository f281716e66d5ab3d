package types

// ColumnDef defines a single column in a table schema.
type ColumnDef struct {
	// Name is the column name, unique within a table
	Name string `json:"name"`

	// Type is the declared column type
	Type ColumnType `json:"type"`

	// PrimaryKey marks the table's primary key column
	PrimaryKey bool `json:"primary_key"`

	// Unique marks a column with a UNIQUE constraint
	Unique bool `json:"unique"`
}

// Schema is the ordered sequence of column definitions for a table.
// Column order defines the default projection and the positional
// argument order of INSERT. Schemas are immutable after table creation.
type Schema struct {
	Columns []ColumnDef `json:"columns"`
}

// Column returns the definition of the named column.
func (s Schema) Column(name string) (ColumnDef, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnDef{}, false
}

// ColumnNames returns the column names in schema order.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// PrimaryKey returns the name of the primary key column.
func (s Schema) PrimaryKey() (string, bool) {
	for _, col := range s.Columns {
		if col.PrimaryKey {
			return col.Name, true
		}
	}
	return "", false
}

// UniqueColumns returns the names of UNIQUE-constrained columns in
// schema order, excluding the primary key.
func (s Schema) UniqueColumns() []string {
	var names []string
	for _, col := range s.Columns {
		if col.Unique && !col.PrimaryKey {
			names = append(names, col.Name)
		}
	}
	return names
}

// Row maps column names to typed values. A row belongs to exactly one
// table; result sets carry copies, never the stored row itself.
type Row map[string]Value

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	cp := make(Row, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}
