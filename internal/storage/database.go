package storage

import (
	"sort"

	engerr "github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/errors"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/pkg/types"
)

// Database is the registry of named tables. Names are case-sensitive
// and unique. A Database is constructed once by the process entry
// point and handed to the executor; there is no process-wide instance.
type Database struct {
	tables map[string]*Table
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{
		tables: make(map[string]*Table),
	}
}

// CreateTable creates a new table under the given name.
func (db *Database) CreateTable(name string, schema types.Schema) (*Table, error) {
	if _, exists := db.tables[name]; exists {
		return nil, engerr.NewDuplicateTableError(name)
	}
	t, err := NewTable(name, schema)
	if err != nil {
		return nil, err
	}
	db.tables[name] = t
	return t, nil
}

// GetTable returns the named table.
func (db *Database) GetTable(name string) (*Table, error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, engerr.NewUnknownTableError(name)
	}
	return t, nil
}

// DropTable removes the named table and everything it owns.
func (db *Database) DropTable(name string) error {
	if _, ok := db.tables[name]; !ok {
		return engerr.NewUnknownTableError(name)
	}
	delete(db.tables, name)
	return nil
}

// ListTables returns all table names in sorted order.
func (db *Database) ListTables() []string {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
