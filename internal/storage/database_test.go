package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engerr "github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/errors"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/pkg/types"
)

func TestDatabase_CreateAndGet(t *testing.T) {
	db := NewDatabase()
	created, err := db.CreateTable("users", usersSchema())
	require.NoError(t, err)

	got, err := db.GetTable("users")
	require.NoError(t, err)
	assert.Same(t, created, got)
}

func TestDatabase_DuplicateTable(t *testing.T) {
	db := NewDatabase()
	_, err := db.CreateTable("users", usersSchema())
	require.NoError(t, err)

	_, err = db.CreateTable("users", usersSchema())
	require.Error(t, err)
	assert.Equal(t, engerr.CodeDuplicateTable, engerr.GetCode(err))
}

func TestDatabase_CreateRejectsBadSchema(t *testing.T) {
	db := NewDatabase()
	_, err := db.CreateTable("bad", types.Schema{Columns: []types.ColumnDef{
		{Name: "a", Type: types.TypeInt},
	}})
	require.Error(t, err)
	assert.Equal(t, engerr.CodeMissingPrimaryKey, engerr.GetCode(err))

	// A failed create must not register the name.
	_, err = db.GetTable("bad")
	assert.Equal(t, engerr.CodeUnknownTable, engerr.GetCode(err))
}

func TestDatabase_GetUnknownTable(t *testing.T) {
	db := NewDatabase()
	_, err := db.GetTable("nope")
	require.Error(t, err)
	assert.Equal(t, engerr.CodeUnknownTable, engerr.GetCode(err))
}

func TestDatabase_DropTable(t *testing.T) {
	db := NewDatabase()
	_, err := db.CreateTable("users", usersSchema())
	require.NoError(t, err)

	require.NoError(t, db.DropTable("users"))
	_, err = db.GetTable("users")
	assert.Equal(t, engerr.CodeUnknownTable, engerr.GetCode(err))

	err = db.DropTable("users")
	assert.Equal(t, engerr.CodeUnknownTable, engerr.GetCode(err))
}

func TestDatabase_ListTablesSorted(t *testing.T) {
	db := NewDatabase()
	for _, name := range []string{"orders", "customers", "audit"} {
		_, err := db.CreateTable(name, usersSchema())
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"audit", "customers", "orders"}, db.ListTables())
}
