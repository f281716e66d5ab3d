package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/internal/config"
	"github.com/ChrispusGatia/simple-rdbms-pesapal2026/pkg/types"
)

func TestNew_Defaults(t *testing.T) {
	a, err := New(config.DefaultConfig())
	require.NoError(t, err)

	res, err := a.ExecuteSQL("CREATE TABLE users (id INT PRIMARY KEY)")
	require.NoError(t, err)
	assert.Contains(t, res.Message, "users")
	assert.Equal(t, []string{"users"}, a.Database().ListTables())
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HTTP.Addr = ""
	_, err := New(cfg)
	require.Error(t, err)
}

func TestNew_SeedFile(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.sql")
	data := `-- demo data
CREATE TABLE customers (id INT PRIMARY KEY, name TEXT)

INSERT INTO customers VALUES (1, 'Alice')
INSERT INTO customers VALUES (2, 'Bob')
`
	require.NoError(t, os.WriteFile(seed, []byte(data), 0o644))

	cfg := config.DefaultConfig()
	cfg.SeedFile = seed
	a, err := New(cfg)
	require.NoError(t, err)

	res, err := a.ExecuteSQL("SELECT * FROM customers")
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, types.NewText("Alice"), res.Rows[0]["name"])
}

func TestNew_SeedFileFailureAbortsStartup(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.sql")
	data := `CREATE TABLE t (id INT PRIMARY KEY)
INSERT INTO t VALUES (1)
INSERT INTO t VALUES (1)
`
	require.NoError(t, os.WriteFile(seed, []byte(data), 0o644))

	cfg := config.DefaultConfig()
	cfg.SeedFile = seed
	_, err := New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestExecuteSQL_ParseError(t *testing.T) {
	a, err := New(config.DefaultConfig())
	require.NoError(t, err)
	_, err = a.ExecuteSQL("nonsense")
	require.Error(t, err)
}

func TestNew_StatsDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Stats.Enabled = false
	a, err := New(cfg)
	require.NoError(t, err)

	// Statements still run without a stats collector.
	_, err = a.ExecuteSQL("CREATE TABLE t (id INT PRIMARY KEY)")
	require.NoError(t, err)
}
