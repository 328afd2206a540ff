package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "invoicegen.db")

	database, err := Open(path, "p@ss&word=1")
	require.NoError(t, err)
	assert.Equal(t, path, database.Path)

	require.NoError(t, database.RunMigrations())
	require.NoError(t, database.RunMigrations())

	var version int
	require.NoError(t, database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	_, err = database.Exec(`INSERT INTO kv_entries (scope, key, value) VALUES ('default', 'darkMode', 'true')`)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	reopened, err := Open(path, "p@ss&word=1")
	require.NoError(t, err)
	defer reopened.Close()

	var value string
	require.NoError(t, reopened.QueryRow(`SELECT value FROM kv_entries WHERE key = 'darkMode'`).Scan(&value))
	assert.Equal(t, "true", value)
}

func TestOpen_WrongKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoicegen.db")

	database, err := Open(path, "right")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations())
	require.NoError(t, database.Close())

	_, err = Open(path, "wrong")
	assert.ErrorIs(t, err, ErrWrongKey)
}
