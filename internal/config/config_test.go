package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "default", cfg.Storage.Scope)
	assert.Equal(t, 30, cfg.Invoice.DefaultDueDays)
	assert.Equal(t, "INV", cfg.Invoice.NumberPrefix)
	assert.Equal(t, 210.0, cfg.Export.PageWidthMM)
	assert.Equal(t, 295.0, cfg.Export.PageHeightMM)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "invoice:\n  number_prefix: ACME\nstorage:\n  scope: acme-corp\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ACME", cfg.Invoice.NumberPrefix)
	assert.Equal(t, "acme-corp", cfg.Storage.Scope)
	assert.Equal(t, 30, cfg.Invoice.DefaultDueDays)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("invoice: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Driver = DriverRedis
	cfg.Storage.RedisDB = 3
	cfg.Export.Scale = 3
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Database.Path = filepath.Join(root, "db", "invoicegen.db")
	cfg.Export.OutputDir = filepath.Join(root, "out")

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, filepath.Join(root, "db"))
	assert.DirExists(t, filepath.Join(root, "out"))
}
