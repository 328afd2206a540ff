package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/invoicegen/internal/config"
	"github.com/andy/invoicegen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = config.DriverMemory
	cfg.Database.Path = filepath.Join(dir, "invoicegen.db")
	cfg.Export.OutputDir = filepath.Join(dir, "invoices")
	cfg.Log.Path = filepath.Join(dir, "invoicegen.log")
	return cfg
}

func TestNewWithConfig_MemoryDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Invoice.NumberPrefix = "ACME"

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	inv := a.Builder.Current()
	assert.True(t, strings.HasPrefix(inv.Details.Number, "ACME-"))
	require.Len(t, inv.Items, 1)
	assert.Equal(t, cfg.Export.OutputDir, a.Exporter.OutputDir)

	_, err = a.Scopes(context.Background())
	assert.Error(t, err)
}

func TestNewWithConfig_RedisUnavailableFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = config.DriverRedis
	cfg.Storage.RedisAddr = "127.0.0.1:1"

	a, err := NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	ctx := context.Background()
	a.Builder.UpdateFreelancerField(ctx, domain.FreelancerName, "Jane")
	assert.Equal(t, "Jane", a.Builder.Current().Freelancer.Name)
}

func TestNewWithConfig_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Driver = "etcd"

	_, err := NewWithConfig(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestNew_ScopeOverride(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.Save(path))

	a, err := New(context.Background(), Options{ConfigPath: path, Scope: "acme"})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "acme", a.Config.Storage.Scope)
	assert.Equal(t, path, a.ConfigPath)
}
