package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "invoicegen.log")

	log, err := New("production", path)
	require.NoError(t, err)

	log.With("scope", "acme").Info("invoice exported", "number", "INV-1")
	log.Debug("dropped below info")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"invoice exported"`)
	assert.Contains(t, string(data), `"scope":"acme"`)
	assert.NotContains(t, string(data), "dropped below info")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("nothing happens", "key", "value")
	log.Sync()
}
