package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andy/invoicegen/internal/app"
	"github.com/andy/invoicegen/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Driver = config.DriverMemory
	cfg.Export.OutputDir = filepath.Join(dir, "invoices")
	cfg.Export.Scale = 1
	cfg.Log.Path = filepath.Join(dir, "invoicegen.log")

	a, err := app.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

// resetFlags puts every flag back to its default between runs of the
// package-level command tree
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, a *app.App, stdin string, args ...string) (string, error) {
	t.Helper()
	SetApp(a)
	t.Cleanup(func() { appInstance = nil })
	resetFlags(rootCmd)
	configPath, scope = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSetAndShow(t *testing.T) {
	a := newTestApp(t)

	_, err := run(t, a, "", "set", "freelancer", "name", "Jane", "Doe")
	require.NoError(t, err)
	_, err = run(t, a, "", "set", "client", "address", `1 Main St\nSpringfield`)
	require.NoError(t, err)
	_, err = run(t, a, "", "set", "invoice", "due_date", "2026-12-01")
	require.NoError(t, err)

	inv := a.Builder.Current()
	assert.Equal(t, "Jane Doe", inv.Freelancer.Name)
	assert.Equal(t, "1 Main St\nSpringfield", inv.Client.Address)
	assert.Equal(t, "2026-12-01", inv.Details.DueDate)

	out, err := run(t, a, "", "show", "--width", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "December 1, 2026")
}

func TestSet_UnknownField(t *testing.T) {
	a := newTestApp(t)
	_, err := run(t, a, "", "set", "client", "phone", "555")
	assert.ErrorContains(t, err, "unknown field")
}

func TestItemsAndTotal(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "", "items", "add", "--description", "Design", "--quantity", "3", "--rate", "50")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run(t, a, "", "total")
	require.NoError(t, err)
	assert.Equal(t, "$150.00\n", out)

	_, err = run(t, a, "", "items", "set", id, "rate", "10.005")
	require.NoError(t, err)
	out, err = run(t, a, "", "total", "--exact")
	require.NoError(t, err)
	assert.Equal(t, "30.015\n", out)

	out, err = run(t, a, "", "items", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Design")

	_, err = run(t, a, "", "items", "set", "missing", "rate", "1")
	assert.ErrorContains(t, err, "no item with id missing")

	_, err = run(t, a, "", "items", "remove", id)
	require.NoError(t, err)
	assert.Len(t, a.Builder.Current().Items, 1)

	only := a.Builder.Current().Items[0].ID
	_, err = run(t, a, "", "items", "remove", only)
	assert.ErrorContains(t, err, "cannot be removed")
}

func TestReset(t *testing.T) {
	a := newTestApp(t)
	_, err := run(t, a, "", "set", "freelancer", "name", "Jane")
	require.NoError(t, err)

	out, err := run(t, a, "n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Equal(t, "Jane", a.Builder.Current().Freelancer.Name)

	out, err = run(t, a, "", "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Invoice Cleared")
	assert.Empty(t, a.Builder.Current().Freelancer.Name)
}

func TestExport(t *testing.T) {
	a := newTestApp(t)
	dir := filepath.Join(t.TempDir(), "pdfs")

	out, err := run(t, a, "", "export", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "PDF Generated")

	path := filepath.Join(dir, a.Builder.Current().Details.Number+".pdf")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestCopyLink_NoLinkIsGuidance(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "", "copy-link")
	require.NoError(t, err)
	assert.Contains(t, out, "Please add a payment link first")
}

func TestTheme(t *testing.T) {
	a := newTestApp(t)

	out, err := run(t, a, "", "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, err = run(t, a, "", "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)
	assert.True(t, a.Builder.DarkMode())

	_, err = run(t, a, "", "theme", "sepia")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := run(t, nil, "", "--config", path, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	_, err = run(t, nil, "", "--config", path, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = run(t, nil, "", "--config", path, "config", "init")
	assert.ErrorContains(t, err, "already exists")
}

func TestScopes_RequiresSQLite(t *testing.T) {
	a := newTestApp(t)
	_, err := run(t, a, "", "scopes")
	assert.ErrorContains(t, err, "sqlite")
}
