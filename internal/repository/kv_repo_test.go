package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/invoicegen/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"), "test-key")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations())
	require.NoError(t, database.RunMigrations(), "migrations are idempotent")
	t.Cleanup(func() { database.Close() })
	return database
}

func TestKVRepo(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	acme := NewKVRepo(database, "acme")
	globex := NewKVRepo(database, "globex")
	written := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	globex.now = func() time.Time { return written }

	_, err := acme.Get(ctx, KeyInvoice)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, acme.Set(ctx, KeyInvoice, []byte(`{"a":1}`)))
	require.NoError(t, acme.Set(ctx, KeyInvoice, []byte(`{"a":2}`)))
	require.NoError(t, globex.Set(ctx, KeyInvoice, []byte(`{"g":1}`)))

	got, err := acme.Get(ctx, KeyInvoice)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	got, err = globex.Get(ctx, KeyInvoice)
	require.NoError(t, err)
	assert.Equal(t, `{"g":1}`, string(got))

	scopes, err := acme.Scopes(ctx)
	require.NoError(t, err)
	require.Len(t, scopes, 2)
	assert.Equal(t, "acme", scopes[0].Name)
	assert.Equal(t, "globex", scopes[1].Name)
	assert.True(t, scopes[1].UpdatedAt.Equal(written))

	require.NoError(t, acme.Delete(ctx, KeyInvoice))
	_, err = acme.Get(ctx, KeyInvoice)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	_, err = globex.Get(ctx, KeyInvoice)
	assert.NoError(t, err)
}

func TestKVRepo_BackingSnapshotRepo(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	want := sampleInvoice()
	NewSnapshotRepo(NewKVRepo(database, "default"), nil).SaveInvoice(ctx, want)

	got, ok := NewSnapshotRepo(NewKVRepo(database, "default"), nil).LoadInvoice(ctx)
	require.True(t, ok)
	assert.True(t, want.Equal(got))
}
