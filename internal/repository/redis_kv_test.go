package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only when INVOICEGEN_TEST_REDIS=host:port is set
func TestRedisKV(t *testing.T) {
	addr := os.Getenv("INVOICEGEN_TEST_REDIS")
	if addr == "" {
		t.Skip("INVOICEGEN_TEST_REDIS not set")
	}

	ctx := context.Background()
	kv, err := OpenRedisKV(ctx, addr, 0, "test-"+t.Name())
	require.NoError(t, err)
	defer kv.Close()

	other := NewRedisKV(kv.client, "other-"+t.Name())

	require.NoError(t, kv.Set(ctx, KeyDarkMode, []byte("true")))
	got, err := kv.Get(ctx, KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, "true", string(got))

	_, err = other.Get(ctx, KeyDarkMode)
	assert.ErrorIs(t, err, ErrKeyNotFound, "scopes do not leak")

	require.NoError(t, kv.Delete(ctx, KeyDarkMode))
	_, err = kv.Get(ctx, KeyDarkMode)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
