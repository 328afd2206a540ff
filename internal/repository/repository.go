package repository

import (
	"context"
	"errors"

	"github.com/andy/invoicegen/internal/domain"
)

// ErrKeyNotFound is returned by KVStore.Get when the key has no value
var ErrKeyNotFound = errors.New("key not found")

// Logical keys of the persisted state
const (
	KeyInvoice  = "invoiceData"
	KeyDarkMode = "darkMode"
)

// KVStore is a key-value store bound to one scope
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// SnapshotRepository persists the current invoice and the display preference.
// It is best-effort: nothing is returned to the caller on failure, the
// in-memory invoice stays authoritative.
type SnapshotRepository interface {
	// LoadInvoice returns false when no usable snapshot exists
	LoadInvoice(ctx context.Context) (domain.Invoice, bool)
	SaveInvoice(ctx context.Context, invoice domain.Invoice)
	LoadPreference(ctx context.Context) (dark bool, ok bool)
	SavePreference(ctx context.Context, dark bool)
	// Clear removes the invoice snapshot
	Clear(ctx context.Context)
}
