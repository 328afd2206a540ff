package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/andy/invoicegen/internal/domain"
	"github.com/andy/invoicegen/internal/logger"
)

// SnapshotRepo stores the invoice snapshot and display preference as JSON
// values in a KVStore
type SnapshotRepo struct {
	kv  KVStore
	log *logger.Logger
}

// NewSnapshotRepo creates a SnapshotRepo; a nil logger discards diagnostics
func NewSnapshotRepo(kv KVStore, log *logger.Logger) *SnapshotRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &SnapshotRepo{kv: kv, log: log.With("component", "snapshot")}
}

// LoadInvoice reads the stored invoice. A missing or unreadable snapshot
// reports false; the caller falls back to a fresh invoice.
func (r *SnapshotRepo) LoadInvoice(ctx context.Context) (domain.Invoice, bool) {
	var invoice domain.Invoice
	if !r.load(ctx, KeyInvoice, &invoice) {
		return domain.Invoice{}, false
	}
	return invoice, true
}

// SaveInvoice overwrites the stored invoice
func (r *SnapshotRepo) SaveInvoice(ctx context.Context, invoice domain.Invoice) {
	r.save(ctx, KeyInvoice, invoice)
}

// LoadPreference reads the dark-mode flag
func (r *SnapshotRepo) LoadPreference(ctx context.Context) (bool, bool) {
	var dark bool
	if !r.load(ctx, KeyDarkMode, &dark) {
		return false, false
	}
	return dark, true
}

// SavePreference overwrites the dark-mode flag
func (r *SnapshotRepo) SavePreference(ctx context.Context, dark bool) {
	r.save(ctx, KeyDarkMode, dark)
}

// Clear removes the invoice snapshot
func (r *SnapshotRepo) Clear(ctx context.Context) {
	if err := r.kv.Delete(ctx, KeyInvoice); err != nil {
		r.log.Warn("failed to clear snapshot", "key", KeyInvoice, "error", err)
	}
}

func (r *SnapshotRepo) load(ctx context.Context, key string, dst any) bool {
	data, err := r.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			r.log.Warn("failed to read snapshot", "key", key, "error", err)
		}
		return false
	}

	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		r.log.Debug("empty snapshot ignored", "key", key)
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		r.log.Warn("corrupt snapshot ignored", "key", key, "error", err)
		return false
	}

	return true
}

func (r *SnapshotRepo) save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		r.log.Error("failed to encode snapshot", "key", key, "error", err)
		return
	}

	if err := r.kv.Set(ctx, key, data); err != nil {
		r.log.Warn("failed to write snapshot", "key", key, "error", err)
	}
}
