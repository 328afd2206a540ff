package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andy/invoicegen/internal/db"
)

// ScopeInfo describes one scope of the sqlite store
type ScopeInfo struct {
	Name      string
	UpdatedAt time.Time
}

// KVRepo is a SQLite implementation of KVStore
type KVRepo struct {
	db    *db.DB
	scope string
	now   func() time.Time
}

// NewKVRepo creates a KVRepo reading and writing rows of the given scope
func NewKVRepo(database *db.DB, scope string) *KVRepo {
	return &KVRepo{db: database, scope: scope, now: time.Now}
}

// Get returns the stored value for key
func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM kv_entries
		WHERE scope = ? AND key = ?
	`

	var value []byte
	err := r.db.QueryRowContext(ctx, query, r.scope, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}

// Set inserts or overwrites the value for key
func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (scope, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, r.scope, key, value, r.now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

// Delete removes key; deleting a missing key is not an error
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	query := `
		DELETE FROM kv_entries
		WHERE scope = ? AND key = ?
	`

	if _, err := r.db.ExecContext(ctx, query, r.scope, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

// Scopes lists every scope holding at least one entry, with the time of
// its latest write
func (r *KVRepo) Scopes(ctx context.Context) ([]ScopeInfo, error) {
	query := `
		SELECT scope, MAX(updated_at)
		FROM kv_entries
		GROUP BY scope
		ORDER BY scope
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scopes: %w", err)
	}
	defer rows.Close()

	scopes := make([]ScopeInfo, 0)
	for rows.Next() {
		var info ScopeInfo
		var updatedAt string
		if err := rows.Scan(&info.Name, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scope: %w", err)
		}
		// values from the column default use SQLite datetime format and stay zero
		info.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		scopes = append(scopes, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scopes: %w", err)
	}

	return scopes, nil
}
