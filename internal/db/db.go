package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

// ErrWrongKey means the file exists but the key does not decrypt it
var ErrWrongKey = errors.New("database key does not match")

type DB struct {
	*sql.DB
	Path string
}

// Open opens the SQLCipher database at dbPath, creating it if needed.
func Open(dbPath, password string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_key=%s&_busy_timeout=5000", dbPath, url.QueryEscape(password))

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer, and the builder saves after every keystroke
	sqlDB.SetMaxOpenConns(1)

	// SQLCipher only notices a bad key on the first read of the schema
	var tables int
	if err := sqlDB.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&tables); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrWrongKey, dbPath, err)
	}

	if _, err := sqlDB.Exec("PRAGMA journal_mode = WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &DB{DB: sqlDB, Path: dbPath}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
