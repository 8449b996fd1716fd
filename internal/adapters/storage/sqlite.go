package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface used by the SQLite provider.
// *sql.DB satisfies this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// InitDB initializes the key-value schema.
// PRE: db is a valid database connection
// POST: kv table exists, WAL mode enabled
func InitDB(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SQLiteProvider implements Provider over a single kv table.
type SQLiteProvider struct {
	db SQLDB
}

// NewSQLiteProvider creates a Provider backed by SQLite.
func NewSQLiteProvider(db SQLDB) *SQLiteProvider {
	return &SQLiteProvider{db: db}
}

// Get retrieves the value under key.
// PRE: key is non-empty
// POST: Returns (value, true) when present, ("", false) when absent
func (p *SQLiteProvider) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &IOError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Set writes the value under key, replacing any previous value.
// PRE: key is non-empty
// POST: Value is persisted
func (p *SQLiteProvider) Set(ctx context.Context, key, value string) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value",
		key, value)
	if err != nil {
		return &IOError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes the key.
// PRE: key is non-empty
// POST: Key is absent; deleting an absent key succeeds
func (p *SQLiteProvider) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	if err != nil {
		return &IOError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
