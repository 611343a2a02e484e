// Package repository provides the SQLite-backed persistence layer.
package repository

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
)

// DBFileName is the single database file kept under the data path.
const DBFileName = "db.sqlite3"

// Open opens (creating if necessary) the embedded database under dataPath
// and bootstraps the schema. Every pooled connection runs with foreign-key
// enforcement and WAL journaling.
func Open(dataPath string, maxConns int, busyTimeout time.Duration) (*sqlx.DB, error) {
	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create data path: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?%s",
		filepath.Join(dataPath, DBFileName),
		url.Values{
			"_foreign_keys": {"on"},
			"_journal_mode": {"WAL"},
			"_synchronous":  {"NORMAL"},
			"_busy_timeout": {fmt.Sprintf("%d", busyTimeout.Milliseconds())},
		}.Encode(),
	)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// createSchema creates the tables and indexes if they don't exist.
func createSchema(db *sqlx.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			role TEXT NOT NULL,
			email TEXT NOT NULL,
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			deleted_at TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users (username);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email);

		CREATE TABLE IF NOT EXISTS tokens (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			token TEXT NOT NULL,
			valid_until TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			deleted_at TIMESTAMP,
			user_id TEXT NOT NULL REFERENCES users (id)
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tokens_token ON tokens (token);

		CREATE TABLE IF NOT EXISTS languages (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			parent_id TEXT REFERENCES languages (id),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_languages_code ON languages (code);

		CREATE TABLE IF NOT EXISTS keys (
			id TEXT PRIMARY KEY,
			key TEXT NOT NULL,
			description TEXT,
			creator_id TEXT NOT NULL REFERENCES users (id),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			deleted_at TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_keys_key_live
			ON keys (key) WHERE deleted_at IS NULL;

		CREATE TABLE IF NOT EXISTS translations (
			id TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			translation TEXT NOT NULL,
			comment TEXT,
			language_id TEXT NOT NULL REFERENCES languages (id),
			key_id TEXT NOT NULL REFERENCES keys (id),
			creator_id TEXT NOT NULL REFERENCES users (id),
			approver_id TEXT NOT NULL REFERENCES users (id),
			created_at TIMESTAMP NOT NULL,
			deleted_at TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_translations_pair_version
			ON translations (key_id, language_id, version);
		CREATE INDEX IF NOT EXISTS idx_translations_language
			ON translations (language_id);

		CREATE TABLE IF NOT EXISTS translation_requests (
			id TEXT PRIMARY KEY,
			translation TEXT NOT NULL,
			comment TEXT,
			language_id TEXT NOT NULL REFERENCES languages (id),
			key_id TEXT NOT NULL REFERENCES keys (id),
			creator_id TEXT NOT NULL REFERENCES users (id),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_translation_requests_pair
			ON translation_requests (key_id, language_id);
	`)
	return err
}
