// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcript

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// historyKey is the fixed slot key the chat history collection lives under.
const historyKey = "chat_history"

// SQLiteSlot stores the serialized collection in a single-row key-value
// table. The blob is still read and written wholesale; SQLite only
// provides the durable byte slot.
type SQLiteSlot struct {
	db *sql.DB
}

// OpenSQLiteSlot opens or creates the history database at dbPath and
// ensures the kv schema exists.
func OpenSQLiteSlot(dbPath string) (*SQLiteSlot, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if _, err := db.Exec(
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)`,
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv schema: %w", err)
	}

	return &SQLiteSlot{db: db}, nil
}

// Close releases the database connection.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}

// Load returns the serialized collection, or false when none is stored.
func (s *SQLiteSlot) Load() ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, historyKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading history slot: %w", err)
	}
	return data, true, nil
}

// Save replaces the serialized collection.
func (s *SQLiteSlot) Save(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		historyKey, data,
	)
	if err != nil {
		return fmt.Errorf("writing history slot: %w", err)
	}
	return nil
}
