// Package store persists the editor draft in a local SQLite database.
// Persistence is a single named content slot plus a companion document-type
// slot, overwritten on every save; there is no versioning.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Slot names.
const (
	slotContent = "draft_content"
	slotDocType = "document_type"
)

// DB wraps the SQLite connection holding the editor slots.
type DB struct {
	conn *sql.DB
	path string
}

// Open creates or opens the slot database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version >= 1 {
		return nil
	}

	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS editor_slots (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`)
	if err != nil {
		return fmt.Errorf("creating editor_slots: %w", err)
	}
	if _, err := conn.Exec("PRAGMA user_version = 1"); err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}
	return nil
}

// Draft is the persisted editor state.
type Draft struct {
	Content      string
	DocumentType string
	UpdatedAt    string
}

// SaveDraft overwrites the content and document-type slots.
func (db *DB) SaveDraft(content, documentType string) error {
	if err := db.setSlot(slotContent, content); err != nil {
		return err
	}
	return db.setSlot(slotDocType, documentType)
}

// LoadDraft returns the persisted draft. ok is false when nothing has been
// saved yet.
func (db *DB) LoadDraft() (draft *Draft, ok bool, err error) {
	content, updatedAt, found, err := db.getSlot(slotContent)
	if err != nil || !found {
		return nil, false, err
	}
	docType, _, _, err := db.getSlot(slotDocType)
	if err != nil {
		return nil, false, err
	}
	return &Draft{Content: content, DocumentType: docType, UpdatedAt: updatedAt}, true, nil
}

// ClearDraft removes both slots.
func (db *DB) ClearDraft() error {
	_, err := db.conn.Exec("DELETE FROM editor_slots WHERE name IN (?, ?)", slotContent, slotDocType)
	if err != nil {
		return fmt.Errorf("clearing draft: %w", err)
	}
	return nil
}

func (db *DB) setSlot(name, value string) error {
	_, err := db.conn.Exec(`
		INSERT INTO editor_slots (name, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, value)
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", name, err)
	}
	return nil
}

func (db *DB) getSlot(name string) (value, updatedAt string, found bool, err error) {
	err = db.conn.QueryRow(
		"SELECT value, updated_at FROM editor_slots WHERE name = ?", name,
	).Scan(&value, &updatedAt)
	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("reading slot %s: %w", name, err)
	}
	return value, updatedAt, true, nil
}
