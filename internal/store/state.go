package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gaillardy/crm/internal/auth"
	"github.com/gaillardy/crm/internal/directory"
)

// The two persisted state namespaces. ui_state belongs to the client
// directory, auth_state to the session store.
const (
	queryKey   = "query"
	seededKey  = "seeded"
	sessionKey = "session"
)

func (db *DB) getState(table, key string) (string, bool, error) {
	var value string
	err := db.QueryRow(fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, table), key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (db *DB) setState(table, key, value string) error {
	_, err := db.Exec(fmt.Sprintf(`
		INSERT INTO %s (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, table), key, value)
	return err
}

// SaveQuery mirrors the UI query state.
func (db *DB) SaveQuery(q *directory.Query) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}
	return db.setState("ui_state", queryKey, string(data))
}

// LoadQuery returns the persisted query state, or nil when absent.
func (db *DB) LoadQuery() (*directory.Query, error) {
	value, ok, err := db.getState("ui_state", queryKey)
	if err != nil || !ok {
		return nil, err
	}
	var q directory.Query
	if err := json.Unmarshal([]byte(value), &q); err != nil {
		return nil, fmt.Errorf("unmarshal query: %w", err)
	}
	return &q, nil
}

// Seeded reports whether the demo data was ever written.
func (db *DB) Seeded() (bool, error) {
	_, ok, err := db.getState("ui_state", seededKey)
	return ok, err
}

// MarkSeeded records that the demo data has been written.
func (db *DB) MarkSeeded() error {
	return db.setState("ui_state", seededKey, "1")
}

// SaveSession mirrors the session state.
func (db *DB) SaveSession(s *auth.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return db.setState("auth_state", sessionKey, string(data))
}

// LoadSession returns the persisted session state, or nil when absent.
func (db *DB) LoadSession() (*auth.Session, error) {
	value, ok, err := db.getState("auth_state", sessionKey)
	if err != nil || !ok {
		return nil, err
	}
	var s auth.Session
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}
