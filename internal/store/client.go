package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaillardy/crm/internal/directory"
)

// UpsertClient inserts or updates a client row. The insertion sequence
// number is assigned once and preserved across updates, so rehydration
// restores the original ordering.
func (db *DB) UpsertClient(c *directory.Client) error {
	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	now := time.Now().UnixMilli()
	_, err = db.Exec(`
		INSERT INTO clients (id, seq, first_name, last_name, email, phone, company, position, notes, tags, created_at, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM clients), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			phone = excluded.phone,
			company = excluded.company,
			position = excluded.position,
			notes = excluded.notes,
			tags = excluded.tags,
			updated_at = excluded.updated_at`,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Company, c.Position, c.Notes,
		string(tags), c.CreatedAt.UnixMilli(), now)
	return err
}

// DeleteClient removes a client row; its activities go with it via the
// foreign key cascade. Deleting an absent id is not an error here (the
// directory store decides how to surface that).
func (db *DB) DeleteClient(id string) error {
	_, err := db.Exec(`DELETE FROM clients WHERE id = ?`, id)
	return err
}

// InsertActivity appends an activity row under the given client.
func (db *DB) InsertActivity(clientID string, a *directory.Activity) error {
	_, err := db.Exec(`
		INSERT INTO activities (id, client_id, seq, type, title, description, date)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM activities), ?, ?, ?, ?)`,
		a.ID, clientID, string(a.Type), a.Title, a.Description, a.Date.UnixMilli())
	return err
}

// LoadClients returns the whole collection in insertion order, with
// each client's activities in insertion order.
func (db *DB) LoadClients() ([]directory.Client, error) {
	rows, err := db.Query(`
		SELECT id, first_name, last_name, email, phone, company, position, notes, tags, created_at
		FROM clients ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var clients []directory.Client
	index := make(map[string]int)
	for rows.Next() {
		var c directory.Client
		var tags string
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.Company, &c.Position, &c.Notes, &tags, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags for %q: %w", c.ID, err)
		}
		c.CreatedAt = time.UnixMilli(createdAt).UTC()
		c.Activities = []directory.Activity{}
		index[c.ID] = len(clients)
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	actRows, err := db.Query(`
		SELECT id, client_id, type, title, description, date
		FROM activities ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = actRows.Close() }()

	for actRows.Next() {
		var a directory.Activity
		var clientID, typ string
		var date int64
		if err := actRows.Scan(&a.ID, &clientID, &typ, &a.Title, &a.Description, &date); err != nil {
			return nil, err
		}
		a.Type = directory.ActivityType(typ)
		a.Date = time.UnixMilli(date).UTC()
		if i, ok := index[clientID]; ok {
			clients[i].Activities = append(clients[i].Activities, a)
		}
	}
	return clients, actRows.Err()
}

// ClientCount returns the total number of clients.
func (db *DB) ClientCount() (int64, error) {
	var count int64
	err := db.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&count)
	return count, err
}

// ActivityCount returns the total number of activities.
func (db *DB) ActivityCount() (int64, error) {
	var count int64
	err := db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&count)
	return count, err
}
