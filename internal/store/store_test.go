package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/gaillardy/crm/internal/auth"
	"github.com/gaillardy/crm/internal/directory"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleClient(id string) *directory.Client {
	return &directory.Client{
		ID:        id,
		FirstName: "Jean",
		LastName:  "Petit",
		Email:     "jean.petit@example.com",
		Phone:     "+261 33 11 222 33",
		Company:   "ACME",
		Tags:      []string{"Prospect", "Tech"},
		CreatedAt: time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)

	// testDB already ran Migrate; a second run must be a no-op.
	result, err := db.Migrate()
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed {
		t.Error("second Migrate() should report Changed=false")
	}
	if result.Version != 1 {
		t.Errorf("version = %d, want 1", result.Version)
	}
}

func TestUpsertAndLoadClients(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertClient(sampleClient("c1")); err != nil {
		t.Fatal(err)
	}
	c2 := sampleClient("c2")
	c2.FirstName = "Luc"
	if err := db.UpsertClient(c2); err != nil {
		t.Fatal(err)
	}

	// Update keeps the insertion position.
	updated := sampleClient("c1")
	updated.Company = "ACME International"
	if err := db.UpsertClient(updated); err != nil {
		t.Fatal(err)
	}

	clients, err := db.LoadClients()
	if err != nil {
		t.Fatal(err)
	}
	if len(clients) != 2 {
		t.Fatalf("got %d clients, want 2", len(clients))
	}
	if clients[0].ID != "c1" || clients[1].ID != "c2" {
		t.Errorf("order = [%s %s], want [c1 c2]", clients[0].ID, clients[1].ID)
	}
	if clients[0].Company != "ACME International" {
		t.Errorf("company = %q, want updated value", clients[0].Company)
	}
	if len(clients[0].Tags) != 2 || clients[0].Tags[0] != "Prospect" {
		t.Errorf("tags = %v, want [Prospect Tech]", clients[0].Tags)
	}
	if !clients[0].CreatedAt.Equal(sampleClient("c1").CreatedAt) {
		t.Errorf("created_at = %v, want %v", clients[0].CreatedAt, sampleClient("c1").CreatedAt)
	}
}

func TestActivitiesLoadInInsertionOrder(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertClient(sampleClient("c1")); err != nil {
		t.Fatal(err)
	}
	for i, id := range []string{"a1", "a2", "a3"} {
		a := &directory.Activity{
			ID:          id,
			Type:        directory.ActivityCall,
			Title:       "Call",
			Description: "Follow-up",
			Date:        time.Date(2025, 2, 1, 10+i, 0, 0, 0, time.UTC),
		}
		if err := db.InsertActivity("c1", a); err != nil {
			t.Fatal(err)
		}
	}

	clients, err := db.LoadClients()
	if err != nil {
		t.Fatal(err)
	}
	acts := clients[0].Activities
	if len(acts) != 3 {
		t.Fatalf("got %d activities, want 3", len(acts))
	}
	for i, want := range []string{"a1", "a2", "a3"} {
		if acts[i].ID != want {
			t.Errorf("activity[%d] = %s, want %s", i, acts[i].ID, want)
		}
	}
}

func TestDeleteClientCascades(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertClient(sampleClient("c1")); err != nil {
		t.Fatal(err)
	}
	a := &directory.Activity{ID: "a1", Type: directory.ActivityNote, Title: "n", Description: "d", Date: time.Now()}
	if err := db.InsertActivity("c1", a); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteClient("c1"); err != nil {
		t.Fatal(err)
	}
	n, err := db.ActivityCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("ActivityCount = %d after cascade delete, want 0", n)
	}

	// Deleting again is a no-op at this layer.
	if err := db.DeleteClient("c1"); err != nil {
		t.Errorf("second delete = %v, want nil", err)
	}
}

func TestQueryStateRoundTrip(t *testing.T) {
	db := testDB(t)

	q, err := db.LoadQuery()
	if err != nil {
		t.Fatal(err)
	}
	if q != nil {
		t.Fatalf("LoadQuery on fresh db = %+v, want nil", q)
	}

	saved := directory.DefaultQuery(10)
	saved.SearchTerm = "tech"
	saved.SelectedTags = []string{"VIP"}
	saved.CurrentPage = 2
	if err := db.SaveQuery(&saved); err != nil {
		t.Fatal(err)
	}

	q, err = db.LoadQuery()
	if err != nil {
		t.Fatal(err)
	}
	if q.SearchTerm != "tech" || q.CurrentPage != 2 || len(q.SelectedTags) != 1 {
		t.Errorf("round-tripped query = %+v", q)
	}
}

func TestSeededMarker(t *testing.T) {
	db := testDB(t)

	seeded, err := db.Seeded()
	if err != nil {
		t.Fatal(err)
	}
	if seeded {
		t.Error("fresh db reports seeded")
	}
	if err := db.MarkSeeded(); err != nil {
		t.Fatal(err)
	}
	seeded, err = db.Seeded()
	if err != nil {
		t.Fatal(err)
	}
	if !seeded {
		t.Error("marker not persisted")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	db := testDB(t)

	s, err := db.LoadSession()
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Fatalf("LoadSession on fresh db = %+v, want nil", s)
	}

	saved := &auth.Session{
		Authenticated: true,
		Identity:      &auth.Identity{DisplayName: auth.DemoDisplayName, Email: "a@b.com"},
	}
	if err := db.SaveSession(saved); err != nil {
		t.Fatal(err)
	}

	s, err = db.LoadSession()
	if err != nil {
		t.Fatal(err)
	}
	if s == nil || !s.Authenticated || s.Identity == nil || s.Identity.Email != "a@b.com" {
		t.Errorf("round-tripped session = %+v", s)
	}
}
