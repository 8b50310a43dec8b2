package store_test

import (
	"path/filepath"
	"testing"

	"github.com/gaillardy/crm/internal/auth"
	"github.com/gaillardy/crm/internal/directory"
	"github.com/gaillardy/crm/internal/store"
)

func openDB(t *testing.T, path string) *store.DB {
	t.Helper()
	db, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	return db
}

// Mutations made through the stores must survive a full close-and-reopen
// of the database, the same way a restart of the program would see them.
func TestStoresSurviveRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.db")

	db := openDB(t, path)
	dir := directory.New(db, nil, directory.DefaultQuery(10))
	if err := dir.Rehydrate(); err != nil {
		t.Fatal(err)
	}
	if dir.Len() != 5 {
		t.Fatalf("seeded directory has %d clients, want 5", dir.Len())
	}

	added, err := dir.AddClient(directory.ClientInput{
		FirstName: "Nina",
		LastName:  "Simone",
		Email:     "nina@example.com",
		Phone:     "+261 34 00 000 00",
		Tags:      []string{"VIP"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := dir.SetSearchTerm("nina"); err != nil {
		t.Fatal(err)
	}

	sessions := auth.New(db, nil)
	if err := sessions.Login("nina@example.com", "secret"); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db = openDB(t, path)
	defer func() { _ = db.Close() }()

	dir = directory.New(db, nil, directory.DefaultQuery(10))
	if err := dir.Rehydrate(); err != nil {
		t.Fatal(err)
	}
	if dir.Len() != 6 {
		t.Fatalf("directory has %d clients after restart, want 6", dir.Len())
	}
	got, ok := dir.Get(added.ID)
	if !ok {
		t.Fatalf("client %s not restored", added.ID)
	}
	if got.FullName() != "Nina Simone" {
		t.Errorf("restored client = %q", got.FullName())
	}
	if q := dir.CurrentQuery(); q.SearchTerm != "nina" {
		t.Errorf("restored search term = %q, want %q", q.SearchTerm, "nina")
	}

	sessions = auth.New(db, nil)
	if err := sessions.Rehydrate(); err != nil {
		t.Fatal(err)
	}
	identity, ok := sessions.Current()
	if !ok {
		t.Fatal("session not restored")
	}
	if identity.Email != "nina@example.com" || identity.DisplayName != auth.DemoDisplayName {
		t.Errorf("restored identity = %+v", identity)
	}
}

// Emptying the directory must stick: the seed runs once, not on every
// start.
func TestSeedRunsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.db")

	db := openDB(t, path)
	dir := directory.New(db, nil, directory.DefaultQuery(10))
	if err := dir.Rehydrate(); err != nil {
		t.Fatal(err)
	}
	for _, c := range dir.All() {
		if err := dir.DeleteClient(c.ID); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}

	db = openDB(t, path)
	defer func() { _ = db.Close() }()
	dir = directory.New(db, nil, directory.DefaultQuery(10))
	if err := dir.Rehydrate(); err != nil {
		t.Fatal(err)
	}
	if dir.Len() != 0 {
		t.Errorf("emptied directory has %d clients after restart, want 0", dir.Len())
	}
}
