package profile

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	valid := []string{"main", "work", "client-a", "demo_2", "a"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "Main", "with space", "über", "a/b", strings.Repeat("x", 65)}
	for _, name := range invalid {
		if err := ValidateName(name); err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
		}
	}
}

func TestPathsAreProfileScoped(t *testing.T) {
	db := DBPath("work")
	if !strings.Contains(db, filepath.Join("profiles", "work")) {
		t.Errorf("DBPath = %q, want it under profiles/work", db)
	}
	if filepath.Base(db) != "crm.db" {
		t.Errorf("DBPath base = %q, want crm.db", filepath.Base(db))
	}
	if filepath.Dir(LogPath("work")) != LogDir("work") {
		t.Errorf("LogPath %q not inside LogDir %q", LogPath("work"), LogDir("work"))
	}
}

func TestResolvePrecedence(t *testing.T) {
	// Flag override always wins, regardless of config state on disk.
	if got := Resolve("other"); got != "other" {
		t.Errorf("Resolve with flag = %q, want other", got)
	}
}
