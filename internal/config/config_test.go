package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := &Config{DefaultProfile: "work", Theme: "light", ItemsPerPage: 25, SimulatedLatencyMS: 0}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DefaultProfile != "work" {
		t.Errorf("DefaultProfile = %q, want %q", loaded.DefaultProfile, "work")
	}
	if loaded.Theme != "light" {
		t.Errorf("Theme = %q, want light", loaded.Theme)
	}
	if loaded.ItemsPerPage != 25 {
		t.Errorf("ItemsPerPage = %d, want 25", loaded.ItemsPerPage)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(path, []byte("default_profile = \"main\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Theme != "dark" {
		t.Errorf("Theme = %q, want dark default", loaded.Theme)
	}
	if loaded.ItemsPerPage != 10 {
		t.Errorf("ItemsPerPage = %d, want 10 default", loaded.ItemsPerPage)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadOrDefaultMissing(t *testing.T) {
	cfg := LoadOrDefault("/nonexistent/config.toml")
	if cfg.ItemsPerPage != 10 || cfg.Theme != "dark" {
		t.Errorf("LoadOrDefault() = %+v, want defaults", cfg)
	}
}

func TestSavePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}
}
