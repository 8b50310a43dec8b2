package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global ~/.crm/config.toml.
type Config struct {
	DefaultProfile     string `toml:"default_profile"`
	Theme              string `toml:"theme"`
	ItemsPerPage       int    `toml:"items_per_page"`
	SimulatedLatencyMS int    `toml:"simulated_latency_ms"`
}

// Default returns the config used when no file exists yet.
func Default() *Config {
	return &Config{
		Theme:              "dark",
		ItemsPerPage:       10,
		SimulatedLatencyMS: 1000,
	}
}

// Load reads config from the given path and fills unset fields with
// defaults. Returns an error if the file is missing or malformed.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Theme == "" {
		cfg.Theme = Default().Theme
	}
	if cfg.ItemsPerPage <= 0 {
		cfg.ItemsPerPage = Default().ItemsPerPage
	}
	if cfg.SimulatedLatencyMS < 0 {
		cfg.SimulatedLatencyMS = 0
	}
	return &cfg, nil
}

// LoadOrDefault reads config from path, falling back to defaults when
// the file does not exist.
func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		return Default()
	}
	return cfg
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
