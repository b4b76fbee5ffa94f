package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const appName = "diaflow"

// Config is the on-disk CLI configuration, read from
// ~/.config/diaflow/config.toml. All fields are optional; zero values select
// the file-backed defaults that need no external services.
type Config struct {
	Store    StoreConfig    `toml:"store"`
	Cache    CacheConfig    `toml:"cache"`
	Generate GenerateConfig `toml:"generate"`
	Server   ServerConfig   `toml:"server"`
}

// StoreConfig selects the project persistence backend.
type StoreConfig struct {
	Backend    string `toml:"backend"` // "file" (default) or "mongo"
	Dir        string `toml:"dir"`     // file backend: project directory
	URI        string `toml:"uri"`     // mongo backend: connection string
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig selects the layout cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // "file" (default), "redis" or "none"
	Dir     string `toml:"dir"`
	Addr    string `toml:"addr"` // redis backend: host:port
	DB      int    `toml:"db"`
}

// GenerateConfig configures the diagram generator.
type GenerateConfig struct {
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
	Offline bool   `toml:"offline"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `toml:"port"`
}

// configDir returns the per-user configuration directory.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads config.toml and a .env file from the config directory.
// Missing files are not an error; a malformed config file is. Environment
// variables loaded from .env supplement but never override the process
// environment, matching godotenv semantics.
func loadConfig() (Config, error) {
	var cfg Config

	dir, err := configDir()
	if err != nil {
		return cfg, err
	}

	// Credentials live in .env so the config file can be committed or shared.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
