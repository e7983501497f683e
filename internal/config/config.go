// ABOUTME: Application configuration management.
// ABOUTME: Handles data directory, sync server selection, and the storage factory.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/gratis/internal/storage"
)

// DefaultSyncServer is the relay used for token exchange and drive
// transfer when no server is configured.
const DefaultSyncServer = "https://gratis.harperrules.com"

// Config stores gratis tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; gratis.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/gratis.
	DataDir string `json:"data_dir,omitempty"`

	// SyncServer is the base URL of the sync relay service.
	SyncServer string `json:"sync_server,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetSyncServer returns the configured sync relay URL without a trailing
// slash, defaulting to the hosted relay.
func (c *Config) GetSyncServer() string {
	server := c.SyncServer
	if server == "" {
		server = DefaultSyncServer
	}
	return strings.TrimRight(server, "/")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store in the configured data directory.
func (c *Config) OpenStorage() (storage.Store, error) {
	dbPath := filepath.Join(c.GetDataDir(), "gratis.db")
	return storage.Open(dbPath)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gratis", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
