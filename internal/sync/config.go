// ABOUTME: Sync configuration for remote drive backup.
// ABOUTME: Stores relay server, access token with absolute expiry, and client id.
package sync

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
)

// Config stores sync settings. AccessToken is held until ExpiresAt
// passes; there is no refresh flow, an expired token drops the client
// back to unauthenticated.
type Config struct {
	Server      string `json:"server"`
	AccessToken string `json:"access_token,omitempty"`
	ExpiresAt   int64  `json:"expires_at,omitempty"` // epoch millis, 0 means no expiry issued
	ClientID    string `json:"client_id"`
	LastSync    string `json:"last_sync,omitempty"`
}

// ConfigDir returns the XDG config directory for gratis sync.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gratis")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gratis")
}

// ConfigPath returns the path to the sync config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "sync.json")
}

// LoadConfig loads sync config from disk, assigning a client id on
// first use.
func LoadConfig() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{ClientID: GenerateClientID()}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.ClientID == "" {
		cfg.ClientID = GenerateClientID()
	}
	return &cfg, nil
}

// SaveConfig persists sync config to disk.
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(), 0750); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0600)
}

// Authorized reports whether a usable token is held. A token past its
// absolute expiry is cleared from the in-memory config; callers decide
// whether to persist the cleared state.
func (c *Config) Authorized() bool {
	if c.AccessToken == "" {
		return false
	}
	if c.ExpiresAt != 0 && time.Now().UnixMilli() >= c.ExpiresAt {
		c.AccessToken = ""
		c.ExpiresAt = 0
		return false
	}
	return true
}

// SetToken stores a freshly exchanged token. expiresAt of 0 means the
// provider issued no expiry.
func (c *Config) SetToken(accessToken string, expiresAt int64) {
	c.AccessToken = accessToken
	c.ExpiresAt = expiresAt
}

// Logout drops the held token, returning to the unauthenticated state.
func (c *Config) Logout() {
	c.AccessToken = ""
	c.ExpiresAt = 0
}

// GenerateClientID creates a new unique client id.
func GenerateClientID() string {
	return ulid.Make().String()
}

// ClearConfig removes the sync config file.
func ClearConfig() error {
	path := ConfigPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}
