// ABOUTME: Tests for sync configuration and token lifecycle.
package sync

import (
	"testing"
	"time"
)

func TestLoadConfigAssignsClientID(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ClientID == "" {
		t.Error("Expected generated client id")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		Server:      "http://localhost:8080",
		AccessToken: "tok",
		ExpiresAt:   time.Now().Add(time.Hour).UnixMilli(),
		ClientID:    GenerateClientID(),
	}
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.AccessToken != "tok" || loaded.ClientID != cfg.ClientID {
		t.Errorf("Round trip mismatch: %+v", loaded)
	}
}

func TestAuthorized(t *testing.T) {
	cfg := &Config{}
	if cfg.Authorized() {
		t.Error("Empty config should not be authorized")
	}

	cfg.SetToken("tok", 0)
	if !cfg.Authorized() {
		t.Error("Token without expiry should be authorized")
	}

	cfg.SetToken("tok", time.Now().Add(time.Hour).UnixMilli())
	if !cfg.Authorized() {
		t.Error("Unexpired token should be authorized")
	}

	// An expired token drops back to unauthenticated and is cleared.
	cfg.SetToken("tok", time.Now().Add(-time.Minute).UnixMilli())
	if cfg.Authorized() {
		t.Error("Expired token should not be authorized")
	}
	if cfg.AccessToken != "" {
		t.Error("Expired token should be cleared")
	}
}

func TestLogout(t *testing.T) {
	cfg := &Config{}
	cfg.SetToken("tok", time.Now().Add(time.Hour).UnixMilli())
	cfg.Logout()
	if cfg.Authorized() || cfg.AccessToken != "" {
		t.Error("Expected unauthenticated after logout")
	}
}

func TestClearConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := ClearConfig(); err != nil {
		t.Errorf("ClearConfig on missing file should be a no-op, got %v", err)
	}

	if err := SaveConfig(&Config{ClientID: "x"}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if err := ClearConfig(); err != nil {
		t.Fatalf("ClearConfig failed: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ClientID == "x" {
		t.Error("Expected fresh config after clear")
	}
}
