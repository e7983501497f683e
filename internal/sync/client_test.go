// ABOUTME: Tests for the relay client against a fake relay server.
// ABOUTME: Covers the exchange flow, upload idempotence, and error mapping.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harperreed/gratis/internal/models"
	"github.com/harperreed/gratis/internal/storage"
)

// fakeRelay mimics the sync relay with a single in-memory drive file.
type fakeRelay struct {
	token   string
	file    []byte
	fileID  string
	uploads int
	creates int
}

func (f *fakeRelay) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/sync/google/auth-url", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": "https://accounts.example.com/auth?state=abc"})
	})

	mux.HandleFunc("POST /api/sync/google/exchange-token", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Code string `json:"code"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Code != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid code"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken": f.token,
			"expiresAt":   time.Now().Add(time.Hour).UnixMilli(),
		})
	})

	mux.HandleFunc("POST /api/sync/google/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if f.fileID == "" {
			f.creates++
			f.fileID = fmt.Sprintf("file-%d", f.creates)
		}
		f.file = body
		f.uploads++
		json.NewEncoder(w).Encode(map[string]string{"fileId": f.fileID})
	})

	mux.HandleFunc("GET /api/sync/google/download", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if f.file == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "no backup file found"})
			return
		}
		w.Write(f.file)
	})

	return mux
}

func setupClient(t *testing.T) (*Client, *Config, *fakeRelay) {
	t.Helper()
	relay := &fakeRelay{token: "valid-token"}
	srv := httptest.NewServer(relay.handler())
	t.Cleanup(srv.Close)

	cfg := &Config{Server: srv.URL, ClientID: GenerateClientID()}
	return NewClient(srv.URL, cfg), cfg, relay
}

func testSnapshot() *storage.Snapshot {
	return &storage.Snapshot{
		Version:   storage.SnapshotVersion,
		Timestamp: time.Now().UTC(),
		Data: storage.SnapshotData{
			Exercises: []*models.Exercise{{ID: 1, Name: "Push-ups", Sets: 3, Reps: 10}},
		},
	}
}

func TestAuthURL(t *testing.T) {
	client, _, _ := setupClient(t)

	url, err := client.AuthURL(context.Background())
	if err != nil {
		t.Fatalf("AuthURL failed: %v", err)
	}
	if url == "" {
		t.Error("Expected non-empty authorization URL")
	}
}

func TestExchange(t *testing.T) {
	client, cfg, _ := setupClient(t)

	if err := client.Exchange(context.Background(), "good-code"); err != nil {
		t.Fatalf("Exchange failed: %v", err)
	}
	if !cfg.Authorized() {
		t.Error("Expected authorized after exchange")
	}
	if cfg.AccessToken != "valid-token" {
		t.Errorf("Expected relay token stored, got %q", cfg.AccessToken)
	}
}

func TestExchangeBadCode(t *testing.T) {
	client, cfg, _ := setupClient(t)

	err := client.Exchange(context.Background(), "bad-code")
	if err == nil {
		t.Fatal("Expected error for rejected code")
	}
	var terr *TransferError
	if !errors.As(err, &terr) || terr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected TransferError with 400, got %v", err)
	}
	if cfg.Authorized() {
		t.Error("Expected unauthenticated after failed exchange")
	}
}

func TestExchangeEmptyCode(t *testing.T) {
	client, _, _ := setupClient(t)
	if err := client.Exchange(context.Background(), ""); err == nil {
		t.Error("Expected error for empty code")
	}
}

func TestUploadRequiresAuth(t *testing.T) {
	client, _, _ := setupClient(t)

	_, err := client.Upload(context.Background(), testSnapshot())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated, got %v", err)
	}
}

func TestUploadIdempotence(t *testing.T) {
	client, cfg, relay := setupClient(t)
	cfg.SetToken("valid-token", 0)

	snap := testSnapshot()
	id1, err := client.Upload(context.Background(), snap)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	id2, err := client.Upload(context.Background(), snap)
	if err != nil {
		t.Fatalf("Second upload failed: %v", err)
	}

	// Same file updated in place, not a duplicate create.
	if id1 != id2 {
		t.Errorf("Expected stable file id, got %s then %s", id1, id2)
	}
	if relay.creates != 1 {
		t.Errorf("Expected exactly one remote file created, got %d", relay.creates)
	}
	if relay.uploads != 2 {
		t.Errorf("Expected 2 uploads, got %d", relay.uploads)
	}
}

func TestUploadRejectedToken(t *testing.T) {
	client, cfg, _ := setupClient(t)
	cfg.SetToken("stale-token", 0)

	_, err := client.Upload(context.Background(), testSnapshot())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated for rejected token, got %v", err)
	}
}

func TestDownloadRoundTrip(t *testing.T) {
	client, cfg, _ := setupClient(t)
	cfg.SetToken("valid-token", 0)

	snap := testSnapshot()
	if _, err := client.Upload(context.Background(), snap); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	got, err := client.Download(context.Background())
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if got.Version != storage.SnapshotVersion {
		t.Errorf("Expected version preserved, got %q", got.Version)
	}
	if len(got.Data.Exercises) != 1 || got.Data.Exercises[0].Name != "Push-ups" {
		t.Errorf("Unexpected downloaded data: %+v", got.Data)
	}
}

func TestDownloadNoBackup(t *testing.T) {
	client, cfg, _ := setupClient(t)
	cfg.SetToken("valid-token", 0)

	_, err := client.Download(context.Background())
	if !errors.Is(err, ErrNoBackup) {
		t.Errorf("Expected ErrNoBackup, got %v", err)
	}
}

func TestExpiredTokenFailsBeforeNetwork(t *testing.T) {
	client, cfg, relay := setupClient(t)
	cfg.SetToken("valid-token", time.Now().Add(-time.Minute).UnixMilli())

	_, err := client.Download(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Expected ErrNotAuthenticated for expired token, got %v", err)
	}
	if relay.uploads != 0 {
		t.Error("Expected no network call with expired token")
	}
}
