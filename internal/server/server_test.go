// ABOUTME: Tests for the relay endpoints using fake OAuth and drive backends.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeExchanger struct{}

func (fakeExchanger) AuthURL() string {
	return "https://accounts.example.com/auth?state=xyz"
}

func (fakeExchanger) Exchange(_ context.Context, code string) (string, int64, error) {
	if code != "good-code" {
		return "", 0, errors.New("invalid code")
	}
	return "drive-token", 1767225600000, nil
}

// fakeDrive holds one in-memory file keyed by a single valid token.
type fakeDrive struct {
	file    []byte
	fileID  string
	creates int
}

func (f *fakeDrive) Upload(_ context.Context, token string, content []byte) (string, error) {
	if token != "drive-token" {
		return "", ErrTokenRejected
	}
	if f.fileID == "" {
		f.creates++
		f.fileID = "remote-1"
	}
	f.file = content
	return f.fileID, nil
}

func (f *fakeDrive) Download(_ context.Context, token string) ([]byte, error) {
	if token != "drive-token" {
		return nil, ErrTokenRejected
	}
	if f.file == nil {
		return nil, ErrNoRemoteFile
	}
	return f.file, nil
}

func setupServer(t *testing.T) (*httptest.Server, *fakeDrive) {
	t.Helper()
	drive := &fakeDrive{}
	srv := httptest.NewServer(New(fakeExchanger{}, drive).Handler())
	t.Cleanup(srv.Close)
	return srv, drive
}

func TestAuthURLEndpoint(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/api/sync/google/auth-url")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		URL string `json:"url"`
	}
	json.NewDecoder(resp.Body).Decode(&out)
	if out.URL == "" {
		t.Error("Expected authorization URL in response")
	}
}

func TestExchangeTokenEndpoint(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Post(srv.URL+"/api/sync/google/exchange-token",
		"application/json", bytes.NewBufferString(`{"code":"good-code"}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"accessToken"`
		ExpiresAt   int64  `json:"expiresAt"`
	}
	json.NewDecoder(resp.Body).Decode(&out)
	if out.AccessToken != "drive-token" {
		t.Errorf("Expected exchanged token, got %q", out.AccessToken)
	}
	if out.ExpiresAt == 0 {
		t.Error("Expected expiry forwarded")
	}
}

func TestExchangeTokenRejectsBadCode(t *testing.T) {
	srv, _ := setupServer(t)

	for _, body := range []string{`{"code":"stale"}`, `{}`, `not json`} {
		resp, err := http.Post(srv.URL+"/api/sync/google/exchange-token",
			"application/json", bytes.NewBufferString(body))
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Body %q: expected 400, got %d", body, resp.StatusCode)
		}
	}
}

func uploadSnapshot(t *testing.T, srv *httptest.Server, token, body string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/sync/google/upload",
		bytes.NewBufferString(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func TestUploadRequiresBearer(t *testing.T) {
	srv, _ := setupServer(t)

	resp := uploadSnapshot(t, srv, "", `{"version":"1.0"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without credential, got %d", resp.StatusCode)
	}
}

func TestUploadRejectedTokenMapsTo401(t *testing.T) {
	srv, _ := setupServer(t)

	resp := uploadSnapshot(t, srv, "wrong-token", `{"version":"1.0"}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for rejected token, got %d", resp.StatusCode)
	}
}

func TestUploadCreatesThenUpdates(t *testing.T) {
	srv, drive := setupServer(t)

	resp := uploadSnapshot(t, srv, "drive-token", `{"version":"1.0","n":1}`)
	var first struct {
		FileID string `json:"fileId"`
	}
	json.NewDecoder(resp.Body).Decode(&first)
	resp.Body.Close()

	resp = uploadSnapshot(t, srv, "drive-token", `{"version":"1.0","n":2}`)
	var second struct {
		FileID string `json:"fileId"`
	}
	json.NewDecoder(resp.Body).Decode(&second)
	resp.Body.Close()

	if first.FileID == "" || first.FileID != second.FileID {
		t.Errorf("Expected stable file id, got %q then %q", first.FileID, second.FileID)
	}
	if drive.creates != 1 {
		t.Errorf("Expected one create, got %d", drive.creates)
	}
	if !bytes.Contains(drive.file, []byte(`"n":2`)) {
		t.Error("Expected latest content stored")
	}
}

func TestDownloadNoBackupMapsTo404(t *testing.T) {
	srv, _ := setupServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/sync/google/download", nil)
	req.Header.Set("Authorization", "Bearer drive-token")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for missing backup, got %d", resp.StatusCode)
	}
}

func TestDownloadReturnsStoredContent(t *testing.T) {
	srv, _ := setupServer(t)

	resp := uploadSnapshot(t, srv, "drive-token", `{"version":"1.0"}`)
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/sync/google/download", nil)
	req.Header.Set("Authorization", "Bearer drive-token")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	var doc map[string]any
	json.NewDecoder(resp.Body).Decode(&doc)
	if doc["version"] != "1.0" {
		t.Errorf("Unexpected content: %v", doc)
	}
}
