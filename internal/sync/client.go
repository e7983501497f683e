// ABOUTME: HTTP client for the sync relay service.
// ABOUTME: Handles the authorization-code exchange and snapshot upload/download.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harperreed/gratis/internal/storage"
)

// Client talks to the sync relay, which performs the confidential parts
// of the OAuth exchange and proxies drive access. The client only ever
// holds the access token.
type Client struct {
	server string
	config *Config
	http   *http.Client
}

// NewClient creates a sync client against the given relay base URL.
func NewClient(server string, cfg *Config) *Client {
	return &Client{
		server: server,
		config: cfg,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

type authURLResponse struct {
	URL string `json:"url"`
}

type exchangeRequest struct {
	Code string `json:"code"`
}

type exchangeResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   int64  `json:"expiresAt,omitempty"`
}

type uploadResponse struct {
	FileID string `json:"fileId"`
}

// AuthURL fetches the provider authorization URL for the user to visit.
func (c *Client) AuthURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+"/api/sync/google/auth-url", nil)
	if err != nil {
		return "", fmt.Errorf("auth url: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransferError{Operation: "auth url", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &TransferError{Operation: "auth url", StatusCode: resp.StatusCode, Err: remoteMessage(resp)}
	}

	var out authURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("auth url: decode response: %w", err)
	}
	return out.URL, nil
}

// Exchange trades a one-time authorization code for an access token and
// stores it in the config. The caller persists the config.
func (c *Client) Exchange(ctx context.Context, code string) error {
	if code == "" {
		return fmt.Errorf("exchange: empty authorization code")
	}

	body, err := json.Marshal(exchangeRequest{Code: code})
	if err != nil {
		return fmt.Errorf("exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.server+"/api/sync/google/exchange-token", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("exchange: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransferError{Operation: "exchange", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &TransferError{Operation: "exchange", StatusCode: resp.StatusCode, Err: remoteMessage(resp)}
	}

	var out exchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("exchange: decode response: %w", err)
	}
	if out.AccessToken == "" {
		return fmt.Errorf("exchange: relay returned no access token")
	}

	c.config.SetToken(out.AccessToken, out.ExpiresAt)
	return nil
}

// Upload serializes the snapshot and sends it to the remote backup file,
// replacing any previous content. Returns the remote file id.
func (c *Client) Upload(ctx context.Context, snap *storage.Snapshot) (string, error) {
	if !c.config.Authorized() {
		return "", ErrNotAuthenticated
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.server+"/api/sync/google/upload", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransferError{Operation: "upload", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", ErrNotAuthenticated
	case resp.StatusCode != http.StatusOK:
		return "", &TransferError{Operation: "upload", StatusCode: resp.StatusCode, Err: remoteMessage(resp)}
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("upload: decode response: %w", err)
	}
	return out.FileID, nil
}

// Download fetches the remote backup file and decodes it as a snapshot.
// A missing backup is ErrNoBackup, never an empty snapshot.
func (c *Client) Download(ctx context.Context) (*storage.Snapshot, error) {
	if !c.config.Authorized() {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.server+"/api/sync/google/download", nil)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransferError{Operation: "download", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrNotAuthenticated
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoBackup
	case resp.StatusCode != http.StatusOK:
		return nil, &TransferError{Operation: "download", StatusCode: resp.StatusCode, Err: remoteMessage(resp)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransferError{Operation: "download", Err: err}
	}
	return storage.ParseSnapshot(data)
}

// remoteMessage extracts an error message from a failed response body,
// preferring the relay's {"error": "..."} shape.
func remoteMessage(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return fmt.Errorf("%s", resp.Status)
	}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		return fmt.Errorf("%s", payload.Error)
	}
	return fmt.Errorf("%s", bytes.TrimSpace(data))
}
