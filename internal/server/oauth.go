// ABOUTME: OAuth2 authorization flow against Google.
// ABOUTME: Builds the consent URL and performs the confidential code exchange.
package server

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
)

// OAuthConfig holds the provider credentials. The client secret never
// leaves this service; front ends only ever see the resulting token.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// OAuthConfigFromEnv reads provider credentials from the environment.
func OAuthConfigFromEnv() (*OAuthConfig, error) {
	cfg := &OAuthConfig{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, and GOOGLE_REDIRECT_URI must be set")
	}
	return cfg, nil
}

func (c *OAuthConfig) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		Scopes:       []string{drive.DriveFileScope},
		Endpoint:     google.Endpoint,
	}
}

// AuthURL builds the consent URL with a fresh state nonce.
func (c *OAuthConfig) AuthURL() string {
	return c.oauth2Config().AuthCodeURL(uuid.New().String(), oauth2.AccessTypeOnline)
}

// Exchange trades a one-time authorization code for an access token.
// Returns the token and its absolute expiry in epoch millis, 0 if the
// provider issued no expiry.
func (c *OAuthConfig) Exchange(ctx context.Context, code string) (string, int64, error) {
	token, err := c.oauth2Config().Exchange(ctx, code)
	if err != nil {
		return "", 0, fmt.Errorf("exchange code: %w", err)
	}

	var expiresAt int64
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry.UnixMilli()
	}
	return token.AccessToken, expiresAt, nil
}
