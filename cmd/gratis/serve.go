// ABOUTME: CLI command for running the sync relay service.
// ABOUTME: Serves the OAuth exchange and drive proxy endpoints over HTTP.
package main

import (
	"fmt"

	"github.com/harperreed/gratis/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sync relay service",
	Long: `Run the sync relay that clients use for Google Drive backup.

The relay holds the confidential OAuth credentials and proxies drive
access; it stores no user data. Configure it with:

  GOOGLE_CLIENT_ID      OAuth client id
  GOOGLE_CLIENT_SECRET  OAuth client secret
  GOOGLE_REDIRECT_URI   Redirect URI registered with the provider

ENDPOINTS:

  GET  /api/sync/google/auth-url        Authorization URL
  POST /api/sync/google/exchange-token  Code-for-token exchange
  POST /api/sync/google/upload          Upload snapshot (Bearer token)
  GET  /api/sync/google/download        Download snapshot (Bearer token)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		oauth, err := server.OAuthConfigFromEnv()
		if err != nil {
			return err
		}

		srv := server.New(oauth, server.NewGoogleDrive())
		fmt.Printf("Sync relay listening on %s\n", serveAddr)
		return srv.Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
