// ABOUTME: CLI commands for remote drive backup.
// ABOUTME: Login via OAuth, push/pull snapshots, status, and logout.
package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gratis/internal/sync"
	"github.com/spf13/cobra"
)

var pullForce bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Back up to and restore from Google Drive",
	Long: `Sync keeps a single backup file on your Google Drive.

The relay service performs the confidential parts of the OAuth exchange;
this machine only ever stores the resulting access token. There is no
token refresh: when the token expires, log in again.

  gratis sync login      # Authorize and store a token
  gratis sync push       # Upload a snapshot of all local data
  gratis sync pull       # Replace local data with the remote backup
  gratis sync status     # Show authorization and last sync time
  gratis sync logout     # Drop the stored token`,
}

func syncClient() (*sync.Client, *sync.Config, error) {
	syncCfg, err := sync.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sync config: %w", err)
	}
	server := syncCfg.Server
	if server == "" {
		server = cfg.GetSyncServer()
	}
	return sync.NewClient(server, syncCfg), syncCfg, nil
}

var syncLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize Google Drive access",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, syncCfg, err := syncClient()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		url, err := client.AuthURL(ctx)
		if err != nil {
			return fmt.Errorf("failed to get authorization URL: %w", err)
		}

		fmt.Println("Visit this URL to authorize access:")
		fmt.Printf("\n  %s\n\n", color.CyanString(url))
		fmt.Print("Paste the authorization code here: ")

		var code string
		if _, err := fmt.Scanln(&code); err != nil {
			return fmt.Errorf("failed to read code: %w", err)
		}

		if err := client.Exchange(ctx, code); err != nil {
			return fmt.Errorf("authorization failed: %w", err)
		}
		syncCfg.Server = cfg.GetSyncServer()
		if err := sync.SaveConfig(syncCfg); err != nil {
			return fmt.Errorf("failed to save sync config: %w", err)
		}

		color.Green("✓ Authorized")
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload a snapshot to the remote backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, syncCfg, err := syncClient()
		if err != nil {
			return err
		}

		snap, err := store.ExportSnapshot()
		if err != nil {
			return fmt.Errorf("failed to export snapshot: %w", err)
		}

		fileID, err := client.Upload(cmd.Context(), snap)
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}

		syncCfg.LastSync = time.Now().UTC().Format(time.RFC3339)
		if err := sync.SaveConfig(syncCfg); err != nil {
			return fmt.Errorf("failed to save sync config: %w", err)
		}

		color.Green("✓ Backup uploaded")
		fmt.Printf("  remote file %s\n", color.New(color.Faint).Sprint(fileID))
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Replace local data with the remote backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !pullForce {
			return fmt.Errorf("pull replaces ALL local data with the remote backup; pass --force to confirm")
		}

		client, syncCfg, err := syncClient()
		if err != nil {
			return err
		}

		snap, err := client.Download(cmd.Context())
		if err != nil {
			if errors.Is(err, sync.ErrNoBackup) {
				return fmt.Errorf("no backup exists on the remote yet; run 'gratis sync push' first")
			}
			return fmt.Errorf("download failed: %w", err)
		}

		if err := store.ImportSnapshot(snap); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}

		syncCfg.LastSync = time.Now().UTC().Format(time.RFC3339)
		if err := sync.SaveConfig(syncCfg); err != nil {
			return fmt.Errorf("failed to save sync config: %w", err)
		}

		color.Green("✓ Restored from remote backup (%s)", snap.Timestamp.Format("2006-01-02 15:04"))
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, syncCfg, err := syncClient()
		if err != nil {
			return err
		}

		if syncCfg.Authorized() {
			color.Green("● Authorized")
			if syncCfg.ExpiresAt != 0 {
				expiry := time.UnixMilli(syncCfg.ExpiresAt)
				fmt.Printf("  token expires %s\n", expiry.Local().Format("2006-01-02 15:04"))
			}
		} else {
			color.Yellow("○ Not authorized - run 'gratis sync login'")
		}
		fmt.Printf("  server    %s\n", cfg.GetSyncServer())
		fmt.Printf("  client id %s\n", syncCfg.ClientID)
		if syncCfg.LastSync != "" {
			fmt.Printf("  last sync %s\n", syncCfg.LastSync)
		}
		return nil
	},
}

var syncLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		syncCfg, err := sync.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load sync config: %w", err)
		}
		syncCfg.Logout()
		if err := sync.SaveConfig(syncCfg); err != nil {
			return fmt.Errorf("failed to save sync config: %w", err)
		}
		color.Green("✓ Logged out")
		return nil
	},
}

func init() {
	syncPullCmd.Flags().BoolVar(&pullForce, "force", false, "confirm destructive restore")
	syncCmd.AddCommand(syncLoginCmd, syncPushCmd, syncPullCmd, syncStatusCmd, syncLogoutCmd)
	rootCmd.AddCommand(syncCmd)
}
