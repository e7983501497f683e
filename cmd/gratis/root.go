// ABOUTME: Root Cobra command for gratis CLI.
// ABOUTME: Opens the store in PersistentPreRunE and closes it after the run.
package main

import (
	"fmt"

	"github.com/harperreed/gratis/internal/config"
	"github.com/harperreed/gratis/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	store storage.Store
)

var rootCmd = &cobra.Command{
	Use:   "gratis",
	Short: "Personal workout tracker",
	Long: `Gratis is a CLI tool for planning workouts and tracking training.

EXERCISES AND WORKOUTS:

  $ gratis exercise add "Push-ups" --sets 3 --reps 12  # Define an exercise
  $ gratis exercise add "Squats" --sets 5 --reps 5 --weight 80
  $ gratis workout add "Upper Body" --exercises 1,2    # Group exercises
  $ gratis workout list                                # See your workouts

TRAINING:

  $ gratis schedule 1                      # Schedule workout 1 for today
  $ gratis schedule 1 --date 2026-03-15    # Or for a specific date
  $ gratis day                             # Today's sessions and progress
  $ gratis log set 1 2 1                   # Mark set 1 of exercise 2 done
  $ gratis log effort 1 2 9                # Record perceived effort

BACKUP AND SYNC:

  $ gratis export json -o backup.json      # Local backup
  $ gratis import backup.json --merge      # Merge a backup by id
  $ gratis sync login                      # Authorize Google Drive backup
  $ gratis sync push                       # Upload a snapshot
  $ gratis sync pull                       # Restore from the remote backup

MCP INTEGRATION:

  Run 'gratis mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "gratis": { "command": "gratis", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data is stored in a SQLite database at ~/.local/share/gratis/gratis.db.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "serve" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		store, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}
