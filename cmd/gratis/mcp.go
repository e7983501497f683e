// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gratis/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Add to your Claude Desktop
config (claude_desktop_config.json):

  {
    "mcpServers": {
      "gratis": {
        "command": "gratis",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_exercise       Create an exercise
  list_exercises     List all exercises
  add_workout        Create a workout from exercise ids
  list_workouts      List all workouts
  schedule_workout   Schedule a workout on a date
  complete_set       Mark a set done or not done
  day_log            Show a day's sessions and progress

AVAILABLE RESOURCES:

  gratis://schedule/today   Today's sessions with completion
  gratis://exercises        The exercise catalog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
