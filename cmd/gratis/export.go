// ABOUTME: CLI commands for exporting and importing snapshots.
// ABOUTME: Supports JSON, YAML, and Markdown export plus merge/replace import.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	importMerge  bool
	importForce  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export training data",
	Long: `Export all training data in various formats.

FORMATS:

  json       Full snapshot (suitable for backup/restore)
  yaml       YAML snapshot (human-readable)
  markdown   Schedule as a markdown document

EXAMPLES:

  gratis export json                  # Print snapshot to stdout
  gratis export json -o backup.json   # Save to file
  gratis export markdown              # Readable training history`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error

		switch args[0] {
		case "json":
			data, err = store.ExportJSON()
		case "yaml":
			data, err = store.ExportYAML()
		case "markdown":
			var md string
			md, err = store.ExportMarkdown()
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (json, yaml, markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", exportOutput, err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}
		fmt.Print(string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a snapshot file",
	Long: `Import a JSON snapshot.

By default the import is destructive: all current data is replaced by the
snapshot's contents, preserving the snapshot's ids. With --merge, records
are added or overwritten by id and everything else is kept.

EXAMPLES:

  gratis import backup.json --merge   # Add/overwrite by id
  gratis import backup.json --force   # Replace everything`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		if !importMerge && !importForce {
			return fmt.Errorf("a plain import replaces ALL current data; pass --force to confirm, or --merge to upsert by id")
		}

		if err := store.ImportJSON(data, importMerge); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		if importMerge {
			color.Green("✓ Merged %s", args[0])
		} else {
			color.Green("✓ Restored from %s", args[0])
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	importCmd.Flags().BoolVar(&importMerge, "merge", false, "add or overwrite by id instead of replacing")
	importCmd.Flags().BoolVar(&importForce, "force", false, "confirm destructive replace-all import")
	rootCmd.AddCommand(exportCmd, importCmd)
}
