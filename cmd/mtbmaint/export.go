// ABOUTME: CLI commands for exporting and importing maintenance data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; import takes the JSON form.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/mtbmaint/internal/transfer"
)

var (
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export maintenance data",
	Long: `Export all bikes, maintenance logs and rides.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Maintenance report with bikes, due tasks, history and rides

OPTIONS:

  --output, -o   Write to a file instead of stdout. If the path is a
                 directory, a dated backup name is used inside it.

EXAMPLES:

  mtbmaint export json                 # Export all data as JSON
  mtbmaint export json -o .            # ./mtbmaint-backup-YYYY-MM-DD.json
  mtbmaint export yaml -o bikes.yaml   # Save YAML to a file
  mtbmaint export markdown             # Print a report`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		now := time.Now()
		snap := st.ExportSnapshot()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = transfer.EncodeJSON(snap)
		case "yaml":
			data, err = transfer.EncodeYAML(snap)
		case "markdown", "md":
			data = []byte(transfer.Markdown(snap, guides.All(), now))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput == "" {
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
			return nil
		}

		path := exportOutput
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, backupName(format, now))
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Exported to %s\n", path)
		return nil
	},
}

// backupName is the dated backup file name with the format's extension.
func backupName(format string, now time.Time) string {
	name := transfer.BackupFilename(now)
	switch format {
	case "yaml":
		return strings.TrimSuffix(name, ".json") + ".yaml"
	case "markdown", "md":
		return strings.TrimSuffix(name, ".json") + ".md"
	}
	return name
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import maintenance data from JSON",
	Long: `Import data from a JSON export file.

CAUTION:

  Import REPLACES all current bikes, logs and rides with the file's
  contents. If the file cannot be read or has the wrong shape, nothing
  changes.

EXAMPLES:

  mtbmaint import mtbmaint-backup-2024-06-15.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		// The current data is kept when the file is rejected
		if err := st.ImportSnapshot(data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		stats := st.Stats()
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Imported from %s\n", filename)
		fmt.Fprintf(cmd.OutOrStdout(), "  %d bikes, %d maintenance logs, %d rides\n", stats.Bikes, stats.MaintenanceLogs, stats.Rides)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file or directory (default: stdout)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
