// ABOUTME: CLI command for copying the data snapshot between storage backends.
// ABOUTME: Opens both backends itself, so the root command does not open a store.
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/mtbmaint/internal/config"
	"github.com/harperreed/mtbmaint/internal/storage"
)

var (
	migrateFrom      string
	migrateTo        string
	migrateOverwrite bool
	migrateDryRun    bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data from one storage backend to another",
	Long: `Copy the data snapshot from one backend to another.

The snapshot is copied byte for byte, so nothing is lost or reformatted.
Both backends use the configured data directory and S3 settings.

IMPORTANT:

  - The destination must be empty unless --overwrite is given
  - Run with --dry-run first to see what would be copied
  - Afterwards, set "backend" in ~/.config/mtbmaint/config.json (or
    MTBMAINT_BACKEND) to start using the destination

USAGE:

  mtbmaint migrate --from sqlite --to badger --dry-run
  mtbmaint migrate --from badger --to s3`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(struct {
			From string `validate:"required,oneof=badger sqlite s3"`
			To   string `validate:"required,oneof=badger sqlite s3,nefield=From"`
		}{migrateFrom, migrateTo}); err != nil {
			return err
		}

		c, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		out := cmd.OutOrStdout()

		src, err := config.OpenBackend(ctx, migrateFrom, c)
		if err != nil {
			return err
		}
		defer src.Close()

		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			data, err := src.Get(storage.DefaultKey)
			if errors.Is(err, storage.ErrNotExist) {
				fmt.Fprintf(out, "Nothing to migrate: %s has no data.\n", migrateFrom)
				return nil
			}
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}
			fmt.Fprintf(out, "Would copy %d bytes from %s to %s.\n", len(data), migrateFrom, migrateTo)
			if migrateTo == config.BackendBadger {
				dir := storage.DefaultBadgerPath(c.GetDataDir())
				if nonEmpty, err := storage.IsDirNonEmpty(dir); err == nil && nonEmpty {
					fmt.Fprintf(out, "Note: %s already has files; --overwrite may be needed.\n", dir)
				}
			}
			return nil
		}

		dst, err := config.OpenBackend(ctx, migrateTo, c)
		if err != nil {
			return err
		}
		defer dst.Close()

		summary, err := storage.MigrateData(src, dst, storage.DefaultKey, migrateOverwrite)
		if errors.Is(err, storage.ErrDestinationNotEmpty) {
			return fmt.Errorf("%s already has data; pass --overwrite to replace it", migrateTo)
		}
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Migrated %d bytes from %s to %s\n", summary.Bytes, migrateFrom, migrateTo)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (badger, sqlite, s3)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend (badger, sqlite, s3)")
	migrateCmd.Flags().BoolVar(&migrateOverwrite, "overwrite", false, "replace data already in the destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
