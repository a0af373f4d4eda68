// ABOUTME: Root Cobra command for mtbmaint CLI.
// ABOUTME: Opens config, logger, blob store and store in PersistentPreRunE and closes them after.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/mtbmaint/internal/catalog"
	"github.com/harperreed/mtbmaint/internal/config"
	"github.com/harperreed/mtbmaint/internal/logger"
	"github.com/harperreed/mtbmaint/internal/storage"
	"github.com/harperreed/mtbmaint/internal/store"
)

// skipStore marks commands that manage their own storage or need none.
const skipStore = "mtbmaint/skip-store"

var (
	cfg    *config.Config
	appLog *zap.Logger
	blobs  storage.BlobStore
	st     *store.Store
	guides *catalog.Catalog

	flagBackend  string
	flagDataDir  string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "mtbmaint",
	Short: "Mountain bike maintenance tracker",
	Long: `mtbmaint tracks your mountain bikes, their components, the rides you put on
them, and the maintenance they need.

WHAT IT TRACKS:

  Bikes        name, make, model, year, total mileage
  Components   chain, fork, brakes, tires... with install date and mileage
  Rides        miles ridden; each ride adds to the bike's total
  Services     maintenance done, from a built-in catalog of guides

QUICK START:

  $ mtbmaint bike add Hightower --make "Santa Cruz" --year 2021
  $ mtbmaint ride add Hightower 18.5            # Log a ride
  $ mtbmaint due                                # What needs doing?
  $ mtbmaint guides --category drivetrain       # Browse guides
  $ mtbmaint service log Hightower chain-lube   # Record the work

Bikes and components can be referred to by name, full ID, or a unique ID prefix.

DUE MAINTENANCE:

  Guides with a mileage interval are tracked per bike. A task is
  upcoming at 80% of its interval, due at 100%, and overdue past 120%.

MCP INTEGRATION:

  Run 'mtbmaint mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "mtbmaint": { "command": "mtbmaint", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in one JSON snapshot. The backend is set in
  ~/.config/mtbmaint/config.json or MTBMAINT_BACKEND:
  badger (default), sqlite, s3, or memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip store init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Annotations[skipStore] == "true" {
			return nil
		}
		return openStore(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: badger, sqlite, s3, memory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory for local backends")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command and releases the store however it exits.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	return err
}

// loadConfig reads the config file and environment, then applies flags.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		c.LogLevel = flagLogLevel
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func openStore(ctx context.Context) error {
	if err := closeStore(); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}
	appLog = logger.New(cfg.LoggerConfig())

	blobs, err = cfg.OpenBlobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	appLog.Debug("opened storage", zap.String("backend", cfg.GetBackend()), zap.String("data_dir", cfg.GetDataDir()))

	st = store.New(blobs, store.WithLogger(appLog))
	guides = catalog.Default()
	return nil
}

func closeStore() error {
	if appLog != nil {
		_ = appLog.Sync()
	}
	if blobs == nil {
		return nil
	}
	err := blobs.Close()
	blobs = nil
	st = nil
	return err
}
