// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server over the configured store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/mtbmaint/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and works on the same data as
the CLI.

CONFIGURATION:

  {
    "mcpServers": {
      "mtbmaint": {
        "command": "mtbmaint",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_bike            Add a bike
  list_bikes          List bikes with due summaries
  get_bike            Bike details, due tasks and recent history
  update_bike         Change a bike's details
  delete_bike         Delete a bike with its logs and rides
  add_component       Install a component
  delete_component    Remove a component
  add_ride            Log a ride
  list_rides          List rides
  log_service         Record maintenance from a guide
  list_service_logs   List maintenance history
  due_maintenance     Overdue, due and upcoming tasks
  list_guides         Browse the guide catalog

AVAILABLE RESOURCES:

  mtbmaint://due        Due maintenance across the fleet
  mtbmaint://snapshot   Full data export
  mtbmaint://guides     Guide catalog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(st, guides)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
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
