// ABOUTME: CLI commands for whole-store operations: stats and clear.
// ABOUTME: Clear requires --confirm since it removes every record.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearConfirm bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show record counts and fleet mileage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := st.Stats()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Bikes:             %d\n", s.Bikes)
		fmt.Fprintf(out, "Components:        %d\n", s.Components)
		fmt.Fprintf(out, "Maintenance logs:  %d\n", s.MaintenanceLogs)
		fmt.Fprintf(out, "Rides:             %d\n", s.Rides)
		fmt.Fprintf(out, "Fleet mileage:     %s\n", miles(s.TotalMileage))
		fmt.Fprintf(out, "Backend:           %s\n", faint.Sprint(cfg.GetBackend()))
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all bikes, logs and rides",
	Long: `Delete every bike, maintenance log and ride.

CAUTION:

  There is no undo. Export a backup first:
    mtbmaint export json -o .

  Pass --confirm to proceed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearConfirm {
			return fmt.Errorf("refusing to clear without --confirm")
		}
		before := st.Stats()
		if err := st.ClearAll(); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Cleared %d bikes, %d maintenance logs, %d rides\n",
			before.Bikes, before.MaintenanceLogs, before.Rides)
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearConfirm, "confirm", false, "confirm deleting all data")
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(clearCmd)
}
