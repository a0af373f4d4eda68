// ABOUTME: CLI commands for maintenance history.
// ABOUTME: Supports log, list, and last subcommands against the guide catalog.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/mtbmaint/internal/models"
	"github.com/harperreed/mtbmaint/internal/store"
)

var (
	serviceDate    string
	serviceMileage float64
	serviceNotes   string
	serviceLimit   int
)

var serviceCmd = &cobra.Command{
	Use:     "service",
	Aliases: []string{"s", "svc"},
	Short:   "Log and review maintenance",
	Long: `Record maintenance done from the guide catalog and review history.

Logging a service resets that task's due clock for the bike. The task
name and category are copied from the guide when you log it.

WORKFLOW:

  1. See what's due:        mtbmaint due Hightower
  2. Read the guide:        mtbmaint guide chain-lube
  3. Record the work:       mtbmaint service log Hightower chain-lube
  4. Review history:        mtbmaint service list Hightower`,
}

var serviceLogCmd = &cobra.Command{
	Use:   "log <bike> <guide-id>",
	Short: "Record a completed maintenance task",
	Long: `Record that a guide's task was done. The date defaults to today and the
mileage to the bike's current mileage.

Examples:
  mtbmaint service log Hightower chain-lube
  mtbmaint service log Hightower brake-pad-check --date 2024-05-20 --mileage 80`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(struct {
			Mileage float64 `validate:"min=0"`
		}{serviceMileage}); err != nil {
			return err
		}
		date, err := parseDate(serviceDate)
		if err != nil {
			return err
		}
		b, err := resolveBike(args[0])
		if err != nil {
			return err
		}

		fields := models.LogFields{Date: date, Notes: serviceNotes}
		if cmd.Flags().Changed("mileage") {
			fields.MileageAtService = &serviceMileage
		}

		l, err := st.LogService(b.ID, args[1], guides, fields)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("unknown guide: %s (see 'mtbmaint guides')", args[1])
			}
			return fmt.Errorf("failed to log service: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged %s on %s\n", l.TaskName, b.Name)
		fmt.Fprintf(out, "  %s %s at %s\n", faint.Sprint(shortID(l.ID)), l.Date, miles(l.MileageAtService))
		return nil
	},
}

var serviceListCmd = &cobra.Command{
	Use:     "list [bike]",
	Aliases: []string{"ls"},
	Short:   "List maintenance history, newest first",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var logs []models.MaintenanceLog
		names := map[string]string{}
		if len(args) == 1 {
			b, err := resolveBike(args[0])
			if err != nil {
				return err
			}
			logs = st.LogsForBike(b.ID)
			names[b.ID] = b.Name
		} else {
			logs = st.RecentLogs(0)
			for _, b := range st.ListBikes() {
				names[b.ID] = b.Name
			}
		}

		out := cmd.OutOrStdout()
		if len(logs) == 0 {
			fmt.Fprintln(out, "No maintenance logged.")
			return nil
		}
		if serviceLimit > 0 && len(logs) > serviceLimit {
			logs = logs[:serviceLimit]
		}

		for _, l := range logs {
			notes := ""
			if l.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(l.Notes, 30))
			}
			fmt.Fprintf(out, "%s %s %s %s %s%s\n",
				faint.Sprint(shortID(l.ID)),
				faint.Sprint(padRight(l.Date.String(), 10)),
				padRight(truncate(names[l.BikeID], 16), 16),
				padRight(l.TaskName, 28),
				miles(l.MileageAtService),
				notes)
		}
		return nil
	},
}

var serviceLastCmd = &cobra.Command{
	Use:   "last <bike> <guide-id>",
	Short: "Show when a task was last done on a bike",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := resolveBike(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		l, err := st.LastServiceForTask(b.ID, args[1])
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(out, "%s has never been logged on %s.\n", args[1], b.Name)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s on %s\n", l.TaskName, b.Name)
		fmt.Fprintf(out, "  Last done:  %s at %s\n", l.Date, miles(l.MileageAtService))
		fmt.Fprintf(out, "  Since:      %s\n", miles(b.TotalMileage-l.MileageAtService))
		if g, ok := guides.Get(args[1]); ok && g.Scheduled() {
			fmt.Fprintf(out, "  Interval:   %s\n", miles(*g.IntervalMiles))
		}
		if l.Notes != "" {
			fmt.Fprintf(out, "  Notes:      %s\n", l.Notes)
		}
		return nil
	},
}

func init() {
	serviceLogCmd.Flags().StringVar(&serviceDate, "date", "", "service date (YYYY-MM-DD), default today")
	serviceLogCmd.Flags().Float64Var(&serviceMileage, "mileage", 0, "bike mileage at service, default current")
	serviceLogCmd.Flags().StringVar(&serviceNotes, "notes", "", "notes")

	serviceListCmd.Flags().IntVarP(&serviceLimit, "limit", "n", 20, "max number of results (0 for all)")

	serviceCmd.AddCommand(serviceLogCmd)
	serviceCmd.AddCommand(serviceListCmd)
	serviceCmd.AddCommand(serviceLastCmd)
	rootCmd.AddCommand(serviceCmd)
}
