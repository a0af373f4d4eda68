// ABOUTME: CLI command for due maintenance across the fleet or for one bike.
// ABOUTME: Overdue tasks come first; the rest follow catalog order.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harperreed/mtbmaint/internal/schedule"
	"github.com/harperreed/mtbmaint/internal/transfer"
)

var dueCmd = &cobra.Command{
	Use:   "due [bike]",
	Short: "Show overdue, due and upcoming maintenance",
	Long: `Show maintenance that needs attention, based on miles ridden since each
task was last logged.

STATUS:

  upcoming   80% of the interval or more
  due        the interval or more
  overdue    more than 120% of the interval

Tasks that have never been logged count every mile on the bike.

EXAMPLES:

  mtbmaint due              # Whole fleet
  mtbmaint due Hightower    # One bike`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var items []schedule.DueItem
		if len(args) == 1 {
			b, err := resolveBike(args[0])
			if err != nil {
				return err
			}
			items, err = st.DueForBike(b.ID, guides)
			if err != nil {
				return err
			}
		} else {
			items = st.DueAcrossFleet(guides)
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "Nothing due. All caught up.")
			return nil
		}

		for _, item := range items {
			printDueItem(out, item, len(args) == 0)
		}

		sum := schedule.Summarize(items)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s, %s, %s\n",
			statusColor(schedule.StatusOverdue).Sprintf("%d overdue", sum.Overdue),
			statusColor(schedule.StatusDue).Sprintf("%d due", sum.Due),
			statusColor(schedule.StatusUpcoming).Sprintf("%d upcoming", sum.Upcoming))
		return nil
	},
}

func printDueItem(out io.Writer, item schedule.DueItem, withBike bool) {
	bike := ""
	if withBike {
		bike = padRight(truncate(item.BikeName, 16), 16) + " "
	}
	interval := ""
	if item.Guide.IntervalMiles != nil {
		interval = transfer.FormatMiles(*item.Guide.IntervalMiles)
	}
	fmt.Fprintf(out, "  %s %s%s %s\n",
		statusColor(item.Status).Sprint(padRight(string(item.Status), 8)),
		bike,
		padRight(item.Guide.Title, 32),
		faint.Sprintf("%s / %s mi  (%s)", transfer.FormatMiles(item.MileageSinceService), interval, item.Guide.ID))
}

func init() {
	rootCmd.AddCommand(dueCmd)
}
