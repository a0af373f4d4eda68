// ABOUTME: CLI commands for logging rides.
// ABOUTME: A ride's miles are added to the bike's total mileage.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/mtbmaint/internal/models"
)

var (
	rideDate  string
	rideNotes string
	rideLimit int
)

var rideCmd = &cobra.Command{
	Use:     "ride",
	Aliases: []string{"r", "rides"},
	Short:   "Log rides",
	Long: `Log rides against a bike. Every ride adds its miles to the bike's total,
which is what drives due maintenance.

COMMANDS:

  add    Log a ride
  list   List recent rides`,
}

var rideAddCmd = &cobra.Command{
	Use:   "add <bike> <miles>",
	Short: "Log a ride",
	Long: `Log a ride. The date defaults to today.

Examples:
  mtbmaint ride add Hightower 18.5
  mtbmaint ride add 3f2a 12 --date 2024-06-01 --notes "Demo Forest"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		distance, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid miles: %s", args[1])
		}
		if err := checkInput(struct {
			Miles float64 `validate:"gt=0"`
		}{distance}); err != nil {
			return err
		}
		date, err := parseDate(rideDate)
		if err != nil {
			return err
		}
		b, err := resolveBike(args[0])
		if err != nil {
			return err
		}

		r, err := st.AddRide(models.RideFields{
			BikeID:  b.ID,
			Mileage: distance,
			Date:    date,
			Notes:   rideNotes,
		})
		if err != nil {
			return fmt.Errorf("failed to log ride: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged %s on %s\n", miles(r.Mileage), b.Name)
		fmt.Fprintf(out, "  %s %s  total %s\n", faint.Sprint(shortID(r.ID)), r.Date, miles(b.TotalMileage+r.Mileage))
		return nil
	},
}

var rideListCmd = &cobra.Command{
	Use:     "list [bike]",
	Aliases: []string{"ls"},
	Short:   "List rides, newest first",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var rides []models.Ride
		names := map[string]string{}
		if len(args) == 1 {
			b, err := resolveBike(args[0])
			if err != nil {
				return err
			}
			rides = st.RidesForBike(b.ID)
			names[b.ID] = b.Name
		} else {
			rides = st.AllRides()
			for _, b := range st.ListBikes() {
				names[b.ID] = b.Name
			}
		}

		out := cmd.OutOrStdout()
		if len(rides) == 0 {
			fmt.Fprintln(out, "No rides logged.")
			return nil
		}
		if rideLimit > 0 && len(rides) > rideLimit {
			rides = rides[:rideLimit]
		}

		for _, r := range rides {
			notes := ""
			if r.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(r.Notes, 30))
			}
			fmt.Fprintf(out, "%s %s %s %s%s\n",
				faint.Sprint(shortID(r.ID)),
				faint.Sprint(padRight(r.Date.String(), 10)),
				padRight(truncate(names[r.BikeID], 16), 16),
				miles(r.Mileage),
				notes)
		}
		return nil
	},
}

func init() {
	rideAddCmd.Flags().StringVar(&rideDate, "date", "", "ride date (YYYY-MM-DD), default today")
	rideAddCmd.Flags().StringVar(&rideNotes, "notes", "", "notes")

	rideListCmd.Flags().IntVarP(&rideLimit, "limit", "n", 20, "max number of results (0 for all)")

	rideCmd.AddCommand(rideAddCmd)
	rideCmd.AddCommand(rideListCmd)
	rootCmd.AddCommand(rideCmd)
}
