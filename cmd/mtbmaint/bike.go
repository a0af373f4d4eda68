// ABOUTME: CLI commands for managing bikes.
// ABOUTME: Supports add, list, show, edit, and delete subcommands.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/mtbmaint/internal/models"
	"github.com/harperreed/mtbmaint/internal/schedule"
)

var (
	bikeMake    string
	bikeModel   string
	bikeYear    int
	bikeMileage float64
	bikeNotes   string
	bikeName    string
)

type bikeInput struct {
	Name    string  `validate:"required"`
	Year    int     `validate:"omitempty,min=1900,max=2100"`
	Mileage float64 `validate:"min=0"`
}

var bikeCmd = &cobra.Command{
	Use:     "bike",
	Aliases: []string{"b", "bikes"},
	Short:   "Manage bikes",
	Long: `Track the bikes in your fleet.

Each bike carries a total mileage that grows as you log rides, a list of
installed components, and a service history.

COMMANDS:

  add      Add a bike
  list     List bikes with mileage and due maintenance
  show     View a bike with components, due tasks and history
  edit     Change a bike's details or correct its mileage
  delete   Delete a bike with its service logs and rides`,
}

var bikeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a bike",
	Long: `Add a bike to track.

Examples:
  mtbmaint bike add Hightower --make "Santa Cruz" --model Hightower --year 2021
  mtbmaint bike add Commuter --mileage 812.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(bikeInput{Name: args[0], Year: bikeYear, Mileage: bikeMileage}); err != nil {
			return err
		}

		b, err := st.CreateBike(models.BikeFields{
			Name:         args[0],
			Make:         bikeMake,
			Model:        bikeModel,
			Year:         models.Year(bikeYear),
			TotalMileage: bikeMileage,
			Notes:        bikeNotes,
		})
		if err != nil {
			return fmt.Errorf("failed to add bike: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Added bike %s\n", b.Name)
		fmt.Fprintf(out, "  ID: %s\n", shortID(b.ID))
		if desc := b.Describe(); desc != "" {
			fmt.Fprintf(out, "  %s\n", desc)
		}
		return nil
	},
}

var bikeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List bikes",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		bikes := st.ListBikes()
		if len(bikes) == 0 {
			fmt.Fprintln(out, "No bikes found. Add one with 'mtbmaint bike add <name>'.")
			return nil
		}

		for _, b := range bikes {
			items, err := st.DueForBike(b.ID, guides)
			if err != nil {
				return err
			}
			sum := schedule.Summarize(items)
			attention := ""
			switch {
			case sum.Overdue > 0:
				attention = statusColor(schedule.StatusOverdue).Sprintf("%d overdue", sum.Overdue)
			case sum.Due > 0:
				attention = statusColor(schedule.StatusDue).Sprintf("%d due", sum.Due)
			case sum.Upcoming > 0:
				attention = statusColor(schedule.StatusUpcoming).Sprintf("%d upcoming", sum.Upcoming)
			}
			fmt.Fprintf(out, "%s %s %s %s %s\n",
				faint.Sprint(shortID(b.ID)),
				padRight(truncate(b.Name, 20), 20),
				padRight(miles(b.TotalMileage), 12),
				faint.Sprintf("%d components", len(b.Components)),
				attention)
		}
		return nil
	},
}

var bikeShowCmd = &cobra.Command{
	Use:   "show <bike>",
	Short: "Show a bike with components, due tasks and history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := resolveBike(args[0])
		if err != nil {
			return err
		}
		items, err := st.DueForBike(b.ID, guides)
		if err != nil {
			return err
		}
		printBike(cmd.OutOrStdout(), b, items, st.LogsForBike(b.ID), st.RidesForBike(b.ID))
		return nil
	},
}

func printBike(out io.Writer, b models.Bike, items []schedule.DueItem, logs []models.MaintenanceLog, rides []models.Ride) {
	bold := color.New(color.Bold)
	bold.Fprintf(out, "%s\n", b.Name)
	fmt.Fprintf(out, "  ID:       %s\n", b.ID)
	if desc := b.Describe(); desc != "" {
		fmt.Fprintf(out, "  Bike:     %s\n", desc)
	}
	fmt.Fprintf(out, "  Mileage:  %s\n", miles(b.TotalMileage))
	if b.Notes != "" {
		fmt.Fprintf(out, "  Notes:    %s\n", b.Notes)
	}

	fmt.Fprintln(out)
	bold.Fprintln(out, "Components")
	if len(b.Components) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for _, c := range b.Components {
		fmt.Fprintf(out, "  %s %s %s %s\n",
			faint.Sprint(shortID(c.ID)),
			padRight(truncate(c.Name, 24), 24),
			padRight(c.Category.DisplayName(), 16),
			faint.Sprintf("%s since install", miles(c.MileageOn(b.TotalMileage))))
	}

	fmt.Fprintln(out)
	bold.Fprintln(out, "Due")
	if len(items) == 0 {
		fmt.Fprintln(out, "  nothing due")
	}
	for _, item := range items {
		printDueItem(out, item, false)
	}

	fmt.Fprintln(out)
	bold.Fprintln(out, "Recent services")
	if len(logs) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for i, l := range logs {
		if i == 5 {
			break
		}
		fmt.Fprintf(out, "  %s %s %s\n", faint.Sprint(l.Date.String()), padRight(l.TaskName, 28), miles(l.MileageAtService))
	}

	fmt.Fprintln(out)
	bold.Fprintln(out, "Recent rides")
	if len(rides) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for i, r := range rides {
		if i == 5 {
			break
		}
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint(r.Date.String()), miles(r.Mileage))
	}
}

var bikeEditCmd = &cobra.Command{
	Use:   "edit <bike>",
	Short: "Edit a bike",
	Long: `Change a bike's details. Only the flags you pass are changed.

Examples:
  mtbmaint bike edit Hightower --name "Big Red"
  mtbmaint bike edit 3f2a --mileage 1250     # Correct the odometer`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := resolveBike(args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		var patch models.BikePatch
		in := bikeInput{Name: b.Name, Year: int(b.Year), Mileage: b.TotalMileage}
		if flags.Changed("name") {
			patch.Name = &bikeName
			in.Name = bikeName
		}
		if flags.Changed("make") {
			patch.Make = &bikeMake
		}
		if flags.Changed("model") {
			patch.Model = &bikeModel
		}
		if flags.Changed("year") {
			y := models.Year(bikeYear)
			patch.Year = &y
			in.Year = bikeYear
		}
		if flags.Changed("mileage") {
			patch.TotalMileage = &bikeMileage
			in.Mileage = bikeMileage
		}
		if flags.Changed("notes") {
			patch.Notes = &bikeNotes
		}
		if err := checkInput(in); err != nil {
			return err
		}

		if err := st.UpdateBike(b.ID, patch); err != nil {
			return fmt.Errorf("failed to update bike: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", in.Name)
		return nil
	},
}

var bikeDeleteCmd = &cobra.Command{
	Use:     "delete <bike>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a bike",
	Long: `Delete a bike by name, ID or ID prefix.

CAUTION:

  This also deletes the bike's components, service logs and rides.
  There is no undo; export a backup first if unsure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := resolveBike(args[0])
		if err != nil {
			return err
		}
		if err := st.DeleteBike(b.ID); err != nil {
			return fmt.Errorf("failed to delete bike: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted %s\n", b.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", faint.Sprint(shortID(b.ID)))
		return nil
	},
}

func init() {
	bikeAddCmd.Flags().StringVar(&bikeMake, "make", "", "manufacturer")
	bikeAddCmd.Flags().StringVar(&bikeModel, "model", "", "model name")
	bikeAddCmd.Flags().IntVar(&bikeYear, "year", 0, "model year")
	bikeAddCmd.Flags().Float64Var(&bikeMileage, "mileage", 0, "starting mileage")
	bikeAddCmd.Flags().StringVar(&bikeNotes, "notes", "", "notes")

	bikeEditCmd.Flags().StringVar(&bikeName, "name", "", "new name")
	bikeEditCmd.Flags().StringVar(&bikeMake, "make", "", "manufacturer")
	bikeEditCmd.Flags().StringVar(&bikeModel, "model", "", "model name")
	bikeEditCmd.Flags().IntVar(&bikeYear, "year", 0, "model year")
	bikeEditCmd.Flags().Float64Var(&bikeMileage, "mileage", 0, "total mileage")
	bikeEditCmd.Flags().StringVar(&bikeNotes, "notes", "", "notes")

	bikeCmd.AddCommand(bikeAddCmd)
	bikeCmd.AddCommand(bikeListCmd)
	bikeCmd.AddCommand(bikeShowCmd)
	bikeCmd.AddCommand(bikeEditCmd)
	bikeCmd.AddCommand(bikeDeleteCmd)
	rootCmd.AddCommand(bikeCmd)
}
