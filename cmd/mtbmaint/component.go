// ABOUTME: CLI commands for a bike's components.
// ABOUTME: Supports add, edit, and delete; components are listed by 'bike show'.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/mtbmaint/internal/models"
)

var (
	componentCategory string
	componentDate     string
	componentMileage  float64
	componentNotes    string
	componentName     string
)

type componentInput struct {
	Name     string  `validate:"required"`
	Category string  `validate:"required,oneof=drivetrain brakes suspension wheels frame"`
	Mileage  float64 `validate:"min=0"`
}

var componentCmd = &cobra.Command{
	Use:     "component",
	Aliases: []string{"comp", "c"},
	Short:   "Manage a bike's components",
	Long: `Track installed parts: chains, cassettes, forks, brake pads, tires.

A component remembers the bike's mileage when it was installed, so
'mtbmaint bike show' can tell you how far each part has gone.

CATEGORIES:

  drivetrain, brakes, suspension, wheels, frame`,
}

var componentAddCmd = &cobra.Command{
	Use:   "add <bike> <name>",
	Short: "Install a component on a bike",
	Long: `Install a component on a bike. The install date defaults to today and the
install mileage to the bike's current mileage.

Examples:
  mtbmaint component add Hightower "SRAM GX chain" --category drivetrain
  mtbmaint component add Hightower "Fox 36" -c suspension --date 2024-03-01 --mileage 0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(componentInput{Name: args[1], Category: componentCategory, Mileage: componentMileage}); err != nil {
			return err
		}
		date, err := parseDate(componentDate)
		if err != nil {
			return err
		}
		b, err := resolveBike(args[0])
		if err != nil {
			return err
		}

		fields := models.ComponentFields{
			Name:          args[1],
			Category:      models.Category(componentCategory),
			InstalledDate: date,
			Notes:         componentNotes,
		}
		if cmd.Flags().Changed("mileage") {
			fields.InstalledMileage = &componentMileage
		}

		c, err := st.AddComponent(b.ID, fields)
		if err != nil {
			return fmt.Errorf("failed to add component: %w", err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Installed %s on %s\n", c.Name, b.Name)
		fmt.Fprintf(out, "  %s %s at %s\n", faint.Sprint(shortID(c.ID)), c.InstalledDate, miles(c.InstalledMileage))
		return nil
	},
}

var componentEditCmd = &cobra.Command{
	Use:   "edit <bike> <component>",
	Short: "Edit a component",
	Long: `Change a component's details. Only the flags you pass are changed.

Examples:
  mtbmaint component edit Hightower 9c1e --name "SRAM X01 chain"
  mtbmaint component edit Hightower 9c1e --mileage 0 --date 2024-06-01`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := resolveBike(args[0])
		if err != nil {
			return err
		}
		c, err := st.FindComponent(b.ID, args[1])
		if err != nil {
			return fmt.Errorf("component not found: %s", args[1])
		}

		flags := cmd.Flags()
		var patch models.ComponentPatch
		in := componentInput{Name: c.Name, Category: string(c.Category), Mileage: c.InstalledMileage}
		if flags.Changed("name") {
			patch.Name = &componentName
			in.Name = componentName
		}
		if flags.Changed("category") {
			cat := models.Category(componentCategory)
			patch.Category = &cat
			in.Category = componentCategory
		}
		if flags.Changed("date") {
			d, err := parseDate(componentDate)
			if err != nil {
				return err
			}
			patch.InstalledDate = &d
		}
		if flags.Changed("mileage") {
			patch.InstalledMileage = &componentMileage
			in.Mileage = componentMileage
		}
		if flags.Changed("notes") {
			patch.Notes = &componentNotes
		}
		if err := checkInput(in); err != nil {
			return err
		}

		if err := st.UpdateComponent(b.ID, c.ID, patch); err != nil {
			return fmt.Errorf("failed to update component: %w", err)
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Updated %s\n", in.Name)
		return nil
	},
}

var componentDeleteCmd = &cobra.Command{
	Use:     "delete <bike> <component>",
	Aliases: []string{"del", "rm"},
	Short:   "Remove a component from a bike",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := resolveBike(args[0])
		if err != nil {
			return err
		}
		c, err := st.FindComponent(b.ID, args[1])
		if err != nil {
			return fmt.Errorf("component not found: %s", args[1])
		}
		if err := st.DeleteComponent(b.ID, c.ID); err != nil {
			return fmt.Errorf("failed to delete component: %w", err)
		}
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Removed %s from %s\n", c.Name, b.Name)
		return nil
	},
}

func init() {
	componentAddCmd.Flags().StringVarP(&componentCategory, "category", "c", "", "category (drivetrain, brakes, suspension, wheels, frame)")
	componentAddCmd.Flags().StringVar(&componentDate, "date", "", "install date (YYYY-MM-DD), default today")
	componentAddCmd.Flags().Float64Var(&componentMileage, "mileage", 0, "bike mileage at install, default current")
	componentAddCmd.Flags().StringVar(&componentNotes, "notes", "", "notes")

	componentEditCmd.Flags().StringVar(&componentName, "name", "", "new name")
	componentEditCmd.Flags().StringVarP(&componentCategory, "category", "c", "", "category")
	componentEditCmd.Flags().StringVar(&componentDate, "date", "", "install date (YYYY-MM-DD)")
	componentEditCmd.Flags().Float64Var(&componentMileage, "mileage", 0, "bike mileage at install")
	componentEditCmd.Flags().StringVar(&componentNotes, "notes", "", "notes")

	componentCmd.AddCommand(componentAddCmd)
	componentCmd.AddCommand(componentEditCmd)
	componentCmd.AddCommand(componentDeleteCmd)
	rootCmd.AddCommand(componentCmd)
}
