// ABOUTME: CLI commands for browsing the built-in maintenance guide catalog.
// ABOUTME: 'guides' lists and filters; 'guide' prints one guide's steps.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/mtbmaint/internal/transfer"
)

var (
	guidesCategory string
	guidesSearch   string
)

var guidesCmd = &cobra.Command{
	Use:   "guides",
	Short: "List maintenance guides",
	Long: `List the built-in maintenance guides.

Guides with an interval are tracked by 'mtbmaint due'. Use the guide ID
with 'mtbmaint guide' to read the steps and with 'mtbmaint service log'
to record the work.

EXAMPLES:

  mtbmaint guides                          # Everything
  mtbmaint guides --category brakes        # One category
  mtbmaint guides --search "torque"        # Title or tool match`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkInput(struct {
			Category string `validate:"omitempty,oneof=all drivetrain brakes suspension wheels frame"`
		}{guidesCategory}); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		list := guides.Search(guidesSearch, guidesCategory)
		if len(list) == 0 {
			fmt.Fprintln(out, "No guides match.")
			return nil
		}

		for _, g := range list {
			interval := faint.Sprint("on demand")
			if g.Scheduled() {
				interval = "every " + miles(*g.IntervalMiles)
			}
			fmt.Fprintf(out, "%s %s %s %s\n",
				padRight(g.ID, 22),
				padRight(g.Title, 32),
				padRight(g.Category.DisplayName(), 16),
				interval)
		}
		return nil
	},
}

var guideCmd = &cobra.Command{
	Use:   "guide <id>",
	Short: "Show a maintenance guide",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, ok := guides.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown guide: %s (see 'mtbmaint guides')", args[0])
		}

		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		bold.Fprintln(out, g.Title)
		fmt.Fprintf(out, "  Category:    %s\n", g.Category.DisplayName())
		fmt.Fprintf(out, "  Difficulty:  %s\n", g.Difficulty)
		if g.Scheduled() {
			fmt.Fprintf(out, "  Interval:    every %s mi\n", transfer.FormatMiles(*g.IntervalMiles))
		}
		if len(g.Tools) > 0 {
			fmt.Fprintf(out, "  Tools:       %s\n", strings.Join(g.Tools, ", "))
		}
		if g.VideoURL != "" {
			fmt.Fprintf(out, "  Video:       %s\n", g.VideoURL)
		}

		fmt.Fprintln(out)
		for i, s := range g.Steps {
			bold.Fprintf(out, "%d. %s\n", i+1, s.Title)
			fmt.Fprintf(out, "   %s\n", s.Description)
		}
		return nil
	},
}

func init() {
	guidesCmd.Flags().StringVarP(&guidesCategory, "category", "c", "", "filter by category")
	guidesCmd.Flags().StringVarP(&guidesSearch, "search", "s", "", "search titles and tools")
	rootCmd.AddCommand(guidesCmd)
	rootCmd.AddCommand(guideCmd)
}
