// ABOUTME: CLI command printing the mtbmaint version.
// ABOUTME: Runs without opening storage.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mtbmaint %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
