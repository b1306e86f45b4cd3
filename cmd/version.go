package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the migration tool's release version, set by the build
// process via -ldflags; "dev" is the unreleased/local-build default.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the zewif-migrate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("zewif-migrate version", Version)
	},
}
