package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/autoskills/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  userArgs(cobra.NoArgs),
	Run: func(c *cobra.Command, _ []string) {
		fmt.Fprint(c.OutOrStdout(), cmd.BuildInfo("autoskills"))
	},
}
