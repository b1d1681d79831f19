package cli

import (
	"fmt"

	"github.com/eleven-am/listkeeper/pkg/listkeeper"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display listkeeper version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), listkeeper.FullVersionInfo())
	},
}
