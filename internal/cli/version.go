// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "biodeps version %s\n", rootCmd.Version)
		fmt.Fprintln(out, "Bioinformatics dependency checklist")
		fmt.Fprintln(out, "https://github.com/arc-language/biodeps")
	},
}
