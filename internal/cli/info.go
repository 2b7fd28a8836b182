// internal/cli/info.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/biodeps"
)

var infoCmd = &cobra.Command{
	Use:   "info [package]",
	Short: "Show information about a package",
	Long:  `Display every manifest entry for a package, one per group that lists it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,

	ValidArgsFunction: completeSinglePackage,
}

func runInfo(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	found := mgr.Manifest().Find(args[0])
	if len(found) == 0 {
		return &biodeps.Error{Op: "info", Package: args[0], Err: biodeps.ErrPackageNotFound}
	}

	out := cmd.OutOrStdout()
	for i, p := range found {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "Package:  %s\n", p.Name)
		fmt.Fprintf(out, "Group:    %s\n", p.Group)
		fmt.Fprintf(out, "Manager:  %s\n", p.Source.Manager)
		if len(p.Source.Channels) > 0 {
			fmt.Fprintf(out, "Channels: %s\n", strings.Join(p.Source.Channels, ", "))
		}
		fmt.Fprintf(out, "Command:  %s\n", p.Command)
		fmt.Fprintf(out, "Binaries: %s\n", strings.Join(p.Executables(), ", "))
	}

	return nil
}
