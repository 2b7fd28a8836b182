package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/biodeps/pkg/platform"
	"github.com/arc-language/biodeps/pkg/registry"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available package managers",
	Long:  `List the package managers found on this system.`,
	Args:  cobra.NoArgs,
	RunE:  runBackends,
}

func runBackends(cmd *cobra.Command, args []string) error {
	plat, err := platform.Detect()
	if err != nil {
		return fmt.Errorf("detecting platform: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Platform: %s/%s\n\n", plat.OS, plat.Arch)
	fmt.Fprintf(out, "Available package managers:\n")
	for _, name := range plat.Available {
		marker := " "
		if name == plat.Preferred {
			marker = "*"
		}
		fmt.Fprintf(out, "  %s %s\n", marker, name)
	}

	if plat.Preferred != "" {
		fmt.Fprintf(out, "\n* = preferred conda frontend\n")
	}

	fmt.Fprintf(out, "\nSupported managers: %v\n", registry.Available())

	return nil
}
