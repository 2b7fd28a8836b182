package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/biodeps"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Check that the manifest is well-formed",
	Long: `Check that every package has exactly one install command, that each
command invokes the declared package manager with the declared channels, and
that a package listed twice uses the same command both times.`,
	Args: cobra.NoArgs,
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	out := cmd.OutOrStdout()
	issues := mgr.Lint()
	if len(issues) == 0 {
		fmt.Fprintln(out, ok(fmt.Sprintf("%s: %d packages, no issues", mgr.ManifestSource(), len(mgr.Manifest().Packages()))))
		return nil
	}

	for _, issue := range issues {
		fmt.Fprintln(out, fail(issue.Error()))
	}
	return fmt.Errorf("%w: %d issue(s)", biodeps.ErrLintFailed, len(issues))
}
