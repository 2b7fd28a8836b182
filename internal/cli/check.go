package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/biodeps"
)

var (
	checkGroup    string
	checkVersions bool
)

var checkCmd = &cobra.Command{
	Use:   "check [package...]",
	Short: "Report which tools are installed",
	Long: `Look up each package's executables on PATH. Exits non-zero when any
are missing.

Examples:
  biodeps check
  biodeps check samtools minimap2 --version
  biodeps check --group species_minion.py`,
	RunE: runCheck,

	ValidArgsFunction: completePackages,
}

func init() {
	checkCmd.Flags().StringVar(&checkGroup, "group", "", "only check this group")
	checkCmd.Flags().BoolVar(&checkVersions, "version", false, "also print each tool's --version")
}

func runCheck(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	statuses, err := mgr.Check(cmd.Context(), args, checkGroup, checkVersions)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	missing := 0
	for _, st := range statuses {
		if !st.Found() {
			missing++
			fmt.Fprintln(out, fail(fmt.Sprintf("%s  missing: %s", st.Package.Name, strings.Join(st.Missing, ", "))))
			continue
		}

		fmt.Fprintln(out, ok(st.Package.Name))
		exes := make([]string, 0, len(st.Paths))
		for exe := range st.Paths {
			exes = append(exes, exe)
		}
		sort.Strings(exes)
		for _, exe := range exes {
			line := fmt.Sprintf("    %s  %s", exe, st.Paths[exe])
			if v, found := st.Versions[exe]; found {
				line += "  (" + v + ")"
			}
			fmt.Fprintln(out, dimStyle.Render(line))
		}
	}

	if missing > 0 {
		return fmt.Errorf("%w: %d of %d packages", biodeps.ErrMissingTools, missing, len(statuses))
	}
	return nil
}
