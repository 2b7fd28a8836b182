// internal/cli/install.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/biodeps"
)

var (
	installGroup     string
	installDryRun    bool
	installYes       bool
	installEnv       string
	installKeepGoing bool
)

var installCmd = &cobra.Command{
	Use:   "install [package...]",
	Short: "Run the install command of one or more packages",
	Long: `Run the manifest's install/upgrade command for each package, in manifest
order. With no arguments every package is installed. Nothing runs while the
manifest has lint issues.

Examples:
  biodeps install samtools
  biodeps install --group varcal_minion.py --yes
  biodeps install --dry-run
  biodeps install nanopack --env ont`,
	RunE: runInstall,

	ValidArgsFunction: completePackages,
}

func init() {
	installCmd.Flags().StringVar(&installGroup, "group", "", "only install this group")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "print commands without running them")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "answer yes to conda prompts")
	installCmd.Flags().StringVar(&installEnv, "env", "", "target conda environment (default from config)")
	installCmd.Flags().BoolVar(&installKeepGoing, "keep-going", false, "continue after a failed install")
}

func runInstall(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	env := installEnv
	if env == "" {
		env = config.DefaultEnv
	}

	out := cmd.OutOrStdout()
	if !installDryRun {
		fmt.Fprintf(out, "Manifest: %s\n", mgr.ManifestSource())
	}

	results, err := mgr.Install(cmd.Context(), args, &biodeps.InstallOptions{
		Group:     installGroup,
		DryRun:    installDryRun,
		Yes:       installYes,
		Env:       env,
		KeepGoing: installKeepGoing,
	})

	if !installDryRun {
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), fail(fmt.Sprintf("Failed to install %s: %v", res.Package.Name, res.Err)))
				continue
			}
			fmt.Fprintln(out, ok(fmt.Sprintf("Successfully installed %s", res.Package.Name)))
		}
	}

	return err
}
