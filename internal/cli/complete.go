package cli

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completePackages offers manifest package names not already on the command line
func completePackages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if err := initConfig(cmd, args); err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	mgr, err := newManager(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer mgr.Close()

	var names []string
	for _, name := range mgr.Manifest().Names() {
		if slices.ContainsFunc(args, func(a string) bool { return strings.EqualFold(a, name) }) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeSinglePackage is completePackages for commands taking one name
func completeSinglePackage(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completePackages(cmd, args, toComplete)
}
