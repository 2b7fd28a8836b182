// internal/cli/list.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/biodeps/pkg/manifest"
)

var listGroup string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages and their install commands",
	Long:  `List every package in the manifest, grouped by the script that depends on it.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listGroup, "group", "", "only list this group")
}

func runList(cmd *cobra.Command, args []string) error {
	mgr, err := newManager(cmd)
	if err != nil {
		return err
	}
	defer mgr.Close()

	m := mgr.Manifest()
	out := cmd.OutOrStdout()

	groups := m.Groups
	if listGroup != "" {
		g, found := m.Group(listGroup)
		if !found {
			return fmt.Errorf("group '%s' not found", listGroup)
		}
		groups = []manifest.Group{*g}
	}

	width := 0
	for _, p := range m.Packages() {
		width = max(width, len(p.Name))
	}

	fmt.Fprintf(out, "Manifest: %s\n", mgr.ManifestSource())
	for _, g := range groups {
		fmt.Fprintln(out)
		header := headerStyle.Render(g.Name)
		if g.Description != "" {
			header += dimStyle.Render("  " + g.Description)
		}
		fmt.Fprintln(out, header)

		single := &manifest.Manifest{Groups: []manifest.Group{g}}
		for _, p := range single.Packages() {
			fmt.Fprintf(out, "  %s %s %s\n",
				pad(p.Name, width),
				pad(string(p.Source.Manager), 10),
				p.Command)
		}
	}

	return nil
}
