// pkg/backend/shell.go
package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/arc-language/biodeps/pkg/manifest"
)

// ShellInstaller runs the command through /bin/sh unchanged
type ShellInstaller struct {
	base
}

// NewShellInstaller creates a shell installer
func NewShellInstaller(config *Config) (*ShellInstaller, error) {
	return &ShellInstaller{
		base: base{
			name:   string(manifest.ManagerShell),
			exe:    "sh",
			config: config.withDefaults(),
		},
	}, nil
}

// Command returns sh -c <command>. Options other than DryRun do not apply.
func (b *ShellInstaller) Command(pkg *manifest.Package, opts *InstallOptions) ([]string, error) {
	if pkg == nil {
		return nil, fmt.Errorf("package cannot be nil")
	}
	command := strings.TrimSpace(pkg.Command)
	if command == "" {
		return nil, fmt.Errorf("parsing install command for %s: empty command", pkg.Name)
	}
	return []string{"sh", "-c", command}, nil
}

// Install runs the shell command
func (b *ShellInstaller) Install(ctx context.Context, pkg *manifest.Package, opts *InstallOptions) error {
	opts = derefOpts(opts)
	words, err := b.Command(pkg, opts)
	if err != nil {
		return err
	}
	return b.run(ctx, pkg, words, opts)
}
