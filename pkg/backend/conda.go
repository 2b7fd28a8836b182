// pkg/backend/conda.go
package backend

import (
	"context"
	"fmt"

	"github.com/arc-language/biodeps/pkg/manifest"
)

// CondaInstaller implements the Installer interface for conda, mamba and
// micromamba
type CondaInstaller struct {
	base
}

// NewCondaInstaller creates an installer for a conda-family manager
func NewCondaInstaller(manager manifest.Manager, config *Config) (*CondaInstaller, error) {
	if !manager.CondaFamily() {
		return nil, errNotCondaFamily(manager)
	}
	return &CondaInstaller{
		base: base{
			name:   string(manager),
			exe:    string(manager),
			config: config.withDefaults(),
		},
	}, nil
}

// Command returns the manifest command with -y and -n <env> added when
// requested and not already present
func (b *CondaInstaller) Command(pkg *manifest.Package, opts *InstallOptions) ([]string, error) {
	opts = derefOpts(opts)
	words, err := b.words(pkg)
	if err != nil {
		return nil, err
	}

	if opts.Yes && !hasFlag(words[1:], "-y", "--yes") {
		words = append(words, "-y")
	}
	if opts.Env != "" && !hasFlag(words[1:], "-n", "--name", "-p", "--prefix") {
		words = append(words, "-n", opts.Env)
	}
	return words, nil
}

// Install runs the conda command
func (b *CondaInstaller) Install(ctx context.Context, pkg *manifest.Package, opts *InstallOptions) error {
	opts = derefOpts(opts)
	words, err := b.Command(pkg, opts)
	if err != nil {
		return err
	}
	return b.run(ctx, pkg, words, opts)
}

func errNotCondaFamily(m manifest.Manager) error {
	return fmt.Errorf("%s is not a conda-family manager", m)
}
