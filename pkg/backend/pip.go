// pkg/backend/pip.go
package backend

import (
	"context"

	"github.com/arc-language/biodeps/pkg/manifest"
)

// PipInstaller implements the Installer interface for pip
type PipInstaller struct {
	base
}

// NewPipInstaller creates a pip installer
func NewPipInstaller(config *Config) (*PipInstaller, error) {
	return &PipInstaller{
		base: base{
			name:   string(manifest.ManagerPip),
			exe:    "pip",
			config: config.withDefaults(),
		},
	}, nil
}

// Available accepts either pip or pip3
func (b *PipInstaller) Available() bool {
	if b.base.Available() {
		return true
	}
	_, err := b.config.LookPath("pip3")
	return err == nil
}

// Command returns the manifest command. With an environment the command is
// wrapped in "conda run -n <env>" so pip installs into that environment.
func (b *PipInstaller) Command(pkg *manifest.Package, opts *InstallOptions) ([]string, error) {
	opts = derefOpts(opts)
	words, err := b.words(pkg)
	if err != nil {
		return nil, err
	}

	if opts.Env != "" {
		words = append([]string{"conda", "run", "-n", opts.Env}, words...)
	}
	return words, nil
}

// Install runs the pip command
func (b *PipInstaller) Install(ctx context.Context, pkg *manifest.Package, opts *InstallOptions) error {
	opts = derefOpts(opts)
	words, err := b.Command(pkg, opts)
	if err != nil {
		return err
	}
	return b.run(ctx, pkg, words, opts)
}
