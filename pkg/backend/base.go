// pkg/backend/base.go
package backend

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arc-language/biodeps/pkg/manifest"
)

// base carries what every installer shares
type base struct {
	name   string
	exe    string
	config *Config
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Available() bool {
	_, err := b.config.LookPath(b.exe)
	return err == nil
}

func (b *base) Close() error {
	return nil
}

// words splits the package's command and checks it is non-empty
func (b *base) words(pkg *manifest.Package) ([]string, error) {
	if pkg == nil {
		return nil, fmt.Errorf("package cannot be nil")
	}
	words, err := manifest.SplitCommand(pkg.Command)
	if err != nil {
		return nil, fmt.Errorf("parsing install command for %s: %w", pkg.Name, err)
	}
	return words, nil
}

// run executes words for pkg, or only prints them on a dry run
func (b *base) run(ctx context.Context, pkg *manifest.Package, words []string, opts *InstallOptions) error {
	log := b.config.Logger.With(
		zap.String("backend", b.name),
		zap.String("package", pkg.Name),
		zap.String("group", pkg.Group),
	)

	if opts.DryRun {
		log.Debug("Dry run", zap.Strings("command", words))
		fmt.Fprintf(b.config.Stdout, "+ %s\n", strings.Join(words, " "))
		return nil
	}

	if b.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.config.Timeout)
		defer cancel()
	}

	log.Info("Running install command", zap.Strings("command", words))
	if err := b.config.Runner.Run(ctx, words[0], words[1:]...); err != nil {
		log.Warn("Install command failed", zap.Error(err))
		return err
	}
	log.Debug("Install command finished")
	return nil
}

// hasFlag reports whether any of flags appears in args, alone or as flag=value
func hasFlag(args []string, flags ...string) bool {
	for _, a := range args {
		for _, f := range flags {
			if a == f || strings.HasPrefix(a, f+"=") {
				return true
			}
		}
	}
	return false
}
