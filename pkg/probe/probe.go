// Package probe reports which manifest tools are installed on this machine.
package probe

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arc-language/biodeps/pkg/manifest"
)

// Status is the install state of one package
type Status struct {
	Package  manifest.Package
	Paths    map[string]string // executable -> resolved path
	Missing  []string          // executables not on PATH
	Versions map[string]string // executable -> first line of --version
}

// Found reports whether every executable was found
func (s Status) Found() bool {
	return len(s.Missing) == 0
}

// Options configures Check
type Options struct {
	Concurrency int
	Versions    bool          // also run <exe> --version
	Timeout     time.Duration // per --version call
	Logger      *zap.Logger

	// LookPath and VersionOf replace exec.LookPath and running --version
	LookPath  func(string) (string, error)
	VersionOf func(ctx context.Context, path string) (string, error)
}

func (o *Options) withDefaults() *Options {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.Concurrency < 1 {
		out.Concurrency = 4
	}
	if out.Timeout <= 0 {
		out.Timeout = 10 * time.Second
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	if out.LookPath == nil {
		out.LookPath = exec.LookPath
	}
	if out.VersionOf == nil {
		out.VersionOf = versionOf
	}
	return &out
}

// Check resolves every package's executables. Results keep the order of pkgs.
func Check(ctx context.Context, pkgs []manifest.Package, opts *Options) ([]Status, error) {
	opts = opts.withDefaults()
	results := make([]Status, len(pkgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i := range pkgs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkOne(ctx, pkgs[i], opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkOne(ctx context.Context, pkg manifest.Package, opts *Options) Status {
	st := Status{
		Package: pkg,
		Paths:   make(map[string]string),
	}

	for _, exe := range pkg.Executables() {
		path, err := opts.LookPath(exe)
		if err != nil {
			st.Missing = append(st.Missing, exe)
			continue
		}
		st.Paths[exe] = path

		if !opts.Versions {
			continue
		}
		vctx, cancel := context.WithTimeout(ctx, opts.Timeout)
		v, err := opts.VersionOf(vctx, path)
		cancel()
		if err != nil {
			opts.Logger.Debug("Version probe failed", zap.String("exe", exe), zap.Error(err))
			continue
		}
		if st.Versions == nil {
			st.Versions = make(map[string]string)
		}
		st.Versions[exe] = v
	}

	opts.Logger.Debug("Checked package",
		zap.String("package", pkg.Name),
		zap.Int("found", len(st.Paths)),
		zap.Strings("missing", st.Missing))
	return st
}

// versionOf runs path --version and returns the first non-empty line.
// Several tools print their version on stderr, so both streams are read.
func versionOf(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, path, "--version").CombinedOutput()
	if err != nil && len(out) == 0 {
		return "", err
	}

	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	return "", nil
}
