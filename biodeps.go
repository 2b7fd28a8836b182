// biodeps.go
package biodeps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arc-language/biodeps/pkg/backend"
	"github.com/arc-language/biodeps/pkg/index"
	"github.com/arc-language/biodeps/pkg/manifest"
	"github.com/arc-language/biodeps/pkg/platform"
	"github.com/arc-language/biodeps/pkg/probe"
	"github.com/arc-language/biodeps/pkg/registry"
)

// Re-export manifest types for convenience
type (
	Package  = manifest.Package
	Manifest = manifest.Manifest
	Issue    = manifest.Issue
	Status   = probe.Status
)

// SourceEmbedded is reported by ManifestSource for the built-in checklist
const SourceEmbedded = "embedded"

// Config configures a Manager
type Config struct {
	// ManifestPath overrides the synced and embedded manifests
	ManifestPath string

	// CachePath holds the synced manifest
	CachePath string

	// Timeout bounds each install command
	Timeout time.Duration

	// Concurrency bounds parallel PATH checks
	Concurrency int

	Logger *zap.Logger
	Stdout io.Writer
	Stderr io.Writer

	// Runner, LookPath and Platform replace the real system in tests
	Runner   backend.Runner
	LookPath func(string) (string, error)
	Platform *platform.Platform
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Timeout:     30 * time.Minute,
		Concurrency: 4,
		Logger:      zap.NewNop(),
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		LookPath:    exec.LookPath,
	}
}

// InstallOptions configures Manager.Install
type InstallOptions struct {
	Group     string // Only packages from this group
	DryRun    bool   // Print commands without running them
	Yes       bool   // Pass -y to conda
	Env       string // Target conda environment
	KeepGoing bool   // Continue after a failed install
}

// InstallResult is the outcome of one install command
type InstallResult struct {
	Package Package
	Command []string
	Err     error
}

// Manager runs the operations of the dependency checklist
type Manager struct {
	manifest *manifest.Manifest
	source   string
	config   *Config
}

// NewManager loads the manifest from, in order: the configured path, the
// synced cache, the embedded default
func NewManager(config *Config) (*Manager, error) {
	if config == nil {
		config = DefaultConfig()
	}
	def := DefaultConfig()
	if config.Logger == nil {
		config.Logger = def.Logger
	}
	if config.Stdout == nil {
		config.Stdout = def.Stdout
	}
	if config.Stderr == nil {
		config.Stderr = def.Stderr
	}
	if config.LookPath == nil {
		config.LookPath = def.LookPath
	}

	var (
		m      *manifest.Manifest
		source string
		err    error
	)

	switch {
	case config.ManifestPath != "":
		source = config.ManifestPath
		m, err = manifest.Load(source)
	default:
		path, ok := "", false
		if config.CachePath != "" {
			path, ok = index.Cached(config.CachePath)
		}
		if ok {
			source = path
			m, err = manifest.Load(path)
		} else {
			source = SourceEmbedded
			m, err = manifest.Default()
		}
	}
	if err != nil {
		return nil, &Error{Op: "load", Err: fmt.Errorf("%w: %w", ErrInvalidManifest, err)}
	}

	config.Logger.Debug("Loaded manifest",
		zap.String("source", source),
		zap.Int("groups", len(m.Groups)))

	return &Manager{
		manifest: m,
		source:   source,
		config:   config,
	}, nil
}

// Manifest returns the loaded manifest
func (m *Manager) Manifest() *manifest.Manifest {
	return m.manifest
}

// ManifestSource returns the manifest path, or SourceEmbedded
func (m *Manager) ManifestSource() string {
	return m.source
}

// Lint checks the manifest
func (m *Manager) Lint() []manifest.Issue {
	return manifest.Lint(m.manifest)
}

// Select returns the packages named, or every package when names is empty,
// restricted to group if set. Results follow manifest order and a tool
// listed under several groups is returned once.
func (m *Manager) Select(names []string, group string) ([]manifest.Package, error) {
	if group != "" {
		if _, ok := m.manifest.Group(group); !ok {
			return nil, &Error{Op: "select", Err: fmt.Errorf("group '%s' not found", group)}
		}
	}

	var candidates []manifest.Package
	for _, p := range m.manifest.Packages() {
		if group == "" || p.Group == group {
			candidates = append(candidates, p)
		}
	}

	if len(names) > 0 {
		var picked []manifest.Package
		matched := make(map[string]bool)
		for _, p := range candidates {
			for _, name := range names {
				if strings.EqualFold(p.Name, name) {
					picked = append(picked, p)
					matched[strings.ToLower(name)] = true
					break
				}
			}
		}
		for _, name := range names {
			if !matched[strings.ToLower(name)] {
				return nil, &Error{Op: "select", Package: name, Err: ErrPackageNotFound}
			}
		}
		candidates = picked
	}

	seen := make(map[string]bool)
	var out []manifest.Package
	for _, p := range candidates {
		key := strings.ToLower(p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out, nil
}

// Check reports which tools are on PATH
func (m *Manager) Check(ctx context.Context, names []string, group string, versions bool) ([]probe.Status, error) {
	pkgs, err := m.Select(names, group)
	if err != nil {
		return nil, err
	}

	statuses, err := probe.Check(ctx, pkgs, &probe.Options{
		Concurrency: m.config.Concurrency,
		Versions:    versions,
		Logger:      m.config.Logger,
		LookPath:    m.config.LookPath,
	})
	if err != nil {
		return nil, &Error{Op: "check", Err: err}
	}
	return statuses, nil
}

// Install runs the install command of each selected package in manifest
// order. It refuses to run anything while the manifest has lint issues.
func (m *Manager) Install(ctx context.Context, names []string, opts *InstallOptions) ([]InstallResult, error) {
	if opts == nil {
		opts = &InstallOptions{}
	}

	if issues := m.Lint(); len(issues) > 0 {
		return nil, &Error{Op: "install", Err: fmt.Errorf("%w: %d issue(s)", ErrLintFailed, len(issues))}
	}

	pkgs, err := m.Select(names, opts.Group)
	if err != nil {
		return nil, err
	}

	plat := m.config.Platform
	if plat == nil && !opts.DryRun {
		plat, err = platform.DetectWith(m.config.LookPath)
		if err != nil {
			return nil, &Error{Op: "install", Err: err}
		}
	}

	bcfg := &backend.Config{
		Timeout:  m.config.Timeout,
		Logger:   m.config.Logger,
		Runner:   m.config.Runner,
		LookPath: m.config.LookPath,
		Stdout:   m.config.Stdout,
		Stderr:   m.config.Stderr,
	}
	bopts := &backend.InstallOptions{
		DryRun: opts.DryRun,
		Yes:    opts.Yes,
		Env:    opts.Env,
	}

	var (
		results []InstallResult
		errs    []error
	)
	for i := range pkgs {
		pkg := pkgs[i]
		res := InstallResult{Package: pkg}

		res.Command, res.Err = m.installOne(ctx, plat, &pkg, bcfg, bopts)
		results = append(results, res)

		if res.Err != nil {
			errs = append(errs, res.Err)
			if !opts.KeepGoing {
				break
			}
		}
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
	}

	return results, errors.Join(errs...)
}

func (m *Manager) installOne(ctx context.Context, plat *platform.Platform, pkg *manifest.Package, bcfg *backend.Config, opts *backend.InstallOptions) ([]string, error) {
	var (
		inst backend.Installer
		err  error
	)
	if opts.DryRun {
		inst, err = registry.Get(pkg.Source.Manager, bcfg)
	} else {
		inst, err = platform.ResolveInstaller(plat, pkg, opts, bcfg)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrBackendNotAvailable, err)
		}
	}
	if err != nil {
		return nil, &Error{Op: "install", Package: pkg.Name, Err: err}
	}
	defer inst.Close()

	command, err := inst.Command(pkg, opts)
	if err != nil {
		return nil, &Error{Op: "install", Package: pkg.Name, Err: err}
	}

	if err := inst.Install(ctx, pkg, opts); err != nil {
		return command, &Error{Op: "install", Package: pkg.Name, Err: fmt.Errorf("%w: %w", ErrInstallFailed, err)}
	}
	return command, nil
}

// Close cleans up any resources used by the manager
func (m *Manager) Close() error {
	// Sync fails on terminals; there is nothing buffered worth reporting.
	_ = m.config.Logger.Sync()
	return nil
}
