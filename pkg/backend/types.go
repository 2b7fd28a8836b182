// pkg/backend/types.go
package backend

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"github.com/arc-language/biodeps/pkg/manifest"
)

// Installer runs a manifest entry's install command through its package manager
type Installer interface {
	// Command returns the words that Install would execute
	Command(pkg *manifest.Package, opts *InstallOptions) ([]string, error)

	// Install runs the package's install command
	Install(ctx context.Context, pkg *manifest.Package, opts *InstallOptions) error

	// Available reports whether the manager's executable is on PATH
	Available() bool

	// Name returns the name of the backend
	Name() string

	// Close cleans up resources
	Close() error
}

// InstallOptions adjusts how a command is run
type InstallOptions struct {
	DryRun bool   // Print the command instead of running it
	Yes    bool   // Answer yes to conda prompts
	Env    string // Target conda environment
}

// Runner executes a command
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Config holds configuration shared by all installers
type Config struct {
	// Timeout bounds a single install command. Zero means no limit.
	Timeout time.Duration

	// Logger for structured logging
	Logger *zap.Logger

	// Runner executes commands. Defaults to an ExecRunner on Stdout/Stderr.
	Runner Runner

	// LookPath resolves executables. Defaults to exec.LookPath.
	LookPath func(string) (string, error)

	// Stdout receives dry-run output and command output
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Timeout:  30 * time.Minute,
		Logger:   zap.NewNop(),
		LookPath: exec.LookPath,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// withDefaults fills any unset field from DefaultConfig
func (c *Config) withDefaults() *Config {
	if c == nil {
		c = DefaultConfig()
	}
	out := *c
	def := DefaultConfig()
	if out.Logger == nil {
		out.Logger = def.Logger
	}
	if out.LookPath == nil {
		out.LookPath = def.LookPath
	}
	if out.Stdout == nil {
		out.Stdout = def.Stdout
	}
	if out.Stderr == nil {
		out.Stderr = def.Stderr
	}
	if out.Runner == nil {
		out.Runner = &ExecRunner{Stdout: out.Stdout, Stderr: out.Stderr}
	}
	return &out
}

func derefOpts(opts *InstallOptions) *InstallOptions {
	if opts == nil {
		return &InstallOptions{}
	}
	return opts
}
