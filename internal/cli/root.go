// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arc-language/biodeps"
	"github.com/arc-language/biodeps/pkg/core"
)

var (
	cfgFile      string
	manifestPath string
	debug        bool
	config       *core.Config
	logger       *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "biodeps",
	Short: "Bioinformatics dependency checklist",
	Long: `biodeps - Bioinformatics dependency checklist

Keeps the list of third-party tools the MinION pipeline scripts depend on,
together with the package-manager command that installs or upgrades each one.
Lint the list, see what is installed, and run the commands you choose.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute executes the root command, cancelling on SIGINT/SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/biodeps/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "manifest file (.yaml, .toml, optionally .xz)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if manifestPath != "" {
		config.Manifest = manifestPath
	}
	if debug {
		config.Debug = true
	}

	logger, err = newLogger(config.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// newManager builds a manager from the loaded config, writing to cmd's streams
func newManager(cmd *cobra.Command) (*biodeps.Manager, error) {
	mgr, err := biodeps.NewManager(&biodeps.Config{
		ManifestPath: config.Manifest,
		CachePath:    config.CachePath,
		Timeout:      config.Timeout,
		Concurrency:  config.Concurrency,
		Logger:       logger,
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Using manifest", zap.String("source", mgr.ManifestSource()))
	return mgr, nil
}
