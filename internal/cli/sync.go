package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arc-language/biodeps/pkg/core"
	"github.com/arc-language/biodeps/pkg/index"
)

var (
	syncURL   string
	syncRef   string
	syncFile  string
	syncDepth int
	syncSave  bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch the shared manifest",
	Long: `Clone the repository holding the shared manifest and cache its manifest
file. Later commands use the cached manifest unless --manifest is given.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncURL, "url", "", "repository URL (default from config)")
	syncCmd.Flags().StringVar(&syncRef, "ref", "", "branch to sync (default from config)")
	syncCmd.Flags().StringVar(&syncFile, "file", "", "manifest path inside the repository (default from config)")
	syncCmd.Flags().IntVar(&syncDepth, "depth", 1, "clone depth, 0 for full history")
	syncCmd.Flags().BoolVar(&syncSave, "save", false, "remember --url, --ref and --file in the config file")
}

func runSync(cmd *cobra.Command, args []string) error {
	opts := index.Options{
		URL:    config.Sync.URL,
		Ref:    config.Sync.Ref,
		File:   config.Sync.File,
		Depth:  syncDepth,
		Logger: logger,
	}
	if syncURL != "" {
		opts.URL = syncURL
	}
	if syncRef != "" {
		opts.Ref = syncRef
	}
	if syncFile != "" {
		opts.File = syncFile
	}
	if debug {
		opts.Progress = cmd.ErrOrStderr()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updating manifest from %s...\n", opts.URL)
	path, err := index.Sync(cmd.Context(), config.CachePath, opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), ok("Manifest cached at "+path))

	if syncSave {
		config.Sync.URL = opts.URL
		config.Sync.Ref = opts.Ref
		config.Sync.File = opts.File
		if err := core.SaveConfig(config, cfgFile); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.Debug("Saved sync settings", zap.String("url", opts.URL), zap.String("ref", opts.Ref))
	}
	return nil
}
