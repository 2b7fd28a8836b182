package index

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/arc-language/biodeps/pkg/manifest"
)

// Options says which repository and file to sync
type Options struct {
	URL      string // Repository URL or local path
	Ref      string // Branch name
	File     string // Manifest path inside the repository
	Depth    int    // Clone depth, 0 for full history
	Progress io.Writer
	Logger   *zap.Logger
}

var cachedNames = []string{"manifest.yaml", "manifest.yaml.xz", "manifest.toml", "manifest.toml.xz"}

// cachedName is the manifest file name inside the cache directory. The
// original extension is kept so the format is still detectable.
func cachedName(file string) string {
	name := "manifest.yaml"
	if manifest.FormatFromPath(file) == manifest.FormatTOML {
		name = "manifest.toml"
	}
	if strings.HasSuffix(strings.ToLower(file), ".xz") {
		name += ".xz"
	}
	return name
}

// Cached returns the synced manifest in cacheDir, if there is one
func Cached(cacheDir string) (string, bool) {
	for _, name := range cachedNames {
		path := filepath.Join(cacheDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// Sync clones the repository and copies its manifest into cacheDir. The
// manifest is validated before it replaces the cached copy.
func Sync(ctx context.Context, cacheDir string, opts Options) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.URL == "" || opts.File == "" {
		return "", fmt.Errorf("sync needs a repository URL and a manifest path")
	}

	tempDir, err := os.MkdirTemp("", "biodeps-clone-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	logger.Info("Updating manifest", zap.String("url", opts.URL), zap.String("ref", opts.Ref))

	cloneOpts := &git.CloneOptions{
		URL:          opts.URL,
		SingleBranch: true,
		Depth:        opts.Depth,
		Progress:     opts.Progress,
	}
	if opts.Ref != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Ref)
	}

	if _, err := git.PlainCloneContext(ctx, tempDir, false, cloneOpts); err != nil {
		return "", fmt.Errorf("git clone failed: %w", err)
	}

	src := filepath.Join(tempDir, filepath.FromSlash(opts.File))
	if _, err := manifest.Load(src); err != nil {
		return "", fmt.Errorf("synced manifest is invalid: %w", err)
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	dst := filepath.Join(cacheDir, cachedName(opts.File))
	if err := replaceFile(src, dst); err != nil {
		return "", fmt.Errorf("copying manifest: %w", err)
	}

	// Only one cached manifest may exist at a time.
	for _, name := range cachedNames {
		old := filepath.Join(cacheDir, name)
		if old == dst {
			continue
		}
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("removing stale manifest: %w", err)
		}
	}

	logger.Info("Manifest updated", zap.String("path", dst))
	return dst, nil
}

// replaceFile copies src next to dst and renames it into place, so dst is
// either the old file or the complete new one.
func replaceFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".manifest-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
