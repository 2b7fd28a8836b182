// pkg/manifest/manifest.go
package manifest

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultManifest []byte

// Format is the encoding of a manifest file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension, ignoring a
// trailing .xz. Anything that is not .toml is treated as YAML.
func FormatFromPath(path string) Format {
	path = strings.TrimSuffix(strings.ToLower(path), ".xz")
	if filepath.Ext(path) == ".toml" {
		return FormatTOML
	}
	return FormatYAML
}

// Default returns the checklist shipped with biodeps
func Default() (*Manifest, error) {
	return Parse(defaultManifest, FormatYAML)
}

// Parse decodes a manifest
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("parsing toml manifest: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing yaml manifest: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", format)
	}

	if len(m.Groups) == 0 {
		return nil, fmt.Errorf("manifest has no groups")
	}

	return &m, nil
}

// Load reads a manifest file. Files ending in .xz are decompressed first.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".xz") {
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating xz reader: %w", err)
		}
		r = xzReader
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	m, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
