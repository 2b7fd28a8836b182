// pkg/manifest/types.go
package manifest

import (
	"strings"
)

// Manager names the package manager a package is obtained from
type Manager string

const (
	// ManagerConda installs from conda channels
	ManagerConda Manager = "conda"
	// ManagerMamba is the conda-compatible mamba frontend
	ManagerMamba Manager = "mamba"
	// ManagerMicromamba is the standalone micromamba binary
	ManagerMicromamba Manager = "micromamba"
	// ManagerPip installs Python packages
	ManagerPip Manager = "pip"
	// ManagerShell runs the command as-is
	ManagerShell Manager = "shell"
)

// Managers lists every manager a manifest may declare
var Managers = []Manager{ManagerConda, ManagerMamba, ManagerMicromamba, ManagerPip, ManagerShell}

// Valid reports whether m is a known manager
func (m Manager) Valid() bool {
	for _, known := range Managers {
		if m == known {
			return true
		}
	}
	return false
}

// CondaFamily reports whether m resolves packages from conda channels
func (m Manager) CondaFamily() bool {
	return m == ManagerConda || m == ManagerMamba || m == ManagerMicromamba
}

// Source is where a package comes from
type Source struct {
	Manager  Manager  `yaml:"manager" toml:"manager"`
	Channels []string `yaml:"channels,omitempty" toml:"channels,omitempty"`
}

// Package is a single reference to an external tool
type Package struct {
	Name     string   `yaml:"name" toml:"name"`
	Source   *Source  `yaml:"source,omitempty" toml:"source,omitempty"`
	Command  string   `yaml:"install_command" toml:"install_command"`
	Binaries []string `yaml:"binaries,omitempty" toml:"binaries,omitempty"`

	// Group is the script that depends on the package. Filled in by Packages.
	Group string `yaml:"-" toml:"-"`
}

// Executables returns the programs the package is expected to put on PATH.
// Without an explicit list the lowercased name up to the first '/' is used.
func (p *Package) Executables() []string {
	if len(p.Binaries) > 0 {
		return p.Binaries
	}
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return nil
	}
	return []string{name}
}

// Group collects the packages one pipeline script depends on
type Group struct {
	Name        string    `yaml:"name" toml:"name"`
	Description string    `yaml:"description,omitempty" toml:"description,omitempty"`
	Source      Source    `yaml:"source" toml:"source"`
	Packages    []Package `yaml:"packages" toml:"packages"`
}

// Manifest is the full dependency checklist
type Manifest struct {
	Version int     `yaml:"version" toml:"version"`
	Groups  []Group `yaml:"groups" toml:"groups"`
}

// Packages returns every package in document order with its effective
// source and group filled in.
func (m *Manifest) Packages() []Package {
	var out []Package
	for _, g := range m.Groups {
		for _, p := range g.Packages {
			p.Group = g.Name
			if p.Source == nil {
				src := g.Source
				p.Source = &src
			}
			out = append(out, p)
		}
	}
	return out
}

// Find returns every occurrence of name, ignoring case
func (m *Manifest) Find(name string) []Package {
	var out []Package
	for _, p := range m.Packages() {
		if strings.EqualFold(p.Name, name) {
			out = append(out, p)
		}
	}
	return out
}

// Group returns the group with the given name
func (m *Manifest) Group(name string) (*Group, bool) {
	for i := range m.Groups {
		if m.Groups[i].Name == name {
			return &m.Groups[i], true
		}
	}
	return nil, false
}

// Names returns the distinct package names in document order
func (m *Manifest) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range m.Packages() {
		key := strings.ToLower(p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, p.Name)
	}
	return names
}
