package registry

import (
	"fmt"
	"sort"

	"github.com/arc-language/biodeps/pkg/backend"
	"github.com/arc-language/biodeps/pkg/manifest"
)

// Factory builds an installer from shared configuration
type Factory func(config *backend.Config) (backend.Installer, error)

var factories = map[manifest.Manager]Factory{
	manifest.ManagerConda:      condaFactory(manifest.ManagerConda),
	manifest.ManagerMamba:      condaFactory(manifest.ManagerMamba),
	manifest.ManagerMicromamba: condaFactory(manifest.ManagerMicromamba),
	manifest.ManagerPip: func(config *backend.Config) (backend.Installer, error) {
		return backend.NewPipInstaller(config)
	},
	manifest.ManagerShell: func(config *backend.Config) (backend.Installer, error) {
		return backend.NewShellInstaller(config)
	},
}

func condaFactory(m manifest.Manager) Factory {
	return func(config *backend.Config) (backend.Installer, error) {
		return backend.NewCondaInstaller(m, config)
	}
}

// Get returns the installer for a manager
func Get(manager manifest.Manager, config *backend.Config) (backend.Installer, error) {
	factory, ok := factories[manager]
	if !ok {
		return nil, fmt.Errorf("registry: no installer for manager '%s'", manager)
	}
	return factory(config)
}

// Available lists the registered manager names
func Available() []string {
	names := make([]string, 0, len(factories))
	for m := range factories {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}
