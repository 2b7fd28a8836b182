// pkg/platform/resolver.go
package platform

import (
	"fmt"

	"github.com/arc-language/biodeps/pkg/backend"
	"github.com/arc-language/biodeps/pkg/manifest"
	"github.com/arc-language/biodeps/pkg/registry"
)

// ResolveInstaller returns the installer for a package's declared manager.
// It fails when that manager, or the program the command would actually
// start (pip rather than pip3, conda for "conda run"), is not installed.
func ResolveInstaller(platform *Platform, pkg *manifest.Package, opts *backend.InstallOptions, config *backend.Config) (backend.Installer, error) {
	if pkg.Source == nil {
		return nil, fmt.Errorf("package '%s' has no source", pkg.Name)
	}
	manager := pkg.Source.Manager

	if !platform.Has(manager) {
		return nil, fmt.Errorf("backend '%s' is not available on this system", manager)
	}

	installer, err := registry.Get(manager, config)
	if err != nil {
		return nil, fmt.Errorf("getting backend '%s': %w", manager, err)
	}

	command, err := installer.Command(pkg, opts)
	if err != nil {
		installer.Close()
		return nil, err
	}
	if !platform.Provides(command[0]) {
		installer.Close()
		return nil, fmt.Errorf("backend '%s' needs %s, which is not on PATH", manager, command[0])
	}

	return installer, nil
}
