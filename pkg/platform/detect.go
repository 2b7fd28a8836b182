// pkg/platform/detect.go
package platform

import (
	"fmt"
	"os/exec"
	"runtime"
	"slices"

	"github.com/arc-language/biodeps/pkg/manifest"
)

// Platform represents the detected system platform
type Platform struct {
	OS        string   // linux, darwin, windows
	Arch      string   // amd64, arm64
	Available []string // Package managers found on PATH
	Preferred string   // Preferred conda-family manager

	lookPath func(string) (string, error)
}

// probeOrder is the order package managers are reported in
var probeOrder = []string{"mamba", "micromamba", "conda", "pip", "pip3"}

// Detect detects the current platform and available package managers
func Detect() (*Platform, error) {
	return DetectWith(exec.LookPath)
}

// DetectWith is Detect with a custom executable lookup
func DetectWith(lookPath func(string) (string, error)) (*Platform, error) {
	return detect(runtime.GOOS, runtime.GOARCH, lookPath)
}

func detect(goos, goarch string, lookPath func(string) (string, error)) (*Platform, error) {
	p := &Platform{
		OS:        goos,
		Arch:      goarch,
		Available: []string{},
		lookPath:  lookPath,
	}

	switch goos {
	case "linux", "darwin", "windows":
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}

	for _, name := range probeOrder {
		if _, err := lookPath(name); err == nil {
			p.Available = append(p.Available, name)
		}
	}

	for _, name := range probeOrder[:3] {
		if slices.Contains(p.Available, name) {
			p.Preferred = name
			break
		}
	}

	return p, nil
}

// Has reports whether a manifest manager can run here. pip counts as
// available when only pip3 is present; Provides decides for the exact
// executable a command starts with.
func (p *Platform) Has(m manifest.Manager) bool {
	switch m {
	case manifest.ManagerShell:
		return true
	case manifest.ManagerPip:
		return slices.Contains(p.Available, "pip") || slices.Contains(p.Available, "pip3")
	}
	return slices.Contains(p.Available, string(m))
}

// Provides reports whether exe is on PATH
func (p *Platform) Provides(exe string) bool {
	if slices.Contains(probeOrder, exe) {
		return slices.Contains(p.Available, exe)
	}
	lookPath := p.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(exe)
	return err == nil
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s/%s (available: %v, preferred: %s)",
		p.OS, p.Arch, p.Available, p.Preferred)
}
