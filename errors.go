// errors.go
package biodeps

import (
	"errors"
	"fmt"
)

var (
	// ErrPackageNotFound indicates the package is not in the manifest
	ErrPackageNotFound = errors.New("package not found")

	// ErrInvalidManifest indicates the manifest could not be loaded
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrLintFailed indicates the manifest has lint issues
	ErrLintFailed = errors.New("manifest has lint issues")

	// ErrBackendNotAvailable indicates the package manager is not installed
	ErrBackendNotAvailable = errors.New("backend not available")

	// ErrInstallFailed indicates an install command failed
	ErrInstallFailed = errors.New("install failed")

	// ErrMissingTools indicates some tools are not on PATH
	ErrMissingTools = errors.New("missing tools")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
