// Package core provides the business logic for golta.
// It has zero UI dependencies and is independently testable.
package core

// Source identifies where an active version was resolved from.
type Source string

const (
	SourcePin      Source = "pin"
	SourceManifest Source = "manifest"
	SourceDefault  Source = "default"
)

// InstalledVersion is a tool version present on disk. The directory name is
// the version string; there is no separate index.
type InstalledVersion struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	Path    string `json:"path"` // Install directory (<versions>/<version> or <versions>/<tool>/<version>)
}

// ActiveVersion is the result of version resolution for one invocation.
// It is never persisted.
type ActiveVersion struct {
	Tool    string
	Version string
	Source  Source
	Origin  string // File the version came from (pin file, go.mod, default record)
}

// RemoteVersionInfo describes one published release in a catalog.
type RemoteVersionInfo struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// ListResult is the outcome of a catalog listing.
type ListResult struct {
	Versions []RemoteVersionInfo
	// FromCache is true when the cached snapshot was returned instead of
	// the freshly fetched catalog.
	FromCache bool
	// Degraded is true when the fetch failed and the cache was used instead.
	Degraded bool
	// Warnings are non-fatal problems (fetch failure, cache write failure).
	Warnings []string
}

// InstallResult reports the outcome of an install.
type InstallResult struct {
	Tool             string
	Version          string
	Path             string // Install directory
	Binary           string // Path to the installed executable
	AlreadyInstalled bool
}

// UninstallResult reports the outcome of an uninstall.
type UninstallResult struct {
	Tool           string
	Version        string
	Path           string
	DefaultCleared bool
	Warnings       []string
}
