package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalRegistry enumerates installed versions from the on-disk layout.
type LocalRegistry struct {
	paths Paths
}

// NewLocalRegistry creates a LocalRegistry over the given paths.
func NewLocalRegistry(paths Paths) *LocalRegistry {
	return &LocalRegistry{paths: paths}
}

// BinaryPath returns where a tool version's executable lives once installed.
// The Go archive unpacks into a top-level go/ directory.
func (r *LocalRegistry) BinaryPath(t Tool, version string) string {
	dir := r.paths.InstallDir(t.Name, version)
	if t.IsAuxiliary() {
		return filepath.Join(dir, "bin", t.Binary())
	}
	return filepath.Join(dir, "go", "bin", t.Binary())
}

// GoRoot returns the GOROOT of an installed Go version.
func (r *LocalRegistry) GoRoot(version string) string {
	return filepath.Join(r.paths.InstallDir(GoToolName, version), "go")
}

// IsInstalled reports whether the version's binary is present.
func (r *LocalRegistry) IsInstalled(t Tool, version string) bool {
	if version == "" {
		return false
	}
	info, err := os.Stat(r.BinaryPath(t, version))
	return err == nil && !info.IsDir()
}

// HasDir reports whether the version's install directory exists, complete
// or not.
func (r *LocalRegistry) HasDir(t Tool, version string) bool {
	if version == "" {
		return false
	}
	return dirExists(r.paths.InstallDir(t.Name, version))
}

// List returns the installed versions of a tool, sorted ascending.
// Directories without a binary (interrupted installs) are skipped.
func (r *LocalRegistry) List(t Tool) ([]InstalledVersion, error) {
	dir := r.paths.ToolVersionsDir(t.Name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading versions directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		// Auxiliary tools nest under versions/<tool>/ next to Go versions.
		if !t.IsAuxiliary() {
			if _, isTool := knownTools[name]; isTool {
				continue
			}
		}
		if !r.IsInstalled(t, name) {
			continue
		}
		names = append(names, name)
	}
	SortVersions(names)

	versions := make([]InstalledVersion, 0, len(names))
	for _, name := range names {
		versions = append(versions, InstalledVersion{
			Tool:    t.Name,
			Version: name,
			Path:    r.paths.InstallDir(t.Name, name),
		})
	}
	return versions, nil
}

// Find returns the installed version that satisfies version: the exact
// directory when present, otherwise the highest installed release within a
// partial spec such as "1.22".
func (r *LocalRegistry) Find(t Tool, version string) (string, bool, error) {
	if r.IsInstalled(t, version) {
		return version, true, nil
	}
	if !IsPartialSpec(version) {
		return "", false, nil
	}
	installed, err := r.List(t)
	if err != nil {
		return "", false, err
	}
	names := make([]string, 0, len(installed))
	for _, iv := range installed {
		names = append(names, iv.Version)
	}
	match, ok := matchPartial(version, names)
	return match, ok, nil
}

// dirExists returns true if the path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
