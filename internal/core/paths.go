package core

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	homeDirName      = ".golta"
	homeEnvVar       = "GOLTA_HOME"
	defaultFileName  = "default.txt"
	configFileName   = "config.yaml"
	catalogCacheFile = "remote_versions.json"
)

// Paths holds every on-disk location golta uses. It is resolved once at
// startup and passed to each component.
type Paths struct {
	Root         string // ~/.golta
	BinDir       string // ~/.golta/bin, shim links
	VersionsDir  string // ~/.golta/versions
	StateDir     string // ~/.golta/state
	CacheDir     string // ~/.golta/cache
	DownloadsDir string // ~/.golta/cache/downloads
	ConfigFile   string // ~/.golta/config.yaml
}

// ResolvePaths determines the golta root from $GOLTA_HOME, falling back to
// ~/.golta.
func ResolvePaths() (Paths, error) {
	if root := os.Getenv(homeEnvVar); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return Paths{}, fmt.Errorf("resolving %s: %w", homeEnvVar, err)
		}
		return NewPaths(abs), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("getting home directory: %w", err)
	}
	return NewPaths(filepath.Join(home, homeDirName)), nil
}

// NewPaths builds the layout under a given root directory.
// Useful for testing.
func NewPaths(root string) Paths {
	cacheDir := filepath.Join(root, "cache")
	return Paths{
		Root:         root,
		BinDir:       filepath.Join(root, "bin"),
		VersionsDir:  filepath.Join(root, "versions"),
		StateDir:     filepath.Join(root, "state"),
		CacheDir:     cacheDir,
		DownloadsDir: filepath.Join(cacheDir, "downloads"),
		ConfigFile:   filepath.Join(root, configFileName),
	}
}

// ToolVersionsDir returns the directory holding all versions of a tool.
// Go versions live directly under versions/; auxiliary tools nest one level.
func (p Paths) ToolVersionsDir(tool string) string {
	if tool == GoToolName {
		return p.VersionsDir
	}
	return filepath.Join(p.VersionsDir, tool)
}

// InstallDir returns the install directory of a tool version.
func (p Paths) InstallDir(tool, version string) string {
	return filepath.Join(p.ToolVersionsDir(tool), version)
}

// DefaultFile returns the default record path for a tool.
func (p Paths) DefaultFile(tool string) string {
	if tool == GoToolName {
		return filepath.Join(p.StateDir, defaultFileName)
	}
	return filepath.Join(p.StateDir, tool+".default")
}

// CatalogCacheFile returns the cached catalog path for a tool.
func (p Paths) CatalogCacheFile(tool string) string {
	if tool == GoToolName {
		return filepath.Join(p.CacheDir, catalogCacheFile)
	}
	return filepath.Join(p.CacheDir, "remote_versions_"+tool+".json")
}

// LockFile returns the advisory install lock path for a tool version.
func (p Paths) LockFile(tool, version string) string {
	return filepath.Join(p.VersionsDir, "."+tool+"@"+version+".lock")
}
