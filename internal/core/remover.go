package core

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// UninstallOptions configures an uninstall.
type UninstallOptions struct {
	Dir          string // Working directory used to look for pins
	ClearDefault bool   // Clear the global default instead of refusing
}

// UninstallManager removes installed tool versions.
type UninstallManager struct {
	paths    Paths
	registry *LocalRegistry
	defaults *DefaultStore
	resolver *VersionResolver
	log      *zap.Logger
}

// NewUninstallManager creates an UninstallManager.
func NewUninstallManager(paths Paths, registry *LocalRegistry, defaults *DefaultStore, resolver *VersionResolver, log *zap.Logger) *UninstallManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &UninstallManager{paths: paths, registry: registry, defaults: defaults, resolver: resolver, log: log}
}

// Uninstall removes one installed version. The global default is never
// left pointing at a removed version: it is cleared when opts.ClearDefault
// is set, otherwise the uninstall is refused. Pins are reported, not edited.
func (u *UninstallManager) Uninstall(t Tool, version string, opts UninstallOptions) (UninstallResult, error) {
	version = CleanVersion(t.Name, version)
	if err := validateVersionName(t, version); err != nil {
		return UninstallResult{}, err
	}
	if t.IsAuxiliary() && !u.registry.HasDir(t, version) && u.registry.HasDir(t, ensureVPrefix(version)) {
		version = ensureVPrefix(version)
	}
	if !u.registry.HasDir(t, version) {
		return UninstallResult{}, &NotInstalledError{Tool: t.Name, Version: version}
	}

	result := UninstallResult{
		Tool:    t.Name,
		Version: version,
		Path:    u.paths.InstallDir(t.Name, version),
	}

	def, err := u.defaults.Get(t.Name)
	if err != nil {
		return UninstallResult{}, err
	}
	if def == version {
		if !opts.ClearDefault {
			return UninstallResult{}, &DefaultInUseError{Tool: t.Name, Version: version}
		}
		if _, err := u.defaults.Clear(t.Name); err != nil {
			return UninstallResult{}, err
		}
		result.DefaultCleared = true
		result.Warnings = append(result.Warnings, fmt.Sprintf("cleared the global %s default (was %s)", t.Name, version))
	}

	if opts.Dir != "" {
		pin, ok, err := u.resolver.FindPin(t.Name, opts.Dir)
		switch {
		case err != nil:
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not check pin files: %v", err))
		case ok && pin.Version == version:
			result.Warnings = append(result.Warnings, fmt.Sprintf("uninstalling version %s, which is pinned in %s", version, pin.Path))
		}
	}

	u.log.Info("removing", zap.String("tool", t.Name), zap.String("version", version), zap.String("path", result.Path))
	if err := os.RemoveAll(result.Path); err != nil {
		return UninstallResult{}, fmt.Errorf("removing %s: %w", result.Path, err)
	}
	return result, nil
}

// validateVersionName rejects names that would address something other
// than a single version directory.
func validateVersionName(t Tool, version string) error {
	if version == "" || version == "." || version == ".." || strings.ContainsAny(version, `/\`) {
		return userInputf("invalid %s version %q", t.Name, version)
	}
	if !t.IsAuxiliary() {
		if _, isTool := knownTools[version]; isTool {
			return userInputf("invalid %s version %q", t.Name, version)
		}
	}
	return nil
}
