package core

import (
	"path/filepath"

	"go.uber.org/zap"
)

// PinLocation is a pin that names a tool.
type PinLocation struct {
	Version string
	Path    string
}

// PinReader looks up pinned versions in a directory's pin file.
type PinReader interface {
	Lookup(dir, tool string) (version string, exists bool, err error)
	Path(dir string) string
}

// DefaultReader returns the global default version of a tool.
type DefaultReader interface {
	Get(tool string) (string, error)
	Path(tool string) string
}

// VersionResolver decides which version of a tool is active for a directory.
// Precedence: the nearest pin file, then (for go) the nearest go.mod
// directive at or below that boundary, then the global default.
type VersionResolver struct {
	pins     PinReader
	defaults DefaultReader
	log      *zap.Logger
}

// NewVersionResolver creates a resolver.
func NewVersionResolver(pins PinReader, defaults DefaultReader, log *zap.Logger) *VersionResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &VersionResolver{pins: pins, defaults: defaults, log: log}
}

// Resolve returns the active version of tool for startDir.
func (r *VersionResolver) Resolve(tool, startDir string) (ActiveVersion, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ActiveVersion{}, err
	}

	for {
		version, exists, err := r.pins.Lookup(dir, tool)
		if err != nil {
			return ActiveVersion{}, err
		}
		if version != "" {
			r.log.Debug("resolved from pin", zap.String("tool", tool), zap.String("version", version), zap.String("dir", dir))
			return ActiveVersion{Tool: tool, Version: version, Source: SourcePin, Origin: r.pins.Path(dir)}, nil
		}

		if tool == GoToolName {
			m, err := readManifest(dir)
			if err != nil {
				return ActiveVersion{}, err
			}
			if m.parseErr != nil {
				r.log.Debug("go.mod did not parse, scanned for directives", zap.String("dir", dir), zap.Bool("found", m.ok), zap.Error(m.parseErr))
			}
			if m.ok {
				r.log.Debug("resolved from go.mod", zap.String("version", m.version), zap.String("dir", dir))
				return ActiveVersion{Tool: tool, Version: m.version, Source: SourceManifest, Origin: filepath.Join(dir, ManifestFileName)}, nil
			}
		}

		// A pin file marks the project root even when it does not name
		// this tool.
		if exists {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	version, err := r.defaults.Get(tool)
	if err != nil {
		return ActiveVersion{}, err
	}
	if version != "" {
		r.log.Debug("resolved from default", zap.String("tool", tool), zap.String("version", version))
		return ActiveVersion{Tool: tool, Version: version, Source: SourceDefault, Origin: r.defaults.Path(tool)}, nil
	}
	return ActiveVersion{}, &NotActiveError{Tool: tool}
}

// FindPin walks upward from startDir and returns the nearest pin for tool.
// The walk stops at the first pin file. ok is false when no pin names tool.
func (r *VersionResolver) FindPin(tool, startDir string) (PinLocation, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return PinLocation{}, false, err
	}
	for {
		version, exists, err := r.pins.Lookup(dir, tool)
		if err != nil {
			return PinLocation{}, false, err
		}
		if version != "" {
			return PinLocation{Version: version, Path: r.pins.Path(dir)}, true, nil
		}
		if exists {
			return PinLocation{}, false, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return PinLocation{}, false, nil
		}
		dir = parent
	}
}
