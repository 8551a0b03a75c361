package core

import (
	"fmt"
	"os"
	"strings"
)

// DefaultStore reads and writes the global default version of each tool.
type DefaultStore struct {
	paths Paths
}

// NewDefaultStore creates a DefaultStore over the given paths.
func NewDefaultStore(paths Paths) *DefaultStore {
	return &DefaultStore{paths: paths}
}

// Path returns the default record for a tool.
func (s *DefaultStore) Path(tool string) string {
	return s.paths.DefaultFile(tool)
}

// Get returns the tool's default version, or "" when none is recorded.
func (s *DefaultStore) Get(tool string) (string, error) {
	data, err := os.ReadFile(s.Path(tool))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading default for %s: %w", tool, err)
	}
	return CleanVersion(tool, string(data)), nil
}

// Set records version as the tool's default.
func (s *DefaultStore) Set(tool, version string) error {
	version = CleanVersion(tool, version)
	if version == "" {
		return userInputf("default version for %s cannot be empty", tool)
	}
	if err := writeConfigFile(s.Path(tool), version+"\n"); err != nil {
		return fmt.Errorf("saving default for %s: %w", tool, err)
	}
	return nil
}

// Clear removes the tool's default. It reports whether one was set.
func (s *DefaultStore) Clear(tool string) (bool, error) {
	err := os.Remove(s.Path(tool))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("clearing default for %s: %w", tool, err)
	}
	return true, nil
}

// All returns every recorded default keyed by tool name.
func (s *DefaultStore) All() (map[string]string, error) {
	defaults := make(map[string]string)
	for _, name := range ToolNames() {
		v, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(v) != "" {
			defaults[name] = v
		}
	}
	return defaults, nil
}
