package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// PinFileName is the per-project pin record.
const PinFileName = ".golta.json"

// PinStore reads and edits .golta.json pin files. Files are parsed as JWCC
// so hand-written comments and trailing commas survive an edit.
type PinStore struct{}

// NewPinStore creates a PinStore.
func NewPinStore() *PinStore {
	return &PinStore{}
}

// Path returns the pin file location for a directory.
func (s *PinStore) Path(dir string) string {
	return filepath.Join(dir, PinFileName)
}

// Read returns the flat tool -> version map of the pin file in dir.
// The boolean is false when no pin file exists.
func (s *PinStore) Read(dir string) (map[string]string, bool, error) {
	std, ok, err := s.load(s.Path(dir))
	if err != nil || !ok {
		return nil, ok, err
	}
	pins := make(map[string]string)
	var walkErr error
	gjson.ParseBytes(std).ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			walkErr = fmt.Errorf("parsing %s: value for %q must be a string", s.Path(dir), key.String())
			return false
		}
		pins[key.String()] = value.String()
		return true
	})
	if walkErr != nil {
		return nil, true, walkErr
	}
	return pins, true, nil
}

// Lookup returns the version pinned for tool in dir's pin file. exists
// reports whether the file is present at all, so callers can treat it as a
// project boundary even when the tool is not named.
func (s *PinStore) Lookup(dir, tool string) (version string, exists bool, err error) {
	std, ok, err := s.load(s.Path(dir))
	if err != nil || !ok {
		return "", ok, err
	}
	res := gjson.GetBytes(std, escapeJSONKey(tool))
	if !res.Exists() {
		return "", true, nil
	}
	if res.Type != gjson.String {
		return "", true, fmt.Errorf("parsing %s: value for %q must be a string", s.Path(dir), tool)
	}
	return CleanVersion(tool, res.String()), true, nil
}

// Set upserts tool's version in dir's pin file, creating the file if needed.
// Existing keys, comments and formatting are preserved.
func (s *PinStore) Set(dir, tool, version string) error {
	path := s.Path(dir)
	content, err := readConfigFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if strings.TrimSpace(content) == "" {
		created, err := sjson.Set("{}", escapeJSONKey(tool), version)
		if err != nil {
			return fmt.Errorf("building pin file: %w", err)
		}
		content = created
	}

	root, err := hujson.Parse([]byte(content))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if _, ok := root.Value.(*hujson.Object); !ok {
		return fmt.Errorf("parsing %s: top level must be an object", path)
	}

	ptr := "/" + jsonPointerEscape(tool)
	op := "add"
	if root.Find(ptr) != nil {
		op = "replace"
	}
	valueJSON, err := hujson.Parse([]byte(fmt.Sprintf("%q", version)))
	if err != nil {
		return fmt.Errorf("encoding version: %w", err)
	}
	patch := fmt.Sprintf(`[{"op":%q,"path":%q,"value":%s}]`, op, ptr, valueJSON.String())
	if err := root.Patch([]byte(patch)); err != nil {
		return fmt.Errorf("updating %s: %w", path, err)
	}

	root.Format()
	return writeConfigFile(path, string(root.Pack()))
}

// Remove deletes tool's key from dir's pin file. The file is removed when
// the object becomes empty. It reports whether a key was removed.
func (s *PinStore) Remove(dir, tool string) (bool, error) {
	path := s.Path(dir)
	content, err := readConfigFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if content == "" {
		return false, nil
	}

	root, err := hujson.Parse([]byte(content))
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", path, err)
	}
	ptr := "/" + jsonPointerEscape(tool)
	if root.Find(ptr) == nil {
		return false, nil
	}
	patch := fmt.Sprintf(`[{"op":"remove","path":%q}]`, ptr)
	if err := root.Patch([]byte(patch)); err != nil {
		return false, fmt.Errorf("updating %s: %w", path, err)
	}

	if obj, ok := root.Value.(*hujson.Object); ok && len(obj.Members) == 0 {
		if err := os.Remove(path); err != nil {
			return false, fmt.Errorf("removing %s: %w", path, err)
		}
		return true, nil
	}

	root.Format()
	if err := writeConfigFile(path, string(root.Pack())); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveFile deletes dir's pin file. It reports whether a file existed.
func (s *PinStore) RemoveFile(dir string) (bool, error) {
	err := os.Remove(s.Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("removing %s: %w", s.Path(dir), err)
	}
	return true, nil
}

// load reads a pin file and returns it as standard JSON.
func (s *PinStore) load(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading %s: %w", path, err)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, true, fmt.Errorf("parsing %s: %w", path, err)
	}
	if !gjson.ValidBytes(std) || !gjson.ParseBytes(std).IsObject() {
		return nil, true, fmt.Errorf("parsing %s: top level must be an object", path)
	}
	return std, true, nil
}

// readConfigFile returns the file content, or "" when it does not exist.
func readConfigFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// writeConfigFile writes content atomically, creating parent directories.
func writeConfigFile(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// escapeJSONKey escapes a key for use as a gjson/sjson path.
func escapeJSONKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// jsonPointerEscape escapes a key for use in an RFC 6901 JSON Pointer.
func jsonPointerEscape(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
