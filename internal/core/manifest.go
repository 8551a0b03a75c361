package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// ManifestFileName is the Go module manifest consulted during resolution.
const ManifestFileName = "go.mod"

// ReadManifestVersion returns the Go version requested by dir's go.mod.
// A toolchain directive wins over the go directive. The boolean is false
// when the file is missing or names no version.
func ReadManifestVersion(dir string) (string, bool, error) {
	m, err := readManifest(dir)
	return m.version, m.ok, err
}

// manifestVersion is what a go.mod contributes to resolution. parseErr is
// set when the file had to be line scanned because modfile rejected it.
type manifestVersion struct {
	version  string
	ok       bool
	parseErr error
}

func readManifest(dir string) (manifestVersion, error) {
	path := filepath.Join(dir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return manifestVersion{}, nil
		}
		return manifestVersion{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return parseManifest(path, data), nil
}

func parseManifest(path string, data []byte) manifestVersion {
	f, err := modfile.Parse(path, data, nil)
	if err != nil {
		// Directives newer than x/mod knows about still leave the go line
		// readable.
		lax, laxErr := modfile.ParseLax(path, data, nil)
		if laxErr != nil {
			v, ok := scanManifest(data)
			return manifestVersion{version: v, ok: ok, parseErr: err}
		}
		f = lax
	}
	var toolchain, goVersion string
	if f.Toolchain != nil {
		toolchain = f.Toolchain.Name
	}
	if f.Go != nil {
		goVersion = f.Go.Version
	}
	v, ok := pickManifestVersion(toolchain, goVersion)
	return manifestVersion{version: v, ok: ok}
}

// scanManifest reads toolchain and go lines from a go.mod modfile cannot
// parse, so a broken require line does not hide the requested version.
// Directives without exactly one value are skipped.
func scanManifest(data []byte) (string, bool) {
	var toolchain, goVersion string
	for _, line := range strings.Split(string(data), "\n") {
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		switch fields[0] {
		case "toolchain":
			toolchain = fields[1]
		case "go":
			goVersion = fields[1]
		}
	}
	return pickManifestVersion(toolchain, goVersion)
}

func pickManifestVersion(toolchain, goVersion string) (string, bool) {
	if v := strings.TrimPrefix(strings.TrimSpace(toolchain), "go"); v != "" && v != "default" {
		return v, true
	}
	if v := strings.TrimSpace(goVersion); v != "" {
		return v, true
	}
	return "", false
}

// FindManifestVersion walks upward from startDir to the nearest go.mod and
// returns its requested Go version.
func FindManifestVersion(startDir string) (version, origin string, err error) {
	dir := startDir
	for {
		v, ok, err := ReadManifestVersion(dir)
		if err != nil {
			return "", "", err
		}
		if ok {
			return v, filepath.Join(dir, ManifestFileName), nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", nil
		}
		dir = parent
	}
}
