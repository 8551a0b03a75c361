package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// ShimBinaryName is the dispatch binary installed alongside golta.
const ShimBinaryName = "golta-shim"

// LocateShim returns the golta-shim executable that sits next to the
// running golta binary.
func LocateShim() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating golta executable: %w", err)
	}
	name := ShimBinaryName
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	shim := filepath.Join(filepath.Dir(exe), name)
	if !fileExists(shim) {
		return "", fmt.Errorf("%s not found next to %s", name, exe)
	}
	return shim, nil
}

// InstallShims creates one entry per managed tool in BinDir pointing at
// shim. Entries are symlinks, or copies on Windows. Existing entries are
// replaced. It returns the created paths.
func InstallShims(paths Paths, shim string) ([]string, error) {
	if err := os.MkdirAll(paths.BinDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating shim directory: %w", err)
	}

	var created []string
	for _, name := range ToolNames() {
		t := knownTools[name]
		dst := filepath.Join(paths.BinDir, t.Binary())
		if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
			return created, fmt.Errorf("replacing shim %s: %w", dst, err)
		}
		if err := linkShim(shim, dst); err != nil {
			return created, fmt.Errorf("creating shim %s: %w", dst, err)
		}
		created = append(created, dst)
	}
	return created, nil
}

func linkShim(src, dst string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(src, dst)
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
