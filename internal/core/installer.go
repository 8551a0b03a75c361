package core

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// ManifestSpec installs the version requested by the nearest go.mod.
const ManifestSpec = "mod"

// commandRunner runs a command and returns its combined output.
type commandRunner func(ctx context.Context, name string, args, env []string) ([]byte, error)

// InstallManager downloads and places tool versions under the versions
// directory.
type InstallManager struct {
	paths    Paths
	settings *Settings
	registry *LocalRegistry
	catalog  *RemoteCatalog
	resolver *VersionResolver
	fetcher  Fetcher
	progress ProgressReporter
	log      *zap.Logger
	run      commandRunner
}

// NewInstallManager creates an InstallManager.
func NewInstallManager(
	paths Paths,
	settings *Settings,
	registry *LocalRegistry,
	catalog *RemoteCatalog,
	resolver *VersionResolver,
	fetcher Fetcher,
	log *zap.Logger,
) *InstallManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &InstallManager{
		paths:    paths,
		settings: settings,
		registry: registry,
		catalog:  catalog,
		resolver: resolver,
		fetcher:  fetcher,
		progress: nopProgress{},
		log:      log,
		run:      runCombined,
	}
}

// SetProgress sets the reporter used for archive downloads.
func (m *InstallManager) SetProgress(p ProgressReporter) {
	if p == nil {
		p = nopProgress{}
	}
	m.progress = p
}

// Install resolves spec against the catalog and installs the result.
// dir is the working directory used to find a go.mod when spec is empty or
// "mod", and to pick the Go toolchain that builds auxiliary tools.
func (m *InstallManager) Install(ctx context.Context, t Tool, spec, dir string) (InstallResult, error) {
	spec, err := m.effectiveSpec(t, spec, dir)
	if err != nil {
		return InstallResult{}, err
	}

	// An exact version already on disk needs no catalog lookup.
	if spec != LatestSpec && !IsPartialSpec(spec) {
		exact := spec
		if t.IsAuxiliary() {
			exact = ensureVPrefix(spec)
		}
		if m.registry.IsInstalled(t, exact) {
			return m.alreadyInstalled(t, exact), nil
		}
	}

	version, err := m.catalog.Resolve(ctx, t, spec)
	if err != nil {
		return InstallResult{}, err
	}
	return m.InstallVersion(ctx, t, version, dir)
}

// InstallVersion installs an exact version. It is a no-op when the binary
// is already present.
func (m *InstallManager) InstallVersion(ctx context.Context, t Tool, version, dir string) (InstallResult, error) {
	if m.registry.IsInstalled(t, version) {
		return m.alreadyInstalled(t, version), nil
	}

	unlock, err := acquireInstallLock(ctx, m.paths.LockFile(t.Name, version))
	if err != nil {
		return InstallResult{}, err
	}
	defer unlock()

	// Another process may have finished the same install while we waited.
	if m.registry.IsInstalled(t, version) {
		return m.alreadyInstalled(t, version), nil
	}

	m.log.Info("installing", zap.String("tool", t.Name), zap.String("version", version))
	if t.IsAuxiliary() {
		err = m.installAux(ctx, t, version, dir)
	} else {
		err = m.installGo(ctx, version)
	}
	if err != nil {
		return InstallResult{}, err
	}

	if !m.registry.IsInstalled(t, version) {
		return InstallResult{}, fmt.Errorf("%s %s: binary not found at %s after install", t.Name, version, m.registry.BinaryPath(t, version))
	}
	return InstallResult{
		Tool:    t.Name,
		Version: version,
		Path:    m.paths.InstallDir(t.Name, version),
		Binary:  m.registry.BinaryPath(t, version),
	}, nil
}

func (m *InstallManager) alreadyInstalled(t Tool, version string) InstallResult {
	return InstallResult{
		Tool:             t.Name,
		Version:          version,
		Path:             m.paths.InstallDir(t.Name, version),
		Binary:           m.registry.BinaryPath(t, version),
		AlreadyInstalled: true,
	}
}

func (m *InstallManager) effectiveSpec(t Tool, spec, dir string) (string, error) {
	spec = CleanVersion(t.Name, spec)
	if t.IsAuxiliary() {
		if spec == "" {
			return LatestSpec, nil
		}
		return spec, nil
	}

	if spec != "" && spec != ManifestSpec {
		return spec, nil
	}
	v, origin, err := FindManifestVersion(dir)
	if err != nil {
		return "", err
	}
	if v != "" {
		m.log.Debug("using version from go.mod", zap.String("version", v), zap.String("file", origin))
		return v, nil
	}
	if spec == ManifestSpec {
		return "", userInputf("no go.mod with a go or toolchain directive found from %s", dir)
	}
	return LatestSpec, nil
}

// DownloadURL returns the archive URL of a Go version for this platform.
func (m *InstallManager) DownloadURL(version string) string {
	return fmt.Sprintf("%s/go%s.%s-%s.%s", m.settings.DownloadURL, version, runtime.GOOS, runtime.GOARCH, archiveExt)
}

func (m *InstallManager) installGo(ctx context.Context, version string) error {
	installDir := m.paths.InstallDir(GoToolName, version)
	dest := filepath.Join(installDir, "go")
	if _, err := os.Lstat(dest); err == nil {
		return &PartialStateError{Path: dest}
	}

	url := m.DownloadURL(version)
	m.log.Debug("downloading", zap.String("url", url))
	archive, err := downloadFile(ctx, m.fetcher, url, m.paths.DownloadsDir, "go"+version, m.progress)
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	if err := os.MkdirAll(m.paths.VersionsDir, 0o755); err != nil {
		return fmt.Errorf("creating versions directory: %w", err)
	}
	staging, err := os.MkdirTemp(m.paths.VersionsDir, ".golta-stage-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := extractArchive(archive, staging, archiveExt); err != nil {
		return fmt.Errorf("extracting go%s: %w", version, err)
	}
	src := filepath.Join(staging, "go")
	if !dirExists(src) {
		return fmt.Errorf("extracting go%s: archive has no top-level go directory", version)
	}

	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return fmt.Errorf("creating install directory: %w", err)
	}
	if _, err := os.Lstat(dest); err == nil {
		return &PartialStateError{Path: dest}
	}
	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("placing go%s: %w", version, err)
	}
	return nil
}

func (m *InstallManager) installAux(ctx context.Context, t Tool, version, dir string) error {
	goBin, goRoot, err := m.goForToolInstall(dir)
	if err != nil {
		return fmt.Errorf("installing %s: %w", t.Name, err)
	}

	installDir := m.paths.InstallDir(t.Name, version)
	created := !dirExists(installDir)
	binDir := filepath.Join(installDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating install directory: %w", err)
	}

	env := append(os.Environ(), "GOBIN="+binDir)
	if goRoot != "" {
		env = append(env, "GOROOT="+goRoot)
	}
	target := t.Package + "@" + version
	m.log.Debug("go install", zap.String("go", goBin), zap.String("target", target))

	out, err := m.run(ctx, goBin, []string{"install", target}, env)
	if err != nil {
		if created {
			_ = os.RemoveAll(installDir)
		}
		return fmt.Errorf("go install %s failed: %w\n%s", target, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// goForToolInstall picks the go binary that builds auxiliary tools: the
// managed version active for dir if installed, otherwise go from PATH.
func (m *InstallManager) goForToolInstall(dir string) (bin, goRoot string, err error) {
	goTool := knownTools[GoToolName]
	if av, resolveErr := m.resolver.Resolve(GoToolName, dir); resolveErr == nil {
		if v, ok, findErr := m.registry.Find(goTool, av.Version); findErr == nil && ok {
			return m.registry.BinaryPath(goTool, v), m.registry.GoRoot(v), nil
		}
	}
	path, lookErr := exec.LookPath(goTool.Binary())
	if lookErr != nil {
		return "", "", userInputf("no Go toolchain available. Install one first with `golta install go`")
	}
	return path, "", nil
}

func runCombined(ctx context.Context, name string, args, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env
	return cmd.CombinedOutput()
}
