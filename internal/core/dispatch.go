package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// Runner starts the resolved binary. On unix the default runner replaces
// the current process and only returns on failure.
type Runner interface {
	Run(ctx context.Context, binary string, args, env []string) (exitCode int, err error)
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// ToolInstaller installs a tool version on demand.
type ToolInstaller interface {
	Install(ctx context.Context, t Tool, spec, dir string) (InstallResult, error)
}

// DispatchRequest describes one invocation to forward.
type DispatchRequest struct {
	Tool    Tool
	Version string   // Explicit version; empty resolves from Dir
	Dir     string   // Working directory used for resolution
	Args    []string // Arguments passed through to the tool
	Env     []string // Base environment; nil means os.Environ()
}

// Dispatcher resolves the active version of a tool and runs it.
type Dispatcher struct {
	resolver  *VersionResolver
	registry  *LocalRegistry
	installer ToolInstaller
	settings  *Settings
	runner    Runner
	prompter  Prompter
	log       *zap.Logger
}

// NewDispatcher creates a Dispatcher. prompter may be nil, in which case a
// missing version is never installed interactively.
func NewDispatcher(
	resolver *VersionResolver,
	registry *LocalRegistry,
	installer ToolInstaller,
	settings *Settings,
	runner Runner,
	prompter Prompter,
	log *zap.Logger,
) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		resolver:  resolver,
		registry:  registry,
		installer: installer,
		settings:  settings,
		runner:    runner,
		prompter:  prompter,
		log:       log,
	}
}

// Target is a fully prepared invocation.
type Target struct {
	Tool    string
	Version string
	Source  Source // Empty for an explicit version
	Binary  string
	Env     []string
}

// Prepare resolves, installs if allowed, and builds the child environment
// without running anything.
func (d *Dispatcher) Prepare(ctx context.Context, req DispatchRequest) (Target, error) {
	env := req.Env
	if env == nil {
		env = os.Environ()
	}

	version := CleanVersion(req.Tool.Name, req.Version)
	var source Source
	if version == "" {
		av, err := d.resolver.Resolve(req.Tool.Name, req.Dir)
		if err != nil {
			return Target{}, err
		}
		version, source = av.Version, av.Source
		d.log.Debug("active version", zap.String("tool", av.Tool), zap.String("version", av.Version),
			zap.String("source", string(av.Source)), zap.String("origin", av.Origin))
	}

	installed, err := d.ensureInstalled(ctx, req.Tool, version, req.Dir, env)
	if err != nil {
		return Target{}, err
	}

	return Target{
		Tool:    req.Tool.Name,
		Version: installed,
		Source:  source,
		Binary:  d.registry.BinaryPath(req.Tool, installed),
		Env:     d.childEnv(req.Tool, installed, req.Dir, env),
	}, nil
}

// Dispatch runs the tool and returns its exit code.
func (d *Dispatcher) Dispatch(ctx context.Context, req DispatchRequest) (int, error) {
	target, err := d.Prepare(ctx, req)
	if err != nil {
		return 1, err
	}
	d.log.Debug("dispatching", zap.String("binary", target.Binary), zap.Strings("args", req.Args))
	return d.runner.Run(ctx, target.Binary, req.Args, target.Env)
}

// ensureInstalled returns the installed version directory satisfying
// version, installing it when policy allows.
func (d *Dispatcher) ensureInstalled(ctx context.Context, t Tool, version, dir string, env []string) (string, error) {
	candidates := []string{version}
	if t.IsAuxiliary() && !strings.HasPrefix(version, "v") {
		candidates = append(candidates, ensureVPrefix(version))
	}
	for _, c := range candidates {
		v, ok, err := d.registry.Find(t, c)
		if err != nil {
			return "", err
		}
		if ok {
			return v, nil
		}
	}

	notInstalled := &NotInstalledError{Tool: t.Name, Version: version}
	autoInstall := d.settings != nil && d.settings.AutoInstall
	if v, ok := lookupEnv(env, "GOLTA_AUTO_INSTALL"); ok {
		autoInstall = truthy(v)
	}

	if !autoInstall {
		if _, ci := lookupEnv(env, "CI"); ci {
			return "", notInstalled
		}
		if d.prompter == nil {
			return "", notInstalled
		}
		ok, err := d.prompter.Confirm(fmt.Sprintf("%s %s is not installed. Install it now?", t.Name, version))
		if err != nil {
			return "", err
		}
		if !ok {
			return "", notInstalled
		}
	}

	if d.installer == nil {
		return "", notInstalled
	}
	res, err := d.installer.Install(ctx, t, version, dir)
	if err != nil {
		return "", err
	}
	return res.Version, nil
}

// childEnv builds the environment of the dispatched process.
func (d *Dispatcher) childEnv(t Tool, version, dir string, base []string) []string {
	env := append([]string(nil), base...)

	goVersion := version
	if t.IsAuxiliary() {
		env = prependPath(env, filepath.Join(d.registry.paths.InstallDir(t.Name, version), "bin"))
		// Tools like gopls shell out to go; give them the project's
		// toolchain when it is installed.
		goVersion = ""
		if av, err := d.resolver.Resolve(GoToolName, dir); err == nil {
			if v, ok, err := d.registry.Find(knownTools[GoToolName], av.Version); err == nil && ok {
				goVersion = v
			}
		}
	}
	if goVersion == "" {
		return env
	}

	goRoot := d.registry.GoRoot(goVersion)
	env = setEnv(env, "GOROOT", goRoot)
	env = prependPath(env, filepath.Join(goRoot, "bin"))
	if _, ok := lookupEnv(env, "GOTOOLCHAIN"); !ok {
		env = setEnv(env, "GOTOOLCHAIN", "local")
	}
	return env
}

func envKeyEqual(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func lookupEnv(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		k, v, ok := strings.Cut(env[i], "=")
		if ok && envKeyEqual(k, key) {
			return v, true
		}
	}
	return "", false
}

// setEnv replaces every existing entry for key with a single key=value.
func setEnv(env []string, key, value string) []string {
	out := env[:0]
	for _, kv := range env {
		k, _, _ := strings.Cut(kv, "=")
		if envKeyEqual(k, key) {
			continue
		}
		out = append(out, kv)
	}
	return append(out, key+"="+value)
}

func prependPath(env []string, dir string) []string {
	key := "PATH"
	for _, kv := range env {
		k, _, _ := strings.Cut(kv, "=")
		if envKeyEqual(k, "PATH") {
			key = k
		}
	}
	current, _ := lookupEnv(env, key)
	if current == "" {
		return setEnv(env, key, dir)
	}
	return setEnv(env, key, dir+string(os.PathListSeparator)+current)
}
