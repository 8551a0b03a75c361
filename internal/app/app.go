// Package app wires the core components shared by the golta CLI and the
// shim binary.
package app

import (
	"fmt"

	"github.com/golta-dev/golta/internal/core"
	"github.com/golta-dev/golta/internal/logx"
	"github.com/golta-dev/golta/internal/tui"
	"go.uber.org/zap"
)

// App holds the components one invocation needs.
type App struct {
	Paths       core.Paths
	Config      *core.ConfigManager
	Settings    *core.Settings
	Log         *zap.Logger
	Registry    *core.LocalRegistry
	Pins        *core.PinStore
	Defaults    *core.DefaultStore
	Resolver    *core.VersionResolver
	Catalog     *core.RemoteCatalog
	Installer   *core.InstallManager
	Uninstaller *core.UninstallManager
}

// New resolves paths, loads settings and builds every component.
// version is the golta build version, sent in the User-Agent.
func New(version string, verbose bool) (*App, error) {
	log, err := logx.New(verbose)
	if err != nil {
		return nil, err
	}

	paths, err := core.ResolvePaths()
	if err != nil {
		return nil, err
	}

	config := core.NewConfigManager(paths)
	settings, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	fetcher := core.NewHTTPFetcher(settings.HTTPTimeout, "golta/"+version)
	return NewWithParts(paths, config, settings, fetcher, log), nil
}

// NewWithParts builds the components from explicit parts.
func NewWithParts(paths core.Paths, config *core.ConfigManager, settings *core.Settings, fetcher core.Fetcher, log *zap.Logger) *App {
	registry := core.NewLocalRegistry(paths)
	pins := core.NewPinStore()
	defaults := core.NewDefaultStore(paths)
	resolver := core.NewVersionResolver(pins, defaults, log)
	catalog := core.NewRemoteCatalog(fetcher, settings, paths, log)

	installer := core.NewInstallManager(paths, settings, registry, catalog, resolver, fetcher, log)
	installer.SetProgress(tui.NewDownloadProgress())

	return &App{
		Paths:       paths,
		Config:      config,
		Settings:    settings,
		Log:         log,
		Registry:    registry,
		Pins:        pins,
		Defaults:    defaults,
		Resolver:    resolver,
		Catalog:     catalog,
		Installer:   installer,
		Uninstaller: core.NewUninstallManager(paths, registry, defaults, resolver, log),
	}
}

// Dispatcher returns a dispatcher that replaces the process with the tool
// and asks on stderr before installing a missing version.
func (a *App) Dispatcher() *core.Dispatcher {
	return core.NewDispatcher(a.Resolver, a.Registry, a.Installer, a.Settings,
		core.NewProcessRunner(), tui.NewPrompter(), a.Log)
}

// Close flushes the logger.
func (a *App) Close() {
	_ = a.Log.Sync()
}
