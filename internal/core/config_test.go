package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GOLTA_CATALOG_URL", "GOLTA_PROXY_URL", "GOLTA_DOWNLOAD_URL"} {
		t.Setenv(key, "")
	}
	t.Setenv("GOLTA_AUTO_INSTALL", "")
	os.Unsetenv("GOLTA_AUTO_INSTALL")
}

func TestConfigManager_Defaults(t *testing.T) {
	clearConfigEnv(t)
	cm := NewConfigManager(NewPaths(t.TempDir()))

	s, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.CatalogURL != DefaultCatalogURL {
		t.Errorf("CatalogURL = %q, want %q", s.CatalogURL, DefaultCatalogURL)
	}
	if s.ProxyURL != DefaultProxyURL {
		t.Errorf("ProxyURL = %q, want %q", s.ProxyURL, DefaultProxyURL)
	}
	if s.DownloadURL != DefaultDownloadURL {
		t.Errorf("DownloadURL = %q, want %q", s.DownloadURL, DefaultDownloadURL)
	}
	if s.HTTPTimeout != defaultHTTPTimeout {
		t.Errorf("HTTPTimeout = %v, want %v", s.HTTPTimeout, defaultHTTPTimeout)
	}
	if s.AutoInstall {
		t.Error("AutoInstall should default to false")
	}
}

func TestConfigManager_SaveAndLoad(t *testing.T) {
	clearConfigEnv(t)
	cm := NewConfigManager(NewPaths(t.TempDir()))

	want := &Settings{
		CatalogURL:  "https://mirror.example.com/dl/?mode=json",
		ProxyURL:    "https://proxy.example.com",
		DownloadURL: "https://mirror.example.com/dl",
		HTTPTimeout: 5 * time.Second,
		AutoInstall: true,
	}
	if err := cm.Save(want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(cm.ConfigPath()); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	got, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *got != *want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestConfigManager_EnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config.yaml"), "proxy_url: https://from-file.example.com/\nauto_install: true\n")

	t.Setenv("GOLTA_DOWNLOAD_URL", "https://env.example.com/dl/")
	t.Setenv("GOLTA_AUTO_INSTALL", "0")

	s, err := NewConfigManager(NewPaths(root)).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.ProxyURL != "https://from-file.example.com" {
		t.Errorf("ProxyURL = %q, want trailing slash trimmed", s.ProxyURL)
	}
	if s.DownloadURL != "https://env.example.com/dl" {
		t.Errorf("DownloadURL = %q, want env override", s.DownloadURL)
	}
	if s.AutoInstall {
		t.Error("GOLTA_AUTO_INSTALL=0 should override the file")
	}
}

func TestConfigManager_InvalidYAML(t *testing.T) {
	clearConfigEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "config.yaml"), "proxy_url: [unterminated\n")

	if _, err := NewConfigManager(NewPaths(root)).Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolvePaths_HomeOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv("GOLTA_HOME", root)

	p, err := ResolvePaths()
	if err != nil {
		t.Fatalf("ResolvePaths() error: %v", err)
	}
	if p.Root != root {
		t.Errorf("Root = %q, want %q", p.Root, root)
	}
	if p.VersionsDir != filepath.Join(root, "versions") {
		t.Errorf("VersionsDir = %q", p.VersionsDir)
	}
	if got := p.DefaultFile("go"); got != filepath.Join(root, "state", "default.txt") {
		t.Errorf("DefaultFile(go) = %q", got)
	}
	if got := p.DefaultFile("gopls"); got != filepath.Join(root, "state", "gopls.default") {
		t.Errorf("DefaultFile(gopls) = %q", got)
	}
	if got := p.InstallDir("dlv", "v1.23.0"); got != filepath.Join(root, "versions", "dlv", "v1.23.0") {
		t.Errorf("InstallDir(dlv) = %q", got)
	}
}

func TestConfigManager_WriteDefaults(t *testing.T) {
	clearConfigEnv(t)
	cm := NewConfigManager(NewPaths(t.TempDir()))

	wrote, err := cm.WriteDefaults()
	if err != nil || !wrote {
		t.Fatalf("WriteDefaults() = (%v, %v), want (true, nil)", wrote, err)
	}
	got, err := cm.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if *got != *defaultSettings() {
		t.Errorf("Load() = %+v, want defaults", got)
	}

	// An existing file is left alone.
	writeFile(t, cm.ConfigPath(), "auto_install: true\n")
	wrote, err = cm.WriteDefaults()
	if err != nil || wrote {
		t.Fatalf("second WriteDefaults() = (%v, %v), want (false, nil)", wrote, err)
	}
	if got := readFile(t, cm.ConfigPath()); got != "auto_install: true\n" {
		t.Errorf("config rewritten: %q", got)
	}
}
