package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCatalogURL  = "https://go.dev/dl/?mode=json&include=all"
	DefaultProxyURL    = "https://proxy.golang.org"
	DefaultDownloadURL = "https://go.dev/dl"
	defaultHTTPTimeout = 30 * time.Second
)

// Settings holds user preferences stored at ~/.golta/config.yaml.
type Settings struct {
	CatalogURL  string        `yaml:"catalog_url,omitempty"`
	ProxyURL    string        `yaml:"proxy_url,omitempty"`
	DownloadURL string        `yaml:"download_url,omitempty"`
	HTTPTimeout time.Duration `yaml:"http_timeout,omitempty"`
	AutoInstall bool          `yaml:"auto_install,omitempty"`
}

// ConfigManager handles reading and writing the golta configuration.
type ConfigManager struct {
	path string
	mu   sync.RWMutex
}

// NewConfigManager creates a ConfigManager for the config file under paths.
func NewConfigManager(paths Paths) *ConfigManager {
	return &ConfigManager{path: paths.ConfigFile}
}

// ConfigPath returns the full path to the config file.
func (cm *ConfigManager) ConfigPath() string {
	return cm.path
}

// Load reads the config from disk and applies environment overrides.
// Returns default settings if the file doesn't exist.
func (cm *ConfigManager) Load() (*Settings, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	s := defaultSettings()
	data, err := os.ReadFile(cm.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", cm.path, err)
		}
	}
	applyEnvOverrides(s)
	s.fillDefaults()
	return s, nil
}

// Save writes the config to disk atomically, creating the directory if needed.
func (cm *ConfigManager) Save(s *Settings) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(cm.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	tmpPath := cm.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, cm.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// WriteDefaults saves the default settings when no config file exists yet,
// giving users a file to edit. It reports whether a file was written.
func (cm *ConfigManager) WriteDefaults() (bool, error) {
	if _, err := os.Stat(cm.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config: %w", err)
	}
	if err := cm.Save(defaultSettings()); err != nil {
		return false, err
	}
	return true, nil
}

func defaultSettings() *Settings {
	return &Settings{
		CatalogURL:  DefaultCatalogURL,
		ProxyURL:    DefaultProxyURL,
		DownloadURL: DefaultDownloadURL,
		HTTPTimeout: defaultHTTPTimeout,
	}
}

// fillDefaults restores defaults for fields a config file explicitly blanked.
func (s *Settings) fillDefaults() {
	if s.CatalogURL == "" {
		s.CatalogURL = DefaultCatalogURL
	}
	if s.ProxyURL == "" {
		s.ProxyURL = DefaultProxyURL
	}
	if s.DownloadURL == "" {
		s.DownloadURL = DefaultDownloadURL
	}
	if s.HTTPTimeout <= 0 {
		s.HTTPTimeout = defaultHTTPTimeout
	}
	s.ProxyURL = strings.TrimSuffix(s.ProxyURL, "/")
	s.DownloadURL = strings.TrimSuffix(s.DownloadURL, "/")
}

func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("GOLTA_CATALOG_URL"); v != "" {
		s.CatalogURL = v
	}
	if v := os.Getenv("GOLTA_PROXY_URL"); v != "" {
		s.ProxyURL = v
	}
	if v := os.Getenv("GOLTA_DOWNLOAD_URL"); v != "" {
		s.DownloadURL = v
	}
	if v, ok := os.LookupEnv("GOLTA_AUTO_INSTALL"); ok {
		s.AutoInstall = truthy(v)
	}
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
