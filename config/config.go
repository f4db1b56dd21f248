package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderGopsutil  = "gopsutil"
	ProviderProcFS    = "procfs"
	ProviderSynthetic = "synthetic"
	ProviderReplay    = "replay"
)

var (
	configDir  = filepath.Join(os.Getenv("HOME"), ".procsched")
	configPath = filepath.Join(configDir, "config.yaml")
)

// LoadConfig reads the user config, honouring PROCSCHED_CONFIG. A missing or
// unreadable file is replaced by the defaults, which are written back so the
// user has something to edit.
func LoadConfig() (*Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := defaultConfig()
		_ = saveTo(path, cfg)
		return cfg, nil
	}

	cfg, err := decode(data)
	if err != nil {
		cfg := defaultConfig()
		_ = saveTo(path, cfg)
		return cfg, nil
	}
	return validated(path, cfg)
}

// Parse reads path strictly: read and decode errors are returned and the
// file is never written.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return validated(path, cfg)
}

func decode(data []byte) (*Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func validated(path string, cfg *Config) (*Config, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func SaveConfig(cfg *Config) error {
	return saveTo(ConfigPath(), cfg)
}

func saveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func ConfigPath() string {
	if p := os.Getenv("PROCSCHED_CONFIG"); p != "" {
		return p
	}
	return configPath
}

// Validate checks fields that have no safe fallback.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGopsutil, ProviderProcFS, ProviderSynthetic:
	case ProviderReplay:
		if c.ReplayPath == "" {
			return fmt.Errorf("provider %q needs replay_path", c.Provider)
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if c.SyntheticCount < 0 {
		return fmt.Errorf("synthetic_count must be >= 0, got %d", c.SyntheticCount)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.ActiveWebhook != "" {
		if _, ok := c.Webhooks[c.ActiveWebhook]; !ok {
			return fmt.Errorf("active_webhook %q is not defined", c.ActiveWebhook)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	d := defaultConfig()
	if c.Provider == "" {
		c.Provider = d.Provider
	}
	if c.ProcfsRoot == "" {
		c.ProcfsRoot = d.ProcfsRoot
	}
	if c.SyntheticCount == 0 {
		c.SyntheticCount = d.SyntheticCount
	}
	if c.ExportPath == "" {
		c.ExportPath = d.ExportPath
	}
	if c.DBPath == "" {
		c.DBPath = d.DBPath
	}
	if c.Policy == "" {
		c.Policy = d.Policy
	}
	if c.Interval == 0 {
		c.Interval = d.Interval
	}
	if c.Webhooks == nil {
		c.Webhooks = map[string]string{}
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
}

func defaultConfig() *Config {
	return &Config{
		Provider:       ProviderGopsutil,
		ProcfsRoot:     "/proc",
		SyntheticCount: 64,
		ExportPath:     "process_data.csv",
		DBPath:         filepath.Join(configDir, "episodes.db"),
		Policy:         "greedy",
		Interval:       30 * time.Second,
		CostThreshold:  8 << 30,
		Webhooks:       map[string]string{},
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Default returns a fresh copy of the built-in configuration.
func Default() *Config {
	return defaultConfig()
}
