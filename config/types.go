package config

import "time"

type Config struct {
	// Snapshot source: gopsutil, procfs, synthetic or replay.
	Provider       string `yaml:"provider"`
	ProcfsRoot     string `yaml:"procfs_root"`
	SyntheticCount int    `yaml:"synthetic_count"`
	ReplayPath     string `yaml:"replay_path"`

	ExportPath    string `yaml:"export_path"`
	ExportColumns string `yaml:"export_columns"`

	DBPath string `yaml:"db_path"`

	Policy        string        `yaml:"policy"`
	Interval      time.Duration `yaml:"interval"`
	CostThreshold float64       `yaml:"cost_threshold"`

	ActiveWebhook string            `yaml:"active_webhook"`
	Webhooks      map[string]string `yaml:"webhooks"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Webhook returns the URL of the active webhook, or "" when none is set.
func (c *Config) Webhook() string {
	if c.ActiveWebhook == "" {
		return ""
	}
	return c.Webhooks[c.ActiveWebhook]
}
