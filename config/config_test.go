package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderGopsutil, cfg.Provider)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, "greedy", cfg.Policy)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "provider: gopsutil")
	assert.Contains(t, string(data), "interval: 30s")
}

func TestLoadFromPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `provider: synthetic
synthetic_count: 5
interval: 2m
active_webhook: ops
webhooks:
  ops: https://example.invalid/hook
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderSynthetic, cfg.Provider)
	assert.Equal(t, 5, cfg.SyntheticCount)
	assert.Equal(t, 2*time.Minute, cfg.Interval)
	assert.Equal(t, "https://example.invalid/hook", cfg.Webhook())
	assert.Equal(t, "process_data.csv", cfg.ExportPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromGarbageFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [unterminated"), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown provider": "provider: windows\n",
		"replay no path":   "provider: replay\n",
		"bad webhook":      "active_webhook: nope\n",
		"negative count":   "synthetic_count: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestConfigPathEnv(t *testing.T) {
	t.Setenv("PROCSCHED_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", ConfigPath())
}

func TestWebhookEmpty(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "", cfg.Webhook())
}

func TestParseIsStrict(t *testing.T) {
	dir := t.TempDir()

	_, err := Parse(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "missing.yaml"))
	assert.True(t, os.IsNotExist(statErr))

	path := filepath.Join(dir, "config.yaml")
	garbage := []byte("provider: synthetic\nwebhooks: [unterminated\n")
	require.NoError(t, os.WriteFile(path, garbage, 0o644))
	_, err = Parse(path)
	assert.Error(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, garbage, data)

	require.NoError(t, os.WriteFile(path, []byte("provider: synthetic\npolicy: io\n"), 0o644))
	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderSynthetic, cfg.Provider)
	assert.Equal(t, "io", cfg.Policy)
	assert.Equal(t, 30*time.Second, cfg.Interval)
}
