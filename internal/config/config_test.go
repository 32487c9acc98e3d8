package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.artic.edu/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 12, cfg.API.PageSize)
	assert.Equal(t, 5, cfg.UI.WindowSize)
	assert.Equal(t, 20, cfg.UI.Truncate)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  base_url: http://localhost:9999/api
  page_size: 25
  timeout: 5s
cache:
  enabled: false
ui:
  window_size: 7
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api", cfg.API.BaseURL)
	assert.Equal(t, 25, cfg.API.PageSize)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "artworks", cfg.API.Resource, "unset keys keep defaults")
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "", cfg.CacheDir())
	assert.Equal(t, 7, cfg.UI.WindowSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  page_size: 10\n"), 0o644))

	t.Setenv("VITRINE_API_PAGE_SIZE", "40")
	t.Setenv("VITRINE_UI_START_PAGE", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.API.PageSize)
	assert.Equal(t, 3, cfg.UI.StartPage)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero page size", func(c *Config) { c.API.PageSize = 0 }},
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }},
		{"negative rate", func(c *Config) { c.API.RateLimit = -1 }},
		{"zero window", func(c *Config) { c.UI.WindowSize = 0 }},
		{"zero start page", func(c *Config) { c.UI.StartPage = 0 }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestClearCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "abc"), 0o755))

	cfg := DefaultConfig()
	cfg.Cache.Dir = dir
	require.NoError(t, cfg.ClearCache())

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
