package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds collection API configuration
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Resource  string        `mapstructure:"resource"`   // collection path, e.g. "artworks"
	PageSize  int           `mapstructure:"page_size"`  // rows requested per page
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second, 0 = unlimited
	Burst     int           `mapstructure:"burst"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CacheConfig holds page cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	WindowSize int `mapstructure:"window_size"` // numbered page buttons
	Truncate   int `mapstructure:"truncate"`    // max display cells per text column
	StartPage  int `mapstructure:"start_page"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "https://api.artic.edu/api/v1",
			Resource:  "artworks",
			PageSize:  12,
			Timeout:   30 * time.Second,
			RateLimit: 1,
			Burst:     3,
			UserAgent: "vitrine (terminal collection browser)",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCachePath(),
			TTL:     24 * time.Hour,
		},
		UI: UIConfig{
			WindowSize: 5,
			Truncate:   20,
			StartPage:  1,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vitrine", "vitrine.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vitrine", "vitrine.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vitrine")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "vitrine")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "vitrine", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vitrine", "cache")
	}
}

// Load reads configuration from file and environment into a fresh viper
// instance. An explicit configFile must exist; otherwise a missing
// config.yaml just means defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (VITRINE_API_PAGE_SIZE etc.)
	v.SetEnvPrefix("VITRINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.resource", d.API.Resource)
	v.SetDefault("api.page_size", d.API.PageSize)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.rate_limit", d.API.RateLimit)
	v.SetDefault("api.burst", d.API.Burst)
	v.SetDefault("api.user_agent", d.API.UserAgent)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.ttl", d.Cache.TTL)

	v.SetDefault("ui.window_size", d.UI.WindowSize)
	v.SetDefault("ui.truncate", d.UI.Truncate)
	v.SetDefault("ui.start_page", d.UI.StartPage)

	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Resource == "" {
		return fmt.Errorf("api.resource is required")
	}
	if c.API.PageSize <= 0 {
		return fmt.Errorf("api.page_size must be > 0, got %d", c.API.PageSize)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0, got %s", c.API.Timeout)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must be >= 0, got %v", c.API.RateLimit)
	}
	if c.UI.WindowSize <= 0 {
		return fmt.Errorf("ui.window_size must be > 0, got %d", c.UI.WindowSize)
	}
	if c.UI.StartPage <= 0 {
		return fmt.Errorf("ui.start_page must be >= 1, got %d", c.UI.StartPage)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0, got %s", c.Cache.TTL)
	}
	return nil
}

// CacheDir returns the cache directory, or "" when caching is disabled
// (memory-only store).
func (c *Config) CacheDir() string {
	if !c.Cache.Enabled {
		return ""
	}
	return expandHome(c.Cache.Dir)
}

// ClearCache removes all cached pages
func (c *Config) ClearCache() error {
	dir := expandHome(c.Cache.Dir)
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Path returns the log file path with a leading ~ expanded
func (c LoggingConfig) Path() string {
	return expandHome(c.File)
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
