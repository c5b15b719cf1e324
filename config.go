package pubadmin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eringen/pubadmin/api"
)

// Config holds all configuration for a pubadmin instance.
type Config struct {
	Addr string `mapstructure:"addr"` // Listen address (default ":3000")

	APIBaseURL string        `mapstructure:"api_base_url"` // Content backend root (default "http://127.0.0.1:6988/api/v1")
	APITimeout time.Duration `mapstructure:"api_timeout"`  // Per-request backend timeout (default 10s)

	DatabasePath string `mapstructure:"database_path"` // SQLite path for table preferences (default "data/admin.db")

	SessionSecret string `mapstructure:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	ItemsPerPage    int           `mapstructure:"items_per_page"`    // Default page size (default 100)
	MaxVisiblePages int           `mapstructure:"max_visible_pages"` // Numbered pager links (default 6)
	PageCacheTTL    time.Duration `mapstructure:"page_cache_ttl"`    // Fetched page cache TTL (default 30s, negative disables)
	FetchWait       time.Duration `mapstructure:"fetch_wait"`        // How long a request waits for a fetch before rendering the loading state (default 800ms)
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`     // Upper bound of a background fetch (default 15s)
	WorkspaceTTL    time.Duration `mapstructure:"workspace_ttl"`     // Idle time before a browser's table state is dropped (default 2h)

	DeleteLimit  int           `mapstructure:"delete_limit"`  // Bulk deletes per IP per window (default 10)
	DeleteWindow time.Duration `mapstructure:"delete_window"` // Window of DeleteLimit (default 1m)

	LogLevel string `mapstructure:"log_level"` // debug, info, warn, error, off (default "info")
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "http://127.0.0.1:6988/api/v1"
	}
	if c.APITimeout == 0 {
		c.APITimeout = 10 * time.Second
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/admin.db"
	}
	if c.ItemsPerPage <= 0 {
		c.ItemsPerPage = 100
	}
	if c.MaxVisiblePages <= 0 {
		c.MaxVisiblePages = 6
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 30 * time.Second
	}
	if c.FetchWait <= 0 {
		c.FetchWait = 800 * time.Millisecond
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.WorkspaceTTL <= 0 {
		c.WorkspaceTTL = 2 * time.Hour
	}
	if c.DeleteLimit <= 0 {
		c.DeleteLimit = 10
	}
	if c.DeleteWindow <= 0 {
		c.DeleteWindow = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("pubadmin: SessionSecret is required")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("pubadmin: APIBaseURL %q must be an http(s) URL", c.APIBaseURL)
	}
	return nil
}

// LoadConfig reads configuration from an optional YAML file and from
// PUBADMIN_* environment variables, which take precedence. With an empty
// path, "pubadmin.yaml" is looked up in the working directory and a missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	var defaults Config
	defaults.setDefaults()

	v := viper.New()
	v.SetEnvPrefix("PUBADMIN")
	v.AutomaticEnv()
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("api_base_url", defaults.APIBaseURL)
	v.SetDefault("api_timeout", defaults.APITimeout)
	v.SetDefault("database_path", defaults.DatabasePath)
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("items_per_page", defaults.ItemsPerPage)
	v.SetDefault("max_visible_pages", defaults.MaxVisiblePages)
	v.SetDefault("page_cache_ttl", defaults.PageCacheTTL)
	v.SetDefault("fetch_wait", defaults.FetchWait)
	v.SetDefault("fetch_timeout", defaults.FetchTimeout)
	v.SetDefault("workspace_ttl", defaults.WorkspaceTTL)
	v.SetDefault("delete_limit", defaults.DeleteLimit)
	v.SetDefault("delete_window", defaults.DeleteWindow)
	v.SetDefault("log_level", defaults.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("pubadmin: read config: %w", err)
		}
	} else {
		v.SetConfigName("pubadmin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("pubadmin: read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("pubadmin: decode config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets such as htmx.min.js
// (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithAPIClient replaces the backend client built from Config.
func WithAPIClient(c *api.Client) Option {
	return func(a *App) {
		a.API = c
	}
}
