package config

import "time"

// Config is the root configuration for the gateway.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server"`

	// Routes is the raw provider routing string consumed by pkg/routing.
	// Format: comma-separated operation.tier=provider:model entries.
	Routes string `yaml:"routes"`

	// Auth configures tokens, password hashing, and guest quotas.
	Auth AuthConfig `yaml:"auth"`

	// Providers holds upstream credentials keyed by provider name.
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Store configures the sqlite-backed event store.
	Store StoreConfig `yaml:"store"`

	// Search configures web-search enrichment.
	Search SearchConfig `yaml:"search"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Maintenance configures background housekeeping jobs.
	Maintenance MaintenanceConfig `yaml:"maintenance"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	ListenAddress   string        `yaml:"listen_address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`

	// CORS controls cross-origin access for browser clients.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// AuthConfig configures authentication and guest admission.
type AuthConfig struct {
	// TokenSecret signs session JWTs. Empty disables token issuance.
	TokenSecret string `yaml:"token_secret"`

	// TokenTTL is how long issued session tokens remain valid.
	TokenTTL time.Duration `yaml:"token_ttl"`

	// GuestMaxPerDay caps unauthenticated requests per guest per UTC day.
	GuestMaxPerDay int `yaml:"guest_max_per_day"`
}

// ProviderConfig holds credentials for one upstream provider.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`

	// Version is the API version header, used by Anthropic.
	Version string `yaml:"version,omitempty"`

	// AccountID is the account identifier, used by Cloudflare.
	AccountID string `yaml:"account_id,omitempty"`
}

// StoreConfig configures the event store.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SearchConfig configures web-search enrichment.
type SearchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Timeout  time.Duration `yaml:"timeout"`

	Tavily  SearchProviderConfig `yaml:"tavily"`
	Brave   SearchProviderConfig `yaml:"brave"`
	SearXNG SearXNGConfig        `yaml:"searxng"`
}

// SearchProviderConfig holds credentials for a hosted search API.
type SearchProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SearXNGConfig points at a self-hosted SearXNG instance.
type SearXNGConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"base_url"`
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum level: "debug", "info", "warn", or "error".
	Level string `yaml:"level"`

	// Format is "json" or "text".
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// MaintenanceConfig configures background housekeeping.
type MaintenanceConfig struct {
	// GuestSweepSchedule is the cron spec for evicting stale guest
	// quota entries.
	GuestSweepSchedule string `yaml:"guest_sweep_schedule"`

	// GuestSweepGrace keeps an expired entry around this long before
	// eviction.
	GuestSweepGrace time.Duration `yaml:"guest_sweep_grace"`

	// SearchCacheSchedule is the cron spec for pruning the search cache.
	SearchCacheSchedule string `yaml:"search_cache_schedule"`

	// WatchConfig reloads the routing table when the config file changes.
	WatchConfig bool `yaml:"watch_config"`
}
