package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxBodyBytes    = int64(8 * 1024 * 1024) // 8MB

	// CORS defaults
	DefaultCORSEnabled = true
	DefaultCORSMaxAge  = 3600 // 1 hour

	// Routing defaults
	DefaultRoutes = "chat.fast=openai:gpt-4o-mini"

	// Auth defaults
	DefaultTokenTTL       = 7 * 24 * time.Hour
	DefaultGuestMaxPerDay = 5

	// Store defaults
	DefaultStoreEnabled = true
	DefaultStorePath    = "data/gateway.db"

	// Search defaults
	DefaultSearchEnabled  = true
	DefaultSearchCacheTTL = 5 * time.Minute
	DefaultSearchTimeout  = 3500 * time.Millisecond
	DefaultTavilyBaseURL  = "https://api.tavily.com"
	DefaultBraveBaseURL   = "https://api.search.brave.com"
	DefaultSearXNGBaseURL = "http://localhost:8090"

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "voidxp"

	// Maintenance defaults
	DefaultGuestSweepSchedule  = "17 2 * * *" // daily, off the hour
	DefaultGuestSweepGrace     = 24 * time.Hour
	DefaultSearchCacheSchedule = "*/10 * * * *"
)

// DefaultProviderBaseURLs are the stock endpoints for each upstream
// provider, applied when the configuration leaves base_url empty.
var DefaultProviderBaseURLs = map[string]string{
	"openai":     "https://api.openai.com",
	"anthropic":  "https://api.anthropic.com",
	"mistral":    "https://api.mistral.ai",
	"groq":       "https://api.groq.com/openai",
	"xai":        "https://api.x.ai",
	"openrouter": "https://openrouter.ai/api",
	"cloudflare": "https://api.cloudflare.com/client/v4",
}

// ApplyDefaults fills in default values for any unset fields.
func ApplyDefaults(cfg *Config) {
	// Server
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// CORS
	if cfg.Server.CORS.AllowedOrigins == nil {
		cfg.Server.CORS.Enabled = DefaultCORSEnabled
		cfg.Server.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.CORS.AllowedMethods == nil {
		cfg.Server.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if cfg.Server.CORS.AllowedHeaders == nil {
		cfg.Server.CORS.AllowedHeaders = []string{"Authorization", "Content-Type", "X-Request-ID"}
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Routing
	if cfg.Routes == "" {
		cfg.Routes = DefaultRoutes
	}

	// Auth
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = DefaultTokenTTL
	}
	if cfg.Auth.GuestMaxPerDay == 0 {
		cfg.Auth.GuestMaxPerDay = DefaultGuestMaxPerDay
	}

	// Providers
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	for name, base := range DefaultProviderBaseURLs {
		pc := cfg.Providers[name]
		if pc.BaseURL == "" {
			pc.BaseURL = base
			cfg.Providers[name] = pc
		}
	}
	if pc := cfg.Providers["anthropic"]; pc.Version == "" {
		pc.Version = "2023-06-01"
		cfg.Providers["anthropic"] = pc
	}

	// Store
	if cfg.Store.Path == "" {
		cfg.Store.Enabled = DefaultStoreEnabled
		cfg.Store.Path = DefaultStorePath
	}

	// Search
	if cfg.Search.CacheTTL == 0 {
		cfg.Search.Enabled = DefaultSearchEnabled
		cfg.Search.CacheTTL = DefaultSearchCacheTTL
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = DefaultSearchTimeout
	}
	if cfg.Search.Tavily.BaseURL == "" {
		cfg.Search.Tavily.BaseURL = DefaultTavilyBaseURL
	}
	if cfg.Search.Brave.BaseURL == "" {
		cfg.Search.Brave.BaseURL = DefaultBraveBaseURL
	}
	if cfg.Search.SearXNG.BaseURL == "" {
		cfg.Search.SearXNG.BaseURL = DefaultSearXNGBaseURL
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}

	// Maintenance
	if cfg.Maintenance.GuestSweepSchedule == "" {
		cfg.Maintenance.GuestSweepSchedule = DefaultGuestSweepSchedule
	}
	if cfg.Maintenance.GuestSweepGrace == 0 {
		cfg.Maintenance.GuestSweepGrace = DefaultGuestSweepGrace
	}
	if cfg.Maintenance.SearchCacheSchedule == "" {
		cfg.Maintenance.SearchCacheSchedule = DefaultSearchCacheSchedule
	}
}
