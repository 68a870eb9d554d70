package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path,
// applies defaults, and validates the result. A missing file is not an
// error: the gateway runs fine on pure defaults plus environment
// overrides.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and then
// applies VOIDXP_* environment variable overrides. Environment variables
// always take precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
// Variables use the format VOIDXP_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Server
	if val := os.Getenv("VOIDXP_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("VOIDXP_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	// Routing. VOIDXP_ROUTES is the whole raw routing string.
	if val := os.Getenv("VOIDXP_ROUTES"); val != "" {
		cfg.Routes = val
	}

	// Auth
	if val := os.Getenv("VOIDXP_AUTH_TOKEN_SECRET"); val != "" {
		cfg.Auth.TokenSecret = val
	}
	if val := os.Getenv("VOIDXP_AUTH_GUEST_MAX_PER_DAY"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Auth.GuestMaxPerDay = n
		}
	}

	// Provider credentials
	applyProviderEnvOverrides(cfg, "openai", "VOIDXP_OPENAI_API_KEY")
	applyProviderEnvOverrides(cfg, "anthropic", "VOIDXP_ANTHROPIC_API_KEY")
	applyProviderEnvOverrides(cfg, "mistral", "VOIDXP_MISTRAL_API_KEY")
	applyProviderEnvOverrides(cfg, "groq", "VOIDXP_GROQ_API_KEY")
	applyProviderEnvOverrides(cfg, "xai", "VOIDXP_XAI_API_KEY")
	applyProviderEnvOverrides(cfg, "openrouter", "VOIDXP_OPENROUTER_API_KEY")
	applyProviderEnvOverrides(cfg, "meta", "VOIDXP_META_API_KEY")
	applyProviderEnvOverrides(cfg, "cloudflare", "VOIDXP_CF_API_TOKEN")
	if val := os.Getenv("VOIDXP_CF_ACCOUNT_ID"); val != "" {
		pc := cfg.Providers["cloudflare"]
		pc.AccountID = val
		cfg.Providers["cloudflare"] = pc
	}

	// Store
	if val := os.Getenv("VOIDXP_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}

	// Search
	if val := os.Getenv("VOIDXP_SEARCH_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Search.Enabled = b
		}
	}
	if val := os.Getenv("VOIDXP_TAVILY_API_KEY"); val != "" {
		cfg.Search.Tavily.APIKey = val
	}
	if val := os.Getenv("VOIDXP_BRAVE_API_KEY"); val != "" {
		cfg.Search.Brave.APIKey = val
	}
	if val := os.Getenv("VOIDXP_SEARXNG_BASE_URL"); val != "" {
		cfg.Search.SearXNG.BaseURL = val
	}

	// Telemetry
	if val := os.Getenv("VOIDXP_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("VOIDXP_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
}

func applyProviderEnvOverrides(cfg *Config, name, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		pc := cfg.Providers[name]
		pc.APIKey = val
		cfg.Providers[name] = pc
	}
}
