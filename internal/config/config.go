// Package config loads and validates configuration from the environment,
// optionally seeded from a TOML file. Environment variables always win over
// file values; secrets are never hardcoded in source.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

// Config holds all runtime configuration.
type Config struct {
	// GraphHopper credential, shared by geocoding and routing.
	GraphHopperAPIKey string `toml:"graphhopper_api_key"`

	// OpenWeatherMap credential. Empty disables weather lookups entirely.
	OpenWeatherAPIKey string `toml:"openweather_api_key"`

	// Endpoint overrides, mainly for self-hosted instances and tests.
	GeocodeURL string `toml:"geocode_url"`
	RouteURL   string `toml:"route_url"`
	WeatherURL string `toml:"weather_url"`

	// Locale for turn instructions.
	Locale string `toml:"locale"`

	// HTTPTimeout bounds every outbound API call.
	HTTPTimeout time.Duration `toml:"-"`

	// RouteCacheDSN, when set, switches the route cache from in-process
	// memory to a shared Postgres table.
	RouteCacheDSN string `toml:"route_cache_dsn"`

	// Port is the HTTP server listen port (server binary only).
	Port int `toml:"port"`
}

// Load reads configuration from the optional TOML file at path (pass "" to
// skip), overlays environment variables, applies defaults and validates.
// Returns a ConfigError for any missing or invalid value.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, &ConfigError{Field: "config_file", Message: err.Error()}
		}
	}

	overlayString(&cfg.GraphHopperAPIKey, "GRAPHHOPPER_API_KEY")
	overlayString(&cfg.OpenWeatherAPIKey, "OPENWEATHER_API_KEY")
	overlayString(&cfg.GeocodeURL, "GEOCODE_URL")
	overlayString(&cfg.RouteURL, "ROUTE_URL")
	overlayString(&cfg.WeatherURL, "WEATHER_URL")
	overlayString(&cfg.Locale, "LOCALE")
	overlayString(&cfg.RouteCacheDSN, "ROUTE_CACHE_DSN")

	cfg.HTTPTimeout = parseDurationEnv("HTTP_TIMEOUT", 10*time.Second)

	if cfg.Locale == "" {
		cfg.Locale = "en"
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, &ConfigError{Field: "PORT", Message: "must be a valid integer"}
		}
		cfg.Port = port
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate re-checks required fields on an already-constructed Config.
func (c *Config) Validate() error {
	var errs []error
	if c.GraphHopperAPIKey == "" {
		errs = append(errs, &ConfigError{Field: "GRAPHHOPPER_API_KEY", Message: "required but not set"})
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, &ConfigError{Field: "PORT", Message: "must be between 1 and 65535"})
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, &ConfigError{Field: "HTTP_TIMEOUT", Message: "must be positive"})
	}
	return errors.Join(errs...)
}

// WeatherEnabled reports whether an OpenWeatherMap key is configured.
func (c *Config) WeatherEnabled() bool {
	return c.OpenWeatherAPIKey != ""
}

func overlayString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// parseDurationEnv reads a duration from an environment variable.
// Falls back to defaultVal if the variable is unset or unparseable.
// Accepts Go duration strings like "5s", "1m".
func parseDurationEnv(key string, defaultVal time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultVal
	}
	return d
}
