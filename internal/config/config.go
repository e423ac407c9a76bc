// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-search/interconnecting-flights/internal/infrastructure/logger"
)

// Cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Timeouts TimeoutConfig
	Search   SearchConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// TimeoutConfig holds timeout settings for search operations.
type TimeoutConfig struct {
	GlobalSearch    time.Duration `env:"TIMEOUT_GLOBAL_SEARCH" envDefault:"20s"`
	UpstreamRequest time.Duration `env:"TIMEOUT_UPSTREAM_REQUEST" envDefault:"5s"`
}

// SearchConfig holds the itinerary search rules.
type SearchConfig struct {
	Carrier              string        `env:"SEARCH_CARRIER" envDefault:"RYANAIR"`
	MinConnectionTime    time.Duration `env:"SEARCH_MIN_CONNECTION_TIME" envDefault:"2h"`
	DefaultMaxStops      int           `env:"SEARCH_DEFAULT_MAX_STOPS" envDefault:"1"`
	MaxStopsLimit        int           `env:"SEARCH_MAX_STOPS_LIMIT" envDefault:"3"`
	MaxConcurrentFetches int           `env:"SEARCH_MAX_CONCURRENT_FETCHES" envDefault:"8"`
}

// UpstreamConfig holds the timetable API endpoints.
type UpstreamConfig struct {
	RoutesURL     string `env:"RYANAIR_ROUTES_URL" envDefault:"https://services-api.ryanair.com/locate/3/routes"`
	SchedulesURL  string `env:"RYANAIR_SCHEDULES_URL" envDefault:"https://services-api.ryanair.com/timtbl/3/schedules"`
	RetryAttempts int    `env:"UPSTREAM_RETRY_ATTEMPTS" envDefault:"3"`
}

// CacheConfig holds upstream response caching settings.
type CacheConfig struct {
	Backend       string        `env:"CACHE_BACKEND" envDefault:"memory"`
	RoutesTTL     time.Duration `env:"CACHE_ROUTES_TTL" envDefault:"24h"`
	SchedulesTTL  time.Duration `env:"CACHE_SCHEDULES_TTL" envDefault:"1h"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Format      string `env:"LOG_FORMAT" envDefault:"json"`
	Caller      bool   `env:"LOG_CALLER" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"interconnecting-flights"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	positive := []struct {
		name  string
		value time.Duration
	}{
		{"SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout},
		{"TIMEOUT_GLOBAL_SEARCH", cfg.Timeouts.GlobalSearch},
		{"TIMEOUT_UPSTREAM_REQUEST", cfg.Timeouts.UpstreamRequest},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive", p.name)
		}
	}

	if cfg.Timeouts.UpstreamRequest >= cfg.Timeouts.GlobalSearch {
		return fmt.Errorf("TIMEOUT_UPSTREAM_REQUEST (%s) should be less than TIMEOUT_GLOBAL_SEARCH (%s)",
			cfg.Timeouts.UpstreamRequest, cfg.Timeouts.GlobalSearch)
	}

	if err := validateSearch(cfg.Search); err != nil {
		return err
	}
	if err := validateUpstream(cfg.Upstream); err != nil {
		return err
	}
	if err := validateCache(cfg.Cache); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

func validateSearch(s SearchConfig) error {
	if s.Carrier == "" {
		return fmt.Errorf("SEARCH_CARRIER must not be empty")
	}
	if s.MinConnectionTime <= 0 {
		return fmt.Errorf("SEARCH_MIN_CONNECTION_TIME must be positive")
	}
	if s.MaxStopsLimit < 0 {
		return fmt.Errorf("SEARCH_MAX_STOPS_LIMIT must not be negative")
	}
	if s.DefaultMaxStops < 0 || s.DefaultMaxStops > s.MaxStopsLimit {
		return fmt.Errorf("SEARCH_DEFAULT_MAX_STOPS must be between 0 and SEARCH_MAX_STOPS_LIMIT (%d), got %d",
			s.MaxStopsLimit, s.DefaultMaxStops)
	}
	if s.MaxConcurrentFetches < 1 {
		return fmt.Errorf("SEARCH_MAX_CONCURRENT_FETCHES must be at least 1, got %d", s.MaxConcurrentFetches)
	}
	return nil
}

func validateUpstream(u UpstreamConfig) error {
	for name, raw := range map[string]string{"RYANAIR_ROUTES_URL": u.RoutesURL, "RYANAIR_SCHEDULES_URL": u.SchedulesURL} {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	if u.RetryAttempts < 1 {
		return fmt.Errorf("UPSTREAM_RETRY_ATTEMPTS must be at least 1, got %d", u.RetryAttempts)
	}
	return nil
}

// Validate checks the cache settings. Callers that override fields after Load
// use it to re-check them.
func (c CacheConfig) Validate() error {
	return validateCache(c)
}

func validateCache(c CacheConfig) error {
	switch c.Backend {
	case CacheBackendMemory, CacheBackendNone:
	case CacheBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND is redis")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be one of: memory, redis, none; got %q", c.Backend)
	}
	if c.RoutesTTL <= 0 {
		return fmt.Errorf("CACHE_ROUTES_TTL must be positive")
	}
	if c.SchedulesTTL <= 0 {
		return fmt.Errorf("CACHE_SCHEDULES_TTL must be positive")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative")
	}
	return nil
}

// LoggerConfig maps the logging settings onto the logger package configuration.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        c.Logging.Level,
		Format:       c.Logging.Format,
		EnableCaller: c.Logging.Caller,
		ServiceName:  c.Logging.ServiceName,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
