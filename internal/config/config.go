// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Storage    StorageConfig
	Server     ServerConfig
	Storefront StorefrontConfig
	Pages      PagesConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
	// File enables a rotating log file next to console output. Empty disables it.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// StorageConfig selects where the durable slots live.
type StorageConfig struct {
	// DataPath holds embedded databases and the search index.
	DataPath string
	// Backend is one of badger, bolt, sqlite, redis or memory.
	Backend     string
	RedisAddr   string
	RedisPrefix string
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string
}

// StorefrontConfig holds timings of the simulated integrations and draft housekeeping.
type StorefrontConfig struct {
	LeadDelay            time.Duration
	GeneratorDelay       time.Duration
	DraftTTL             time.Duration
	DraftCleanupSchedule string
}

// PagesConfig configures the informational pages.
type PagesConfig struct {
	// OverridePath is an optional directory of <name>.html files replacing the built-in pages.
	OverridePath string
}

var (
	validEnvironments = []string{"development", "staging", "production"}
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validBackends     = []string{"badger", "bolt", "sqlite", "redis", "memory"}
)

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load builds a Config with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("helojet", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "Rotating log file path (optional)")
	dataPath := fs.String("data-path", "", "Directory for durable data (default: ~/HeloJet/data)")
	backend := fs.String("store-backend", "", "Slot backend: badger, bolt, sqlite, redis, memory")
	redisAddr := fs.String("redis-addr", "", "Redis address for the redis backend")

	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated allowed CORS origins (default: *)")

	leadDelay := fs.String("lead-delay", "", "Simulated lead submission delay (default: 1s)")
	generatorDelay := fs.String("generator-delay", "", "Simulated page generation delay (default: 1.5s)")
	draftTTL := fs.String("draft-ttl", "", "Idle drafts older than this are dropped (default: 24h)")
	draftSchedule := fs.String("draft-cleanup-schedule", "", "Cron spec for draft cleanup (default: @every 1h)")

	pagesOverride := fs.String("pages-override-path", "", "Directory of page overrides")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// A missing .env file is fine. Existing environment variables win.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:      getConfigValue(*logLevel, "LOG_LEVEL", "info"),
			File:       getConfigValue(*logFile, "LOG_FILE", ""),
			MaxSizeMB:  getIntConfigValue("", "LOG_MAX_SIZE_MB", 50),
			MaxBackups: getIntConfigValue("", "LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getIntConfigValue("", "LOG_MAX_AGE_DAYS", 28),
		},
		Storage: StorageConfig{
			DataPath:    getConfigValue(*dataPath, "DATA_PATH", ""),
			Backend:     strings.ToLower(getConfigValue(*backend, "STORE_BACKEND", "badger")),
			RedisAddr:   getConfigValue(*redisAddr, "REDIS_ADDR", "localhost:6379"),
			RedisPrefix: getConfigValue("", "REDIS_PREFIX", "helojet:"),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Storefront: StorefrontConfig{
			DraftCleanupSchedule: getConfigValue(*draftSchedule, "DRAFT_CLEANUP_SCHEDULE", "@every 1h"),
		},
		Pages: PagesConfig{
			OverridePath: getConfigValue(*pagesOverride, "PAGES_OVERRIDE_PATH", ""),
		},
	}

	durations := []struct {
		dest              *time.Duration
		flagValue, envKey string
		defaultValue      string
	}{
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
		{&cfg.Storefront.LeadDelay, *leadDelay, "LEAD_DELAY", "1s"},
		{&cfg.Storefront.GeneratorDelay, *generatorDelay, "GENERATOR_DELAY", "1.5s"},
		{&cfg.Storefront.DraftTTL, *draftTTL, "DRAFT_TTL", "24h"},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flagValue, d.envKey, d.defaultValue)
		parsed, err := cast.ToDurationE(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.dest = parsed
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}
	if !slices.Contains(validEnvironments, c.App.Environment) {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	if !slices.Contains(validLogLevels, strings.ToLower(c.Logger.Level)) {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if !slices.Contains(validBackends, c.Storage.Backend) {
		return fmt.Errorf("invalid store backend: %s (must be one of %s)", c.Storage.Backend, strings.Join(validBackends, ", "))
	}
	if c.Storage.Backend == "redis" && c.Storage.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required for the redis backend")
	}
	if c.Storage.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	for name, d := range map[string]time.Duration{
		"LEAD_DELAY":      c.Storefront.LeadDelay,
		"GENERATOR_DELAY": c.Storefront.GeneratorDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if c.Storefront.DraftTTL <= 0 {
		return errors.New("DRAFT_TTL must be positive")
	}

	return nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func (c *Config) expandPaths() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	if c.Storage.DataPath, err = expandPath(c.Storage.DataPath, filepath.Join(homeDir, "HeloJet", "data")); err != nil {
		return fmt.Errorf("invalid data path: %w", err)
	}
	if c.Logger.File, err = expandPath(c.Logger.File, ""); err != nil {
		return fmt.Errorf("invalid log file: %w", err)
	}
	if c.Pages.OverridePath, err = expandPath(c.Pages.OverridePath, ""); err != nil {
		return fmt.Errorf("invalid pages override path: %w", err)
	}
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getIntConfigValue returns an int from flag, env var, or default.
// Unparsable values fall back to the default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	v, err := cast.ToIntE(strValue)
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
