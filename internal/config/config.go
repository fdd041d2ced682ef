// Package config loads the server configuration from flags, environment variables and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chromafy/chromafy-server/internal/color"
)

// Store drivers.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Store     StoreConfig
	Server    ServerConfig
	Auth      AuthConfig
	Palette   PaletteConfig
	RateLimit RateLimitConfig

	// EnvFile is the .env path that was read, if any.
	EnvFile string
	// WatchEnvFile re-applies LOG_LEVEL when EnvFile changes.
	WatchEnvFile bool
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig locates persistent state: the store, the search index and the auth key.
type DataConfig struct {
	BasePath string
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
	EnableH2C    bool
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key, set by auth.LoadOrGenerateKey at startup.
	AccessTokenKey       []byte
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
}

// PaletteConfig holds the palette library and generator settings.
type PaletteConfig struct {
	// SavedLimit is how many palettes a user keeps; older ones are dropped.
	SavedLimit   int
	DefaultBase  string
	DefaultMode  string
	DefaultCount int
	// MaxCount caps the count accepted by the generate endpoint.
	MaxCount int
}

// RateLimitConfig limits credential endpoints per client IP.
type RateLimitConfig struct {
	AuthPerMinute int
	AuthBurst     int
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load resolves every setting with precedence:
// 1. Command-line flags.
// 2. Environment variables.
// 3. .env file.
// 4. Default values.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("chromafy-server", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Base path for persistent data")
	storeDriver := fs.String("store", "", "Store driver (badger, sqlite)")

	serverName := fs.String("server-name", "", "Name for the server")
	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated allowed CORS origins")
	enableH2C := fs.String("h2c", "", "Serve cleartext HTTP/2 (default: false)")

	accessTokenDuration := fs.String("access-token-duration", "", "Access token lifetime (e.g., 15m)")
	refreshTokenDuration := fs.String("refresh-token-duration", "", "Refresh token lifetime (e.g., 720h)")

	savedLimit := fs.String("saved-limit", "", "Saved palettes kept per user (default: 12)")
	maxCount := fs.String("max-count", "", "Maximum colours per generated palette (default: 64)")

	authPerMinute := fs.String("auth-rate", "", "Credential requests per minute per IP (default: 20)")
	authBurst := fs.String("auth-burst", "", "Credential request burst per IP (default: 10)")

	envFile := fs.String("env-file", ".env", "Path to .env file")
	watchEnvFile := fs.String("watch-env-file", "", "Reload LOG_LEVEL when the .env file changes")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// A missing .env file is fine.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getConfigValue(*storeDriver, "STORE_DRIVER", DriverBadger)),
		},
		Server: ServerConfig{
			Name:        getConfigValue(*serverName, "SERVER_NAME", "Chromafy Server"),
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
			EnableH2C:   getBoolConfigValue(*enableH2C, "SERVER_H2C", false),
		},
		Palette: PaletteConfig{
			SavedLimit:   getIntConfigValue(*savedLimit, "PALETTE_SAVED_LIMIT", 12),
			DefaultBase:  color.NormalizeHex(getConfigValue("", "PALETTE_DEFAULT_BASE", color.DefaultBase)),
			DefaultMode:  string(color.ParseMode(getConfigValue("", "PALETTE_DEFAULT_MODE", string(color.DefaultMode)))),
			DefaultCount: getIntConfigValue("", "PALETTE_DEFAULT_COUNT", color.DefaultCount),
			MaxCount:     getIntConfigValue(*maxCount, "PALETTE_MAX_COUNT", 64),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: getIntConfigValue(*authPerMinute, "AUTH_RATE_PER_MINUTE", 20),
			AuthBurst:     getIntConfigValue(*authBurst, "AUTH_RATE_BURST", 10),
		},
		EnvFile:      *envFile,
		WatchEnvFile: getBoolConfigValue(*watchEnvFile, "WATCH_ENV_FILE", false),
	}

	durations := []struct {
		flagValue, envKey, def, label string
		dst                           *time.Duration
	}{
		{*accessTokenDuration, "ACCESS_TOKEN_DURATION", "15m", "access token duration", &cfg.Auth.AccessTokenDuration},
		{*refreshTokenDuration, "REFRESH_TOKEN_DURATION", "720h", "refresh token duration", &cfg.Auth.RefreshTokenDuration},
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", "read timeout", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", "write timeout", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", "idle timeout", &cfg.Server.IdleTimeout},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flagValue, d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.label, raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	if !ValidLogLevel(c.Logger.Level) {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	switch c.Store.Driver {
	case DriverBadger, DriverSQLite:
	default:
		return fmt.Errorf("invalid store driver: %s (must be badger or sqlite)", c.Store.Driver)
	}

	if c.Palette.SavedLimit < 1 {
		return fmt.Errorf("saved palette limit must be positive, got %d", c.Palette.SavedLimit)
	}
	if c.Palette.MaxCount < 1 {
		return fmt.Errorf("max palette count must be positive, got %d", c.Palette.MaxCount)
	}
	if c.Palette.DefaultCount < 1 || c.Palette.DefaultCount > c.Palette.MaxCount {
		return fmt.Errorf("default palette count %d outside 1..%d", c.Palette.DefaultCount, c.Palette.MaxCount)
	}

	if c.RateLimit.AuthPerMinute < 1 || c.RateLimit.AuthBurst < 1 {
		return errors.New("auth rate limit and burst must be positive")
	}

	return nil
}

// ValidLogLevel reports whether level is one of debug, info, warn or error.
func ValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned unchanged.
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

func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Chromafy", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// StorePath is where the selected driver keeps its files.
func (c *Config) StorePath() string {
	if c.Store.Driver == DriverSQLite {
		return filepath.Join(c.Data.BasePath, "chromafy.db")
	}
	return filepath.Join(c.Data.BasePath, "db")
}

// SearchPath is the bleve index directory.
func (c *Config) SearchPath() string {
	return filepath.Join(c.Data.BasePath, "search")
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envKey != "" {
		if envValue := os.Getenv(envKey); envValue != "" {
			return envValue
		}
	}
	return defaultValue
}

// getBoolConfigValue accepts "true", "1" and "yes" (case-insensitive) as true.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue falls back to the default when the value does not parse.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(strValue))
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

// ReadEnvFile parses a .env file into a map.
// Format: KEY=value (one per line, # for comments, optional quotes).
func ReadEnvFile(path string) (map[string]string, error) {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		values[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}

	return values, scanner.Err()
}

// loadEnvFile exports the file's values without overriding variables already set.
func loadEnvFile(path string) error {
	values, err := ReadEnvFile(path)
	if err != nil {
		return err
	}
	for key, value := range values {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set env var %s: %w", key, err)
		}
	}
	return nil
}
