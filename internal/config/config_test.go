package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Data:      DataConfig{BasePath: "/some/path"},
		Store:     StoreConfig{Driver: DriverBadger},
		Palette:   PaletteConfig{SavedLimit: 12, DefaultCount: 5, MaxCount: 64},
		RateLimit: RateLimitConfig{AuthPerMinute: 20, AuthBurst: 10},
	}
}

// isolate points .env lookups at an empty temp dir and clears the variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"ENV", "LOG_LEVEL", "DATA_PATH", "STORE_DRIVER", "SERVER_PORT", "CORS_ORIGINS",
		"ACCESS_TOKEN_DURATION", "PALETTE_SAVED_LIMIT", "PALETTE_DEFAULT_MODE", "PALETTE_DEFAULT_BASE",
	} {
		t.Setenv(key, "")
	}
	return t.TempDir()
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"DEBUG", true},
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level
			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data path", func(c *Config) { c.Data.BasePath = "" }},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }},
		{"zero saved limit", func(c *Config) { c.Palette.SavedLimit = 0 }},
		{"default above max", func(c *Config) { c.Palette.DefaultCount = 65 }},
		{"zero rate", func(c *Config) { c.RateLimit.AuthPerMinute = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load([]string{"-env-file", filepath.Join(dir, "missing.env"), "-data-path", dir})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, dir, cfg.Data.BasePath)
	assert.Equal(t, DriverBadger, cfg.Store.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenDuration)
	assert.Equal(t, 720*time.Hour, cfg.Auth.RefreshTokenDuration)
	assert.Equal(t, 12, cfg.Palette.SavedLimit)
	assert.Equal(t, "#7c3aed", cfg.Palette.DefaultBase)
	assert.Equal(t, "Random", cfg.Palette.DefaultMode)
	assert.Equal(t, 5, cfg.Palette.DefaultCount)
	assert.Equal(t, filepath.Join(dir, "db"), cfg.StorePath())
	assert.Equal(t, filepath.Join(dir, "search"), cfg.SearchPath())
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("# comment\nSERVER_PORT=7000\nLOG_LEVEL=\"debug\"\nPALETTE_DEFAULT_MODE=triadic\n"), 0o600))

	t.Setenv("SERVER_PORT", "9000")

	cfg, err := Load([]string{"-env-file", envFile, "-data-path", dir, "-store", "sqlite"})
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port, "env beats .env")
	assert.Equal(t, "debug", cfg.Logger.Level, ".env beats default")
	assert.Equal(t, DriverSQLite, cfg.Store.Driver, "flag beats default")
	assert.Equal(t, "Triadic", cfg.Palette.DefaultMode)
	assert.Equal(t, filepath.Join(dir, "chromafy.db"), cfg.StorePath())

	cfg, err = Load([]string{"-env-file", envFile, "-data-path", dir, "-port", "1234"})
	require.NoError(t, err)
	assert.Equal(t, "1234", cfg.Server.Port, "flag beats env")
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := isolate(t)
	t.Setenv("ACCESS_TOKEN_DURATION", "soon")

	_, err := Load([]string{"-env-file", filepath.Join(dir, "none"), "-data-path", dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid access token duration")
}

func TestReadEnvFile_InvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOOD=1\nBROKEN\n"), 0o600))

	_, err := ReadEnvFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/colours", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "colours"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("rel/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}
