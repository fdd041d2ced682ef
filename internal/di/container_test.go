package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromafy/chromafy-server/internal/api"
	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/di/providers"
	"github.com/chromafy/chromafy-server/internal/service"
)

func testConfig(dir, driver string) do.Provider[*config.Config] {
	return func(do.Injector) (*config.Config, error) {
		return &config.Config{
			App:     config.AppConfig{Environment: "development"},
			Logger:  config.LoggerConfig{Level: "error"},
			Data:    config.DataConfig{BasePath: dir},
			Store:   config.StoreConfig{Driver: driver},
			Server:  config.ServerConfig{Name: "Chromafy Test", Port: "0"},
			Auth:    config.AuthConfig{AccessTokenDuration: 15 * time.Minute, RefreshTokenDuration: time.Hour},
			Palette: config.PaletteConfig{SavedLimit: 12, DefaultBase: "#7c3aed", DefaultMode: "Random", DefaultCount: 5, MaxCount: 64},
			RateLimit: config.RateLimitConfig{
				AuthPerMinute: 20,
				AuthBurst:     10,
			},
		}, nil
	}
}

// signupOwner creates an account to own saved palettes.
func signupOwner(t *testing.T, injector do.Injector) string {
	t.Helper()
	resp, err := do.MustInvoke[*service.AuthService](injector).Signup(context.Background(), service.SignupRequest{
		Name:     "Owner",
		Email:    "owner@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	return resp.User.ID
}

func TestBootstrapServices(t *testing.T) {
	for _, driver := range []string{config.DriverBadger, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			dir := t.TempDir()
			injector := NewContainerWith(testConfig(dir, driver))
			require.NoError(t, BootstrapServices(injector))

			owner := signupOwner(t, injector)
			palettes := do.MustInvoke[*service.PaletteService](injector)
			_, err := palettes.Save(context.Background(), owner, service.SaveRequest{Colors: []string{"#112233"}})
			require.NoError(t, err)

			list, err := palettes.List(context.Background(), owner)
			require.NoError(t, err)
			assert.Len(t, list, 1)

			handle := do.MustInvoke[*providers.APIServerHandle](injector)
			assert.IsType(t, &api.Server{}, handle.Server)

			_, err = os.Stat(filepath.Join(dir, "auth.key"))
			assert.NoError(t, err, "token key is persisted")

			_ = injector.Shutdown()
		})
	}
}

func TestBootstrapServices_ReindexesEmptyIndex(t *testing.T) {
	dir := t.TempDir()

	first := NewContainerWith(testConfig(dir, config.DriverBadger))
	require.NoError(t, BootstrapServices(first))
	owner := signupOwner(t, first)
	palettes := do.MustInvoke[*service.PaletteService](first)
	for _, hex := range []string{"#112233", "#445566"} {
		_, err := palettes.Save(context.Background(), owner, service.SaveRequest{Colors: []string{hex}})
		require.NoError(t, err)
	}
	_ = first.Shutdown()

	require.NoError(t, os.RemoveAll(filepath.Join(dir, "search")))

	second := NewContainerWith(testConfig(dir, config.DriverBadger))
	require.NoError(t, BootstrapServices(second))
	t.Cleanup(func() { _ = second.Shutdown() })

	reopened := do.MustInvoke[*service.PaletteService](second)
	assert.Eventually(t, func() bool {
		count, err := reopened.IndexedCount()
		return err == nil && count == 2
	}, 5*time.Second, 25*time.Millisecond)
}

func TestBootstrapServices_InvalidDriver(t *testing.T) {
	injector := NewContainerWith(testConfig(t.TempDir(), "postgres"))
	assert.Error(t, BootstrapServices(injector))
	_ = injector.Shutdown()
}
