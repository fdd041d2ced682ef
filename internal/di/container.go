// Package di provides dependency injection configuration for the Chromafy server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/chromafy/chromafy-server/internal/auth"
	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/di/providers"
	"github.com/chromafy/chromafy-server/internal/logger"
	"github.com/chromafy/chromafy-server/internal/media/swatch"
	"github.com/chromafy/chromafy-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	return NewContainerWith(providers.ProvideConfig)
}

// NewContainerWith is NewContainer with a custom config provider, for tests and tools.
func NewContainerWith(configProvider do.Provider[*config.Config]) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, configProvider)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSwatchCache)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvidePaletteService)

	// Workers
	do.Provide(injector, providers.ProvideEnvWatcher)
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap resolves the core services, starts the workers and the HTTP listener.
func Bootstrap(injector *do.RootScope) error {
	if err := BootstrapServices(injector); err != nil {
		return err
	}

	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}

// BootstrapServices resolves everything except the HTTP listener.
func BootstrapServices(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	steps := []func() error{
		invoke[providers.AuthKey](injector),
		invoke[*providers.StoreHandle](injector),
		invoke[*providers.SearchIndexHandle](injector),
		invoke[*swatch.Cache](injector),
		invoke[*auth.TokenService](injector),
		invoke[*service.SessionService](injector),
		invoke[*service.AuthService](injector),
		invoke[*service.PaletteService](injector),
		invoke[*providers.EnvWatcherHandle](injector),
		invoke[*providers.SessionCleanupJob](injector),
		invoke[*providers.APIServerHandle](injector),
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	providers.TriggerSearchReindexIfNeeded(injector)
	return nil
}

func invoke[T any](injector do.Injector) func() error {
	return func() error {
		_, err := do.Invoke[T](injector)
		return err
	}
}
