package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/chromafy/chromafy-server/internal/auth"
	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/logger"
	"github.com/chromafy/chromafy-server/internal/media/swatch"
	"github.com/chromafy/chromafy-server/internal/service"
)

// ProvideSwatchCache provides the on-disk cache of rendered swatch PNGs.
func ProvideSwatchCache(i do.Injector) (*swatch.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return swatch.NewCache(filepath.Join(cfg.Data.BasePath, "swatches"))
}

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, log.Logger), nil
}

// ProvidePaletteService provides the palette service.
func ProvidePaletteService(i do.Injector) (*service.PaletteService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	swatches := do.MustInvoke[*swatch.Cache](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPaletteService(storeHandle.Store, indexHandle.SearchIndex, swatches, cfg.Palette, log.Logger), nil
}
