package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/logger"
	"github.com/chromafy/chromafy-server/internal/store"
	"github.com/chromafy/chromafy-server/internal/store/badgerdb"
	"github.com/chromafy/chromafy-server/internal/store/sqlite"
)

// StoreHandle wraps the selected store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the store selected by STORE_DRIVER.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	path := cfg.StorePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		st, err = sqlite.Open(path, log.Logger)
	case config.DriverBadger, "":
		st, err = badgerdb.Open(path, log.Logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "driver", cfg.Store.Driver, "path", path)

	return &StoreHandle{Store: st}, nil
}
