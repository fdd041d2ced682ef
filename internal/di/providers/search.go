package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/logger"
	"github.com/chromafy/chromafy-server/internal/search"
	"github.com/chromafy/chromafy-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve palette index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.SearchPath(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds the index in the background when it is
// empty but the store already holds palettes.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	palettes := do.MustInvoke[*service.PaletteService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := palettes.IndexedCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	all, err := storeHandle.ListAllPalettes(ctx)
	if err != nil || len(all) == 0 {
		return
	}

	log.Info("Search index is empty but palettes exist, triggering initial reindex",
		"palette_count", len(all),
	)

	go func() {
		count, err := palettes.ReindexAll(context.Background())
		if err != nil {
			log.Error("Initial search reindex failed", "error", err)
			return
		}
		log.Info("Initial search reindex completed", "documents", count)
	}()
}
