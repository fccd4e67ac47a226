package providers

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/helojet/helojet-server/internal/config"
	"github.com/helojet/helojet-server/internal/kv"
	"github.com/helojet/helojet-server/internal/logger"
	"github.com/helojet/helojet-server/internal/search"
	"github.com/helojet/helojet-server/internal/service"
)

// ProductIndexHandle closes the product index on shutdown.
type ProductIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *ProductIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideProductIndex opens the product index next to the slots. Memory slots
// get a memory index.
func ProvideProductIndex(i do.Injector) (*ProductIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	opts := search.Options{DataPath: cfg.Storage.DataPath, Logger: log.Logger}
	if cfg.Storage.Backend == kv.BackendMemory {
		opts.DataPath = ""
	}

	index, err := search.Open(opts)
	if err != nil {
		return nil, err
	}
	return &ProductIndexHandle{Index: index}, nil
}

// ProvideSearchService provides the search service and hooks it into the store
// so catalog writes keep the index current.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	index := do.MustInvoke[*ProductIndexHandle](i)
	st := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSearchService(index.Index, st.Store, log.Logger)
	st.SetSearchIndexer(svc)
	return svc, nil
}

// SyncProductIndex reindexes in the background when the index and the catalog
// disagree on how many products exist.
func SyncProductIndex(i do.Injector) {
	svc := do.MustInvoke[*service.SearchService](i)
	st := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reindexTimeout)
		defer cancel()

		products, err := st.List(ctx)
		if err != nil {
			log.Error("product index sync skipped", slog.String("error", err.Error()))
			return
		}
		indexed, _ := svc.DocumentCount()
		if indexed == uint64(len(products)) {
			log.Debug("product index in sync", slog.Int("products", len(products)))
			return
		}

		log.Info("reindexing products",
			slog.Uint64("indexed", indexed),
			slog.Int("catalog", len(products)))
		if err := svc.ReindexAll(ctx); err != nil {
			log.Error("product reindex failed", slog.String("error", err.Error()))
		}
	}()
}
