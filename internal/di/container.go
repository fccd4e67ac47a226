// Package di provides dependency injection configuration for the HeloJet server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/helojet/helojet-server/internal/auth"
	"github.com/helojet/helojet-server/internal/config"
	"github.com/helojet/helojet-server/internal/di/providers"
	"github.com/helojet/helojet-server/internal/logger"
	"github.com/helojet/helojet-server/internal/media/images"
	"github.com/helojet/helojet-server/internal/pages"
	"github.com/helojet/helojet-server/internal/service"
	"github.com/helojet/helojet-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideImageProcessor)

	// Search layer
	do.Provide(injector, providers.ProvideProductIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideGate)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideGenerator)
	do.Provide(injector, providers.ProvideEditorService)
	do.Provide(injector, providers.ProvideLeadService)
	do.Provide(injector, providers.ProvideSettingsService)
	do.Provide(injector, providers.ProvidePageLibrary)

	// Workers
	do.Provide(injector, providers.ProvidePageWatcher)
	do.Provide(injector, providers.ProvideDraftCleanupJob)
	do.Provide(injector, providers.ProvideLeadLimiter)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*images.Processor](injector)
	if _, err := do.Invoke[*providers.ProductIndexHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*service.SearchService](injector)

	// Business services
	_ = do.MustInvoke[*auth.Gate](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.EditorService](injector)
	_ = do.MustInvoke[*service.LeadService](injector)
	_ = do.MustInvoke[*service.SettingsService](injector)
	if _, err := do.Invoke[*pages.Library](injector); err != nil {
		return err
	}

	// Workers
	_ = do.MustInvoke[*providers.PageWatcherHandle](injector)
	if _, err := do.Invoke[*providers.DraftCleanupJob](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.LeadLimiterHandle](injector)

	// Server
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	providers.SyncProductIndex(injector)

	return nil
}
