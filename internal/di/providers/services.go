package providers

import (
	"github.com/samber/do/v2"

	"github.com/helojet/helojet-server/internal/auth"
	"github.com/helojet/helojet-server/internal/config"
	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/logger"
	"github.com/helojet/helojet-server/internal/media/images"
	"github.com/helojet/helojet-server/internal/pages"
	"github.com/helojet/helojet-server/internal/service"
	"github.com/helojet/helojet-server/internal/validation"
)

// ProvideValidator provides the shared request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideImageProcessor provides the upload processor.
func ProvideImageProcessor(i do.Injector) (*images.Processor, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return images.NewProcessor(log.Logger), nil
}

// ProvideGate provides the admin gate.
func ProvideGate(i do.Injector) (*auth.Gate, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return auth.NewGate(storeHandle.Store, log.Logger), nil
}

// ProvideCatalogService provides the list and detail views.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewCatalogService(storeHandle.Store, log.Logger), nil
}

// ProvideGenerator provides the listing content generator.
func ProvideGenerator(i do.Injector) (*service.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewGenerator(cfg.Storefront.GeneratorDelay, log.Logger), nil
}

// ProvideEditorService provides the catalog editor.
func ProvideEditorService(i do.Injector) (*service.EditorService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	processor := do.MustInvoke[*images.Processor](i)
	generator := do.MustInvoke[*service.Generator](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEditorService(
		storeHandle.Store,
		processor,
		generator,
		validator,
		cfg.Storefront.DraftTTL,
		log.Logger,
	), nil
}

// ProvideLeadService provides lead intake.
func ProvideLeadService(i do.Injector) (*service.LeadService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLeadService(storeHandle.Store, validator, cfg.Storefront.LeadDelay, log.Logger), nil
}

// ProvideSettingsService provides site settings.
func ProvideSettingsService(i do.Injector) (*service.SettingsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSettingsService(storeHandle.Store, validator, log.Logger), nil
}

// ProvidePageLibrary provides the informational pages.
func ProvidePageLibrary(i do.Injector) (*pages.Library, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return pages.New(domain.Company, cfg.Pages.OverridePath, log.Logger)
}
