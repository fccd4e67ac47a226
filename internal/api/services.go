package api

import (
	"github.com/helojet/helojet-server/internal/pages"
	"github.com/helojet/helojet-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Catalog  *service.CatalogService
	Editor   *service.EditorService
	Leads    *service.LeadService
	Settings *service.SettingsService
	Search   *service.SearchService
	Pages    *pages.Library
}
