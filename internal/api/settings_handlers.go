package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/helojet/helojet-server/internal/service"
)

func (s *Server) registerSettingsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSettings",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings",
		Summary:     "Get site settings",
		Description: "Returns the chat widget code and its parsed markup and scripts",
		Tags:        []string{"Settings"},
	}, s.handleGetSettings)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSettings",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/settings",
		Summary:     "Update site settings",
		Description: "Replaces the chat widget code (admin only)",
		Tags:        []string{"Admin"},
	}, s.handleUpdateSettings)
}

// SettingsOutput is the Huma output for site settings.
type SettingsOutput struct {
	Body *service.PublicSettings
}

// UpdateSettingsInput is the Huma input for the settings form.
type UpdateSettingsInput struct {
	Body service.SettingsUpdate
}

func (s *Server) handleGetSettings(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
	settings, err := s.services.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsOutput{Body: settings}, nil
}

func (s *Server) handleUpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*SettingsOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	settings, err := s.services.Settings.Save(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &SettingsOutput{Body: settings}, nil
}
