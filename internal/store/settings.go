package store

import (
	"context"
	"errors"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/kv"
	"github.com/helojet/helojet-server/internal/sse"
)

// GetSettings returns the site settings, or empty settings if none are stored or they do not decode.
func (s *Store) GetSettings(ctx context.Context) (domain.SiteSettings, error) {
	if err := ctx.Err(); err != nil {
		return domain.SiteSettings{}, err
	}

	var settings domain.SiteSettings
	err := s.loadJSON(ctx, keySettings, &settings)
	if errors.Is(err, kv.ErrNotFound) || errors.Is(err, errMalformed) {
		return domain.SiteSettings{}, nil
	}
	if err != nil {
		return domain.SiteSettings{}, err
	}
	return settings, nil
}

// SaveSettings replaces the site settings.
func (s *Store) SaveSettings(ctx context.Context, settings domain.SiteSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveJSON(ctx, keySettings, settings); err != nil {
		return err
	}
	s.eventEmitter.Emit(sse.NewSettingsUpdatedEvent(settings))
	return nil
}
