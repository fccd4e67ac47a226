package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/kv"
	"github.com/helojet/helojet-server/internal/sse"
)

// loadLeads reads the leads slot. Absent or malformed content is an empty list.
func (s *Store) loadLeads(ctx context.Context) ([]domain.Lead, error) {
	var leads []domain.Lead
	err := s.loadJSON(ctx, keyLeads, &leads)
	if errors.Is(err, kv.ErrNotFound) || errors.Is(err, errMalformed) {
		return []domain.Lead{}, nil
	}
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	return leads, nil
}

// AppendLead adds a lead to the end of the leads slot.
func (s *Store) AppendLead(ctx context.Context, lead domain.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.loadLeads(ctx)
	if err != nil {
		return err
	}
	leads = append(leads, lead)
	if err := s.saveJSON(ctx, keyLeads, leads); err != nil {
		return err
	}

	s.logger.Info("lead stored", slog.String("interest", string(lead.Interest)), slog.Int("total", len(leads)))
	s.eventEmitter.Emit(sse.NewLeadCapturedEvent(lead))
	return nil
}

// ListLeads returns all captured leads, oldest first.
func (s *Store) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLeads(ctx)
}
