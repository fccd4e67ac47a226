package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/kv"
	"github.com/helojet/helojet-server/internal/sse"
)

// loadCatalog reads the catalog slot. The caller must hold s.mu.
// An absent slot is seeded and persisted; malformed content yields the seed
// without touching the slot.
func (s *Store) loadCatalog(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.loadJSON(ctx, keyProducts, &products)
	switch {
	case err == nil:
		if products == nil {
			products = []domain.Product{}
		}
		return products, nil
	case errors.Is(err, errMalformed):
		return domain.SeedProducts(), nil
	case errors.Is(err, kv.ErrNotFound):
		seed := domain.SeedProducts()
		if err := s.saveJSON(ctx, keyProducts, seed); err != nil {
			return nil, err
		}
		s.logger.Info("seeded product catalog", slog.Int("products", len(seed)))
		for i := range seed {
			s.indexProduct(ctx, &seed[i])
		}
		return seed, nil
	default:
		return nil, err
	}
}

// List returns the catalog in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCatalog(ctx)
}

// GetBySlug returns the first product whose slug equals slug.
// Duplicate slugs are not rejected, so later listings sharing a slug are unreachable here.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.find(ctx, func(p *domain.Product) bool { return p.Slug == slug })
}

// GetByID returns the first product with the given id.
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.find(ctx, func(p *domain.Product) bool { return p.ID == id })
}

func (s *Store) find(ctx context.Context, match func(*domain.Product) bool) (*domain.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if match(&products[i]) {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// Add appends p to the catalog. Ids and slugs are not checked for uniqueness.
func (s *Store) Add(ctx context.Context, p *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return err
	}
	products = append(products, *p.Clone())
	if err := s.saveJSON(ctx, keyProducts, products); err != nil {
		return err
	}

	s.logger.Info("product added", slog.String("id", p.ID), slog.String("slug", p.Slug))
	s.indexProduct(ctx, p)
	s.eventEmitter.Emit(sse.NewProductCreatedEvent(p.Clone()))
	return nil
}

// Update replaces every product whose id equals p.ID.
// An unknown id leaves the catalog untouched and reports false.
func (s *Store) Update(ctx context.Context, p *domain.Product) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return false, err
	}
	replaced := 0
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = *p.Clone()
			replaced++
		}
	}
	if replaced == 0 {
		s.logger.Debug("update ignored, product not in catalog", slog.String("id", p.ID))
		return false, nil
	}
	if err := s.saveJSON(ctx, keyProducts, products); err != nil {
		return false, err
	}

	s.logger.Info("product updated", slog.String("id", p.ID), slog.String("slug", p.Slug))
	s.indexProduct(ctx, p)
	s.eventEmitter.Emit(sse.NewProductUpdatedEvent(p.Clone()))
	return true, nil
}

// Remove deletes every product with the given id. Removing an unknown id is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.loadCatalog(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(products, func(p domain.Product) bool { return p.ID == id })
	removed := len(products) - len(kept)
	if err := s.saveJSON(ctx, keyProducts, kept); err != nil {
		return err
	}
	if removed == 0 {
		return nil
	}

	s.logger.Info("product removed", slog.String("id", id), slog.Int("records", removed))
	if err := s.searchIndexer.DeleteProduct(ctx, id); err != nil {
		s.logger.Warn("failed to remove product from search index",
			slog.String("id", id), slog.String("error", err.Error()))
	}
	s.eventEmitter.Emit(sse.NewProductDeletedEvent(id))
	return nil
}

func (s *Store) indexProduct(ctx context.Context, p *domain.Product) {
	if err := s.searchIndexer.IndexProduct(ctx, p); err != nil {
		s.logger.Warn("failed to index product",
			slog.String("id", p.ID), slog.String("error", err.Error()))
	}
}
