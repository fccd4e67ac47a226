package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/search"
	"github.com/helojet/helojet-server/internal/store"
)

// SearchService bridges the product index with the catalog.
// It implements store.SearchIndexer so catalog writes keep the index current.
type SearchService struct {
	index  *search.Index
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, store *store.Store, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search runs a product query.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// IndexProduct indexes or re-indexes a single product.
func (s *SearchService) IndexProduct(_ context.Context, p *domain.Product) error {
	if err := s.index.Put(search.ProductToDocument(p)); err != nil {
		return fmt.Errorf("index product: %w", err)
	}
	s.logger.Debug("indexed product", "id", p.ID, "slug", p.Slug)
	return nil
}

// DeleteProduct removes a product from the index.
func (s *SearchService) DeleteProduct(_ context.Context, productID string) error {
	return s.index.Delete(productID)
}

// DocumentCount returns the number of indexed products.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.Count()
}

// ReindexAll rebuilds the index from the catalog.
// Products sharing an id collapse into one document, the last one wins.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	s.logger.Info("starting full reindex")

	if err := s.index.Reset(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	products, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}

	docs := make([]*search.ProductDocument, 0, len(products))
	for i := range products {
		docs = append(docs, search.ProductToDocument(&products[i]))
	}
	if len(docs) > 0 {
		if err := s.index.PutAll(docs); err != nil {
			return fmt.Errorf("index products: %w", err)
		}
	}

	s.logger.Info("reindex complete", "products", len(docs))
	return nil
}
