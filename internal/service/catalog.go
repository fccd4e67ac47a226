package service

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/store"
)

// GalleryImage is a product image prepared for display.
type GalleryImage struct {
	domain.ProductImage
	// FallbackSrc replaces Src when the image fails to load.
	FallbackSrc string `json:"fallbackSrc"`
}

// ProductView is a product with the values the storefront derives for display.
type ProductView struct {
	*domain.Product
	Gallery          []GalleryImage `json:"gallery"`
	Savings          float64        `json:"savings"`
	SavingsPercent   int            `json:"savingsPercent"`
	PriceDisplay     string         `json:"priceDisplay"`
	ListPriceDisplay string         `json:"listPriceDisplay"`
	SavingsDisplay   string         `json:"savingsDisplay"`
}

// CatalogService serves the public list and detail views and admin deletes.
type CatalogService struct {
	store   *store.Store
	logger  *slog.Logger
	printer *message.Printer
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *store.Store, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CatalogService{
		store:   store,
		logger:  logger,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// ListProducts returns catalog views in insertion order, optionally only featured ones.
func (s *CatalogService) ListProducts(ctx context.Context, featuredOnly bool) ([]ProductView, error) {
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for i := range products {
		if featuredOnly && !products[i].IsFeatured {
			continue
		}
		views = append(views, s.view(&products[i]))
	}
	return views, nil
}

// GetProduct returns the detail view for slug, or store.ErrProductNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*ProductView, error) {
	p, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	v := s.view(p)
	return &v, nil
}

// AdminList returns the raw catalog for the admin table.
func (s *CatalogService) AdminList(ctx context.Context) ([]domain.Product, error) {
	return s.store.List(ctx)
}

// DeleteProduct removes every product with the given id. Unknown ids are not an error.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.Remove(ctx, id)
}

func (s *CatalogService) view(p *domain.Product) ProductView {
	gallery := make([]GalleryImage, len(p.Images))
	for i, img := range p.Images {
		gallery[i] = GalleryImage{ProductImage: img, FallbackSrc: domain.FallbackImage(i)}
	}

	savings := math.Round(p.Savings()*100) / 100
	return ProductView{
		Product:          p,
		Gallery:          gallery,
		Savings:          savings,
		SavingsPercent:   p.SavingsPercent(),
		PriceDisplay:     s.formatPrice(p.Price),
		ListPriceDisplay: s.formatPrice(p.ListPrice),
		SavingsDisplay:   s.formatPrice(savings),
	}
}

// formatPrice renders an amount as US dollars, e.g. "$1,234.50".
func (s *CatalogService) formatPrice(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + s.printer.Sprint(number.Decimal(v, number.Scale(2)))
}
