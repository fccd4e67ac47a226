package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/search"
	"github.com/helojet/helojet-server/internal/service"
)

func (s *Server) registerProductRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listProducts",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "List products",
		Description: "Returns the catalog in display order with derived prices",
		Tags:        []string{"Products"},
	}, s.handleListProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchProducts",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/search",
		Summary:     "Search products",
		Description: "Full-text search over titles, descriptions and ASINs",
		Tags:        []string{"Products"},
	}, s.handleSearchProducts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getProduct",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{slug}",
		Summary:     "Get product",
		Description: "Returns the detail view of the first product with the slug",
		Tags:        []string{"Products"},
	}, s.handleGetProduct)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListProducts",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/products",
		Summary:     "List stored products",
		Description: "Returns the raw catalog records (admin only)",
		Tags:        []string{"Admin"},
	}, s.handleAdminListProducts)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteProduct",
		Method:        http.MethodDelete,
		Path:          "/api/v1/admin/products/{id}",
		Summary:       "Delete product",
		Description:   "Removes every product with the id (admin only)",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusOK,
	}, s.handleDeleteProduct)
}

// === DTOs ===

// ListProductsInput filters the catalog list.
type ListProductsInput struct {
	Featured bool `query:"featured" doc:"Only featured products"`
}

// ListProductsOutput is the Huma output for the catalog list.
type ListProductsOutput struct {
	Body []service.ProductView
}

// SearchProductsInput contains parameters for searching the catalog.
type SearchProductsInput struct {
	Query    string  `query:"q" maxLength:"200" doc:"Search text"`
	Featured bool    `query:"featured" doc:"Only featured products"`
	MinPrice float64 `query:"min_price" minimum:"0" doc:"Lowest price"`
	MaxPrice float64 `query:"max_price" minimum:"0" doc:"Highest price, 0 for none"`
	Sort     string  `query:"sort" enum:"relevance,title,price" doc:"Sort field (default relevance)"`
	Order    string  `query:"order" enum:"asc,desc" doc:"Sort order (default desc)"`
	Limit    int     `query:"limit" minimum:"0" maximum:"100" doc:"Max results (default 20)"`
	Offset   int     `query:"offset" minimum:"0" doc:"Pagination offset"`
}

// SearchProductsOutput wraps the search result for Huma.
type SearchProductsOutput struct {
	Body *search.SearchResult
}

// GetProductInput identifies a product by slug.
type GetProductInput struct {
	Slug string `path:"slug" maxLength:"200" doc:"Product slug"`
}

// ProductOutput is the Huma output for a product detail view.
type ProductOutput struct {
	Body *service.ProductView
}

// AdminProductsOutput is the Huma output for the raw catalog.
type AdminProductsOutput struct {
	Body []domain.Product
}

// DeleteProductInput identifies a product by id.
type DeleteProductInput struct {
	ID string `path:"id" doc:"Product ID"`
}

// DeleteProductResponse confirms the delete.
type DeleteProductResponse struct {
	ID      string `json:"id" doc:"Removed product ID"`
	Deleted bool   `json:"deleted" doc:"Always true; unknown IDs are not an error"`
}

// DeleteProductOutput is the Huma output for deletes.
type DeleteProductOutput struct {
	Body DeleteProductResponse
}

// === Handlers ===

func (s *Server) handleListProducts(ctx context.Context, input *ListProductsInput) (*ListProductsOutput, error) {
	views, err := s.services.Catalog.ListProducts(ctx, input.Featured)
	if err != nil {
		return nil, err
	}
	return &ListProductsOutput{Body: views}, nil
}

func (s *Server) handleSearchProducts(ctx context.Context, input *SearchProductsInput) (*SearchProductsOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.FeaturedOnly = input.Featured
	params.MinPrice = input.MinPrice
	params.MaxPrice = input.MaxPrice
	params.Offset = input.Offset
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Sort != "" {
		params.SortBy = input.Sort
	}
	if input.Order != "" {
		params.SortOrder = input.Order
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, huma.Error500InternalServerError("search failed", err)
	}
	return &SearchProductsOutput{Body: result}, nil
}

func (s *Server) handleGetProduct(ctx context.Context, input *GetProductInput) (*ProductOutput, error) {
	view, err := s.services.Catalog.GetProduct(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	return &ProductOutput{Body: view}, nil
}

func (s *Server) handleAdminListProducts(ctx context.Context, _ *struct{}) (*AdminProductsOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	products, err := s.services.Catalog.AdminList(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminProductsOutput{Body: products}, nil
}

func (s *Server) handleDeleteProduct(ctx context.Context, input *DeleteProductInput) (*DeleteProductOutput, error) {
	if err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := s.services.Catalog.DeleteProduct(ctx, input.ID); err != nil {
		return nil, err
	}
	return &DeleteProductOutput{
		Body: DeleteProductResponse{ID: input.ID, Deleted: true},
	}, nil
}
