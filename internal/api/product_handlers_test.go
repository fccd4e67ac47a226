package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/domain"
	"github.com/helojet/helojet-server/internal/search"
)

type productViewJSON struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	SavingsPercent   int    `json:"savingsPercent"`
	PriceDisplay     string `json:"priceDisplay"`
	ListPriceDisplay string `json:"listPriceDisplay"`
	SavingsDisplay   string `json:"savingsDisplay"`
	Gallery          []struct {
		Src         string `json:"src"`
		FallbackSrc string `json:"fallbackSrc"`
	} `json:"gallery"`
}

func TestListProducts_Seed(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/products")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[[]productViewJSON](t, resp)
	require.True(t, env.Success)
	require.Len(t, env.Data, 1)

	p := env.Data[0]
	assert.Equal(t, "helojet-c200", p.Slug)
	assert.Equal(t, "$79.99", p.PriceDisplay)
	assert.Equal(t, "$129.99", p.ListPriceDisplay)
	assert.Equal(t, "$50.00", p.SavingsDisplay)
	assert.Equal(t, 38, p.SavingsPercent)
	require.Len(t, p.Gallery, 5)
	assert.Equal(t, domain.FallbackImage(0), p.Gallery[0].FallbackSrc)
}

func TestListProducts_FeaturedFilter(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.store.Add(context.Background(), &domain.Product{
		ID: "2", Slug: "plain", Title: "Plain Printer", Price: 10, ListPrice: 10,
	}))

	all := decode[[]productViewJSON](t, ts.api.Get("/api/v1/products"))
	assert.Len(t, all.Data, 2)

	featured := decode[[]productViewJSON](t, ts.api.Get("/api/v1/products?featured=true"))
	require.Len(t, featured.Data, 1)
	assert.Equal(t, "1", featured.Data[0].ID)
}

func TestGetProduct(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/products/helojet-c200")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "1", decode[productViewJSON](t, resp).Data.ID)

	resp = ts.api.Get("/api/v1/products/missing")
	require.Equal(t, http.StatusNotFound, resp.Code)
	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "Product not found.", env.Error.Message)
}

func TestSearchProducts(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/products/search?q=printer")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[search.SearchResult](t, resp)
	assert.Equal(t, "printer", env.Data.Query)
	require.NotEmpty(t, env.Data.Hits)
	assert.Equal(t, "helojet-c200", env.Data.Hits[0].Slug)

	resp = ts.api.Get("/api/v1/products/search?q=printer&sort=bogus")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAdminDeleteProduct(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Delete("/api/v1/admin/products/1")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	ts.login(t)
	resp = ts.api.Delete("/api/v1/admin/products/1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, decode[DeleteProductResponse](t, resp).Data.Deleted)

	list := decode[[]domain.Product](t, ts.api.Get("/api/v1/admin/products"))
	assert.Empty(t, list.Data)

	// Unknown ids are not an error.
	resp = ts.api.Delete("/api/v1/admin/products/nope")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestUnknownRoute(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/nothing-here")
	require.Equal(t, http.StatusNotFound, resp.Code)
	env := decode[any](t, resp)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
