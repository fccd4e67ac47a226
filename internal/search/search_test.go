package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/domain"
)

// setupTestIndex creates an in-memory search index for testing.
func setupTestIndex(t *testing.T) *Index {
	t.Helper()

	index, err := Open(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return index
}

func testProducts() []*ProductDocument {
	return []*ProductDocument{
		ProductToDocument(&domain.Product{
			ID: "p1", Slug: "helojet-c200", ASIN: "HELOJET200",
			Title:            "HeloJet C200 Wireless Smart Printer",
			ShortDescription: "Compact color printing for home offices.",
			Description:      []string{"Easy Wi-Fi Setup", "Quiet Mode keeps noise low"},
			Price:            149.99, IsFeatured: true,
		}),
		ProductToDocument(&domain.Product{
			ID: "p2", Slug: "smart-plug", ASIN: "B0SMARTPLG",
			Title:            "Smart Plug Mini",
			ShortDescription: "Schedule lamps and fans from your phone.",
			Description:      []string{"Voice Control with major assistants"},
			Price:            19.99,
		}),
		ProductToDocument(&domain.Product{
			ID: "p3", Slug: "mesh-router", ASIN: "B0MESHROUT",
			Title:            "Mesh Wi-Fi Router",
			ShortDescription: "Whole-home coverage.",
			Price:            89.99,
		}),
	}
}

func hitIDs(r *SearchResult) []string {
	out := make([]string, len(r.Hits))
	for i, h := range r.Hits {
		out[i] = h.ID
	}
	return out
}

func TestOpen_Memory(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestOpen_OnDiskReopens(t *testing.T) {
	dir := t.TempDir()

	index, err := Open(Options{DataPath: dir})
	require.NoError(t, err)
	require.NoError(t, index.PutAll(testProducts()))
	require.NoError(t, index.Close())

	reopened, err := Open(Options{DataPath: dir})
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearch_MatchesTitleDescriptionAndASIN(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.PutAll(testProducts()))
	ctx := context.Background()

	params := DefaultSearchParams()
	params.Query = "printer"
	res, err := index.Search(ctx, params)
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	assert.Equal(t, "p1", res.Hits[0].ID)
	assert.Equal(t, "helojet-c200", res.Hits[0].Slug)
	assert.True(t, res.Hits[0].Featured)

	params.Query = "assistants"
	res, err = index.Search(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, hitIDs(res))

	params.Query = "b0meshrout"
	res, err = index.Search(ctx, params)
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	assert.Equal(t, "p3", res.Hits[0].ID)
}

func TestSearch_Filters(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.PutAll(testProducts()))
	ctx := context.Background()

	params := DefaultSearchParams()
	params.FeaturedOnly = true
	res, err := index.Search(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, hitIDs(res))

	params = DefaultSearchParams()
	params.MinPrice = 20
	params.MaxPrice = 100
	res, err = index.Search(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, hitIDs(res))
}

func TestSearch_SortByPrice(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.PutAll(testProducts()))

	params := DefaultSearchParams()
	params.SortBy = "price"
	params.SortOrder = "asc"
	res, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3", "p1"}, hitIDs(res))
}

func TestSearchIndex_DeleteAndRebuild(t *testing.T) {
	index := setupTestIndex(t)
	require.NoError(t, index.PutAll(testProducts()))

	require.NoError(t, index.Delete("p2"))
	count, err := index.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	require.NoError(t, index.Reset())
	count, err = index.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_ReindexReplaces(t *testing.T) {
	index := setupTestIndex(t)
	docs := testProducts()
	require.NoError(t, index.Put(docs[1]))

	docs[1].Title = "Outdoor Plug"
	require.NoError(t, index.Put(docs[1]))

	count, err := index.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	params := DefaultSearchParams()
	params.Query = "outdoor"
	res, err := index.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, hitIDs(res))
}
