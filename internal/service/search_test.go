package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/search"
)

func newTestSearch(t *testing.T) (*SearchService, *EditorService) {
	t.Helper()
	index, err := search.Open(search.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	editor, st := newTestEditor(t)
	svc := NewSearchService(index, st, nil)
	st.SetSearchIndexer(svc)
	return svc, editor
}

func TestSearchService_ReindexAll(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSearch(t)

	require.NoError(t, svc.ReindexAll(ctx))

	count, err := svc.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	params := search.DefaultSearchParams()
	params.Query = "wireless printer"
	res, err := svc.Search(ctx, params)
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	assert.Equal(t, "helojet-c200", res.Hits[0].Slug)
}

func TestSearchService_FollowsCatalogWrites(t *testing.T) {
	ctx := context.Background()
	svc, editor := newTestSearch(t)
	require.NoError(t, svc.ReindexAll(ctx))

	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)
	_, err = editor.Generate(ctx, d.ID, "https://www.amazon.com/dp/B08XYZ1234")
	require.NoError(t, err)
	_, err = editor.Commit(ctx, d.ID)
	require.NoError(t, err)

	params := search.DefaultSearchParams()
	params.Query = "b08xyz1234"
	res, err := svc.Search(ctx, params)
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, d.Product.ID, res.Hits[0].ID)

	require.NoError(t, editor.store.Remove(ctx, d.Product.ID))
	res, err = svc.Search(ctx, params)
	require.NoError(t, err)
	assert.Empty(t, res.Hits)

}
