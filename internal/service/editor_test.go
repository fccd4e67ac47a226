package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/domain"
	domainerrors "github.com/helojet/helojet-server/internal/errors"
	"github.com/helojet/helojet-server/internal/media/images"
	"github.com/helojet/helojet-server/internal/validation"
)

func ptr[T any](v T) *T { return &v }

func TestEditor_NewDraftDefaults(t *testing.T) {
	editor, _ := newTestEditor(t)

	d, err := editor.NewDraft(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(d.ID, "draft-"))
	assert.False(t, d.Editing)
	assert.Len(t, d.Product.ID, 9)
	assert.Equal(t, 4.5, d.Product.Rating)
	assert.Equal(t, 100, d.Product.ReviewCount)
	assert.Equal(t, []string{""}, d.Product.Description)
	assert.Equal(t, []string{""}, d.Product.Features)
	assert.Equal(t, []string{""}, d.Product.TargetAudience)
	assert.Empty(t, d.Product.Images)
}

func TestEditor_EditDraftFillsMissingArrays(t *testing.T) {
	ctx := context.Background()
	editor, st := newTestEditor(t)

	legacy := &domain.Product{ID: "old", Slug: "old", Description: []string{"a"}}
	require.NoError(t, st.Add(ctx, legacy))

	d, err := editor.EditDraft(ctx, "old")
	require.NoError(t, err)
	assert.True(t, d.Editing)
	assert.Equal(t, []string{""}, d.Product.Features)
	assert.Equal(t, []string{""}, d.Product.TargetAudience)
	assert.Equal(t, "", d.Product.Overview)

	_, err = editor.EditDraft(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestEditor_DraftIsACopy(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t)

	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)
	d.Product.Title = "changed outside"

	got, err := editor.GetDraft(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Product.Title)
}

func TestEditor_PatchDraft(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t)
	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)

	got, err := editor.PatchDraft(ctx, d.ID, DraftPatch{Title: ptr("Smart Plug"), Price: ptr(19.99)})
	require.NoError(t, err)
	assert.Equal(t, "Smart Plug", got.Product.Title)
	assert.Equal(t, 19.99, got.Product.Price)
	assert.Equal(t, 4.5, got.Product.Rating)

	_, err = editor.PatchDraft(ctx, d.ID, DraftPatch{Rating: ptr(7.0)})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = editor.PatchDraft(ctx, "draft-missing", DraftPatch{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestEditor_ArrayFields(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t)
	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)

	_, err = editor.SetArrayItem(ctx, d.ID, "features", 0, "Quiet")
	require.NoError(t, err)
	_, err = editor.AddArrayItem(ctx, d.ID, "features")
	require.NoError(t, err)
	got, err := editor.SetArrayItem(ctx, d.ID, "features", 1, "Fast")
	require.NoError(t, err)
	assert.Equal(t, []string{"Quiet", "Fast"}, got.Product.Features)

	got, err = editor.RemoveArrayItem(ctx, d.ID, "features", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fast"}, got.Product.Features)

	_, err = editor.RemoveArrayItem(ctx, d.ID, "features", 3)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = editor.AddArrayItem(ctx, d.ID, "images")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func draftWithImages(t *testing.T, editor *EditorService, srcs ...string) *Draft {
	t.Helper()
	ctx := context.Background()
	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)
	for _, src := range srcs {
		d, err = editor.AddImageURL(ctx, d.ID, src)
		require.NoError(t, err)
	}
	return d
}

func srcs(d *Draft) []string {
	out := make([]string, len(d.Product.Images))
	for i, img := range d.Product.Images {
		out[i] = img.Src
	}
	return out
}

func TestEditor_AddImageURL(t *testing.T) {
	editor, _ := newTestEditor(t)
	d := draftWithImages(t, editor, "https://example.com/a.jpg")

	require.Len(t, d.Product.Images, 1)
	assert.Equal(t, DefaultImageAlt, d.Product.Images[0].Alt)

	_, err := editor.AddImageURL(context.Background(), d.ID, "not a url")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestEditor_MoveImage(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t)
	a, b, c, dd := "https://x.test/a", "https://x.test/b", "https://x.test/c", "https://x.test/d"
	d := draftWithImages(t, editor, a, b, c, dd)

	got, err := editor.MoveImage(ctx, d.ID, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{b, c, a, dd}, srcs(got))

	got, err = editor.MoveImage(ctx, d.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{b, c, a, dd}, srcs(got))

	_, err = editor.MoveImage(ctx, d.ID, 0, 4)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestEditor_RemoveImage(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t)
	d := draftWithImages(t, editor, "https://x.test/a", "https://x.test/b")

	got, err := editor.RemoveImage(ctx, d.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x.test/b"}, srcs(got))

	got, err = editor.RemoveImage(ctx, d.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, got.Product.Images)

	_, err = editor.RemoveImage(ctx, d.ID, 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestEditor_AddImageUpload(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t)
	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)

	res, err := editor.AddImageUpload(ctx, d.ID, "front.png", pngBytes(t))
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	require.Len(t, res.Draft.Product.Images, 1)
	img := res.Draft.Product.Images[0]
	assert.True(t, strings.HasPrefix(img.Src, "data:image/png;base64,"))
	assert.Equal(t, "front.png", img.Alt)
	assert.NotEmpty(t, img.BlurHash)

	// Trailing bytes keep the PNG decodable while pushing it over the threshold.
	large := append(pngBytes(t), make([]byte, images.LargeFileThreshold)...)
	res, err = editor.AddImageUpload(ctx, d.ID, "big.png", large)
	require.NoError(t, err)
	assert.Equal(t, images.LargeFileWarning, res.Warning)
	assert.Len(t, res.Draft.Product.Images, 2)

	_, err = editor.AddImageUpload(ctx, d.ID, "notes.txt", []byte("plain text"))
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestEditor_CommitNewProduct(t *testing.T) {
	ctx := context.Background()
	editor, st := newTestEditor(t)
	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)

	_, err = editor.PatchDraft(ctx, d.ID, DraftPatch{
		Title:     ptr("Smart Plug Mini"),
		ASIN:      ptr("B0SMARTPLG"),
		AmazonURL: ptr("https://www.amazon.com/dp/B0SMARTPLG"),
		Price:     ptr(12.5),
		ListPrice: ptr(20.0),
	})
	require.NoError(t, err)

	res, err := editor.Commit(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.True(t, res.Applied)
	assert.Equal(t, "/admin", res.RedirectTo)
	assert.Equal(t, "smart-plug-mini", res.Product.Slug)

	stored, err := st.GetBySlug(ctx, "smart-plug-mini")
	require.NoError(t, err)
	assert.Equal(t, d.Product.ID, stored.ID)

	products, err := st.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)

	_, err = editor.GetDraft(ctx, d.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestEditor_CommitExistingProduct(t *testing.T) {
	ctx := context.Background()
	editor, st := newTestEditor(t)

	d, err := editor.EditDraft(ctx, "1")
	require.NoError(t, err)
	_, err = editor.PatchDraft(ctx, d.ID, DraftPatch{Title: ptr("HeloJet C200 (2024)")})
	require.NoError(t, err)

	res, err := editor.Commit(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.True(t, res.Applied)

	products, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "HeloJet C200 (2024)", products[0].Title)
	assert.Equal(t, "helojet-c200", products[0].Slug)
}

func TestEditor_CommitSlugs(t *testing.T) {
	ctx := context.Background()
	editor, st := newTestEditor(t)

	legacy := domain.NewDraftProduct("legacy")
	legacy.Slug = "HeloJet-C200"
	legacy.Title = "Legacy"
	legacy.ASIN = "B000000001"
	legacy.AmazonURL = "https://www.amazon.com/dp/B000000001"
	require.NoError(t, st.Add(ctx, legacy))

	d, err := editor.EditDraft(ctx, "legacy")
	require.NoError(t, err)
	_, err = editor.PatchDraft(ctx, d.ID, DraftPatch{Title: ptr("Legacy (2024)")})
	require.NoError(t, err)
	_, err = editor.Commit(ctx, d.ID)
	require.NoError(t, err)

	got, err := st.GetByID(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "HeloJet-C200", got.Slug)

	d, err = editor.NewDraft(ctx)
	require.NoError(t, err)
	_, err = editor.PatchDraft(ctx, d.ID, DraftPatch{
		Title:     ptr("Smart Plug"),
		Slug:      ptr("Smart Plug Mini"),
		ASIN:      ptr("B000000002"),
		AmazonURL: ptr("https://www.amazon.com/dp/B000000002"),
	})
	require.NoError(t, err)
	res, err := editor.Commit(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "smart-plug-mini", res.Product.Slug)
}

func TestEditor_CommitDeletedProductIsNoop(t *testing.T) {
	ctx := context.Background()
	editor, st := newTestEditor(t)

	d, err := editor.EditDraft(ctx, "1")
	require.NoError(t, err)
	require.NoError(t, st.Remove(ctx, "1"))

	res, err := editor.Commit(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, res.Applied)

	products, err := st.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestEditor_CommitRequiresFields(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t)
	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)

	_, err = editor.Commit(ctx, d.ID)
	require.ErrorIs(t, err, domainerrors.ErrValidation)

	// The draft survives a rejected commit.
	_, err = editor.GetDraft(ctx, d.ID)
	assert.NoError(t, err)
}

func TestEditor_Generate(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t)
	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)

	got, err := editor.Generate(ctx, d.ID, "https://www.amazon.com/dp/B08XYZ1234?th=1")
	require.NoError(t, err)
	assert.Equal(t, d.Product.ID, got.Product.ID)
	assert.Equal(t, "B08XYZ1234", got.Product.ASIN)
	assert.Equal(t, "product-b08xyz1234", got.Product.Slug)
	assert.Len(t, got.Product.Images, 5)

	res, err := editor.Commit(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, res.Created)
}

func TestEditor_GenerateKeepsConcurrentEdits(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	editor := NewEditorService(st, images.NewProcessor(nil), NewGenerator(200*time.Millisecond, nil), validation.New(), 0, nil)
	d, err := editor.NewDraft(ctx)
	require.NoError(t, err)

	done := make(chan *Draft, 1)
	go func() {
		got, err := editor.Generate(ctx, d.ID, "https://www.amazon.com/dp/B08XYZ1234")
		assert.NoError(t, err)
		done <- got
	}()

	time.Sleep(50 * time.Millisecond)
	_, err = editor.PatchDraft(ctx, d.ID, DraftPatch{Rating: ptr(3.0), ReviewCount: ptr(12), IsFeatured: ptr(true)})
	require.NoError(t, err)

	got := <-done
	require.NotNil(t, got)
	assert.Equal(t, "B08XYZ1234", got.Product.ASIN)
	assert.Equal(t, 3.0, got.Product.Rating)
	assert.Equal(t, 12, got.Product.ReviewCount)
	assert.True(t, got.Product.IsFeatured)
}

func TestEditor_GenerateOnlyForNewDrafts(t *testing.T) {
	ctx := context.Background()
	editor, _ := newTestEditor(t)

	d, err := editor.EditDraft(ctx, "1")
	require.NoError(t, err)

	_, err = editor.Generate(ctx, d.ID, "https://www.amazon.com/dp/B08XYZ1234")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestEditor_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	editor := NewEditorService(st, images.NewProcessor(nil), NewGenerator(0, nil), validation.New(), time.Hour, nil)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	editor.now = func() time.Time { return now }

	stale, err := editor.NewDraft(ctx)
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	fresh, err := editor.NewDraft(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, editor.CleanupExpired(now.Add(20*time.Minute)))
	assert.Equal(t, 1, editor.DraftCount())

	_, err = editor.GetDraft(ctx, stale.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	_, err = editor.GetDraft(ctx, fresh.ID)
	assert.NoError(t, err)
}
