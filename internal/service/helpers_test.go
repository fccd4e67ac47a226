package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helojet/helojet-server/internal/kv"
	"github.com/helojet/helojet-server/internal/media/images"
	"github.com/helojet/helojet-server/internal/store"
	"github.com/helojet/helojet-server/internal/validation"
)

// newTestStore returns a store over in-memory slots. The first read seeds it.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(kv.NewMemory(), nil, nil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestEditor(t *testing.T) (*EditorService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	editor := NewEditorService(st, images.NewProcessor(nil), NewGenerator(0, nil), validation.New(), 0, nil)
	return editor, st
}

// pngBytes encodes a small solid image.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := range 8 {
		for y := range 8 {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: 120, B: uint8(y * 30), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
