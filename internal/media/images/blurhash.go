package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/bbrks/go-blurhash"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// placeholderEdge bounds the longer side of the image the hash is computed from.
	placeholderEdge = 48
	hashXComponents = 4
	hashYComponents = 3
)

// Placeholder is the low-resolution preview derived from an upload.
type Placeholder struct {
	Hash   string
	Width  int
	Height int
}

// ComputePlaceholder decodes data and returns its BlurHash with the source dimensions.
func ComputePlaceholder(data []byte) (Placeholder, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Placeholder{}, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	hash, err := blurhash.Encode(hashXComponents, hashYComponents, shrink(img))
	if err != nil {
		return Placeholder{}, fmt.Errorf("encode blurhash: %w", err)
	}
	return Placeholder{Hash: hash, Width: b.Dx(), Height: b.Dy()}, nil
}

// shrink scales img so its longer edge is at most placeholderEdge.
func shrink(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= placeholderEdge && h <= placeholderEdge {
		return img
	}

	if w >= h {
		h = max(1, h*placeholderEdge/w)
		w = placeholderEdge
	} else {
		w = max(1, w*placeholderEdge/h)
		h = placeholderEdge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
