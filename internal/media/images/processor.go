// Package images turns uploaded gallery files into self-contained image entries.
package images

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/helojet/helojet-server/internal/domain"
)

// LargeFileThreshold is the size above which an upload is accepted with a warning.
const LargeFileThreshold = 1_000_000

// LargeFileWarning is returned alongside oversized uploads.
const LargeFileWarning = "File is larger than 1MB. This may slow down the page."

// Inlined is the result of inlining an upload.
type Inlined struct {
	Image    domain.ProductImage
	MIMEType string
	Size     int
	// Width and Height are zero when the format cannot be decoded.
	Width  int
	Height int
	// Warning is set for uploads above LargeFileThreshold. The image is still usable.
	Warning string
}

// Processor encodes uploaded files as data URIs.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a new Processor instance.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{logger: logger}
}

// Inline converts data into a gallery image whose src is a base64 data URI
// and whose alt text is the file name. The content type is sniffed from the
// bytes; anything that is not an image is rejected.
func (p *Processor) Inline(name string, data []byte) (*Inlined, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload")
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("unsupported content type %q", mt.String())
	}
	mimeType := strings.SplitN(mt.String(), ";", 2)[0]

	result := &Inlined{
		Image: domain.ProductImage{
			Src: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
			Alt: name,
		},
		MIMEType: mimeType,
		Size:     len(data),
	}

	if len(data) > LargeFileThreshold {
		result.Warning = LargeFileWarning
		p.logger.Warn("large image upload",
			slog.String("name", name),
			slog.Int("size", len(data)))
	}

	// Vector formats and unknown codecs have no hash; the image is still added.
	if ph, err := ComputePlaceholder(data); err != nil {
		p.logger.Debug("blurhash skipped",
			slog.String("name", name),
			slog.String("mime", mimeType),
			slog.String("error", err.Error()))
	} else {
		result.Image.BlurHash = ph.Hash
		result.Width, result.Height = ph.Width, ph.Height
	}

	return result, nil
}
