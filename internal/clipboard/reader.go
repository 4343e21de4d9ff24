// Package clipboard implements the image capture pipeline: probe the system
// clipboard for a supported image representation, convert it to PNG, and
// persist it through the content-addressed vault.
package clipboard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/platform"
	"github.com/clipvault/clipvault/internal/storage"
	"github.com/clipvault/clipvault/internal/types"
	"github.com/clipvault/clipvault/pkg/imagemeta"
)

// Reader drives the capture pipeline over a platform clipboard.
type Reader struct {
	clip   platform.ImageClipboard
	store  *storage.ImageStore
	logger *zap.Logger
}

// NewReader creates a Reader. A nil logger falls back to a no-op logger.
func NewReader(clip platform.ImageClipboard, store *storage.ImageStore, logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{clip: clip, store: store, logger: logger}
}

// HasImage reports whether any supported image format is currently on the
// clipboard. Availability is queried without opening the clipboard.
func (r *Reader) HasImage() bool {
	for _, format := range platform.FormatPriority {
		if r.clip.HasFormat(format) {
			return true
		}
	}
	return false
}

// ReadImage captures the current clipboard image as a deduplicated PNG file
// and returns its record. It returns (nil, nil) when no format yields a
// usable image; failing to open the clipboard, inconsistent bitmap bytes,
// and disk trouble are errors.
func (r *Reader) ReadImage() (*types.ImageRecord, error) {
	pngBytes, err := r.capturePNG()
	if err != nil {
		return nil, err
	}
	if pngBytes == nil {
		return nil, nil
	}

	// The clipboard scope is closed by this point; slow disk I/O never
	// extends clipboard exclusivity.
	return r.store.Store(pngBytes)
}

// capturePNG holds the clipboard open across the whole probe-and-read
// sequence so no other process can swap contents mid-read. Formats are tried
// in fixed priority order; a format that is advertised but unusable falls
// through to the next one.
func (r *Reader) capturePNG() ([]byte, error) {
	if err := r.clip.Open(); err != nil {
		return nil, fmt.Errorf("failed to open clipboard: %w", err)
	}
	defer r.clip.Close()

	for _, format := range platform.FormatPriority {
		if !r.clip.HasFormat(format) {
			continue
		}

		var pngBytes []byte
		usable, err := r.clip.ReadFormat(format, func(data []byte) error {
			converted, convErr := r.convert(format, data)
			if convErr != nil {
				return convErr
			}
			pngBytes = converted
			return nil
		})
		if err != nil {
			return nil, err
		}
		if !usable || pngBytes == nil {
			r.logger.Debug("clipboard format yielded no usable image",
				zap.Stringer("format", format))
			continue
		}

		r.logger.Debug("captured clipboard image",
			zap.Stringer("format", format),
			zap.Int("png_bytes", len(pngBytes)))
		return pngBytes, nil
	}

	return nil, nil
}

// convert produces owned PNG bytes from the borrowed clipboard buffer. The
// direct PNG format is copied verbatim (no re-encode); DIB variants are
// wrapped into a standalone BMP and transcoded. A nil result means this
// format should be skipped in favor of the next one.
func (r *Reader) convert(format platform.ImageFormat, data []byte) ([]byte, error) {
	if format == platform.FormatPNG {
		width, height, ok := imagemeta.PNGDimensions(data)
		if !ok || width == 0 || height == 0 {
			return nil, nil
		}
		owned := make([]byte, len(data))
		copy(owned, data)
		return owned, nil
	}

	bmpBytes := imagemeta.ReconstructBMP(data)
	if bmpBytes == nil {
		return nil, nil
	}
	return TranscodeBMP(bmpBytes)
}
