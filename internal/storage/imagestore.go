package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/clipvault/clipvault/internal/types"
	"github.com/clipvault/clipvault/pkg/imagemeta"
)

// ImageStore persists PNG images in a flat directory, each file named by the
// hex content hash of its bytes. Existence of <hash>.png is the entire
// catalog: identical bytes always resolve to the same file, so repeated
// captures deduplicate for free. The hash is not adversarial-grade; a
// collision is indistinguishable from a true duplicate, which is acceptable
// for a local clipboard cache.
type ImageStore struct {
	dir    string
	logger *zap.Logger
}

// NewImageStore creates a store rooted at dir. The directory is created
// lazily on the first write.
func NewImageStore(dir string, logger *zap.Logger) *ImageStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageStore{dir: dir, logger: logger}
}

// Dir returns the directory the store writes into.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Store writes pngBytes to <hash>.png unless a file of that name already
// exists, and returns the resulting record. Empty input or a PNG whose
// header reports a zero dimension yields (nil, nil): nothing worth keeping,
// but not a failure either.
func (s *ImageStore) Store(pngBytes []byte) (*types.ImageRecord, error) {
	if len(pngBytes) == 0 {
		return nil, nil
	}
	width, height, ok := imagemeta.PNGDimensions(pngBytes)
	if !ok || width == 0 || height == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}

	hash := fmt.Sprintf("%x", xxhash.Sum64(pngBytes))
	path := filepath.Join(s.dir, hash+".png")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, pngBytes, 0644); err != nil {
			return nil, fmt.Errorf("failed to write image file: %w", err)
		}
		s.logger.Debug("stored new clipboard image",
			zap.String("path", path),
			zap.Int("bytes", len(pngBytes)))
	} else {
		s.logger.Debug("image already stored", zap.String("path", path))
	}

	// Size comes from file metadata rather than len(pngBytes) so the record
	// reflects the file as it actually exists on disk.
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &types.ImageRecord{
		Path:     abs,
		Size:     uint64(info.Size()),
		Width:    width,
		Height:   height,
		Hash:     hash,
		Captured: time.Now(),
	}, nil
}
