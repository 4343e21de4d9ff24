//go:build !windows
// +build !windows

package platform

import "go.uber.org/zap"

// stubClipboard is the fallback for platforms without a native image
// clipboard implementation. Open fails with ErrUnsupported so callers get a
// clear signal instead of silently empty reads.
type stubClipboard struct{}

// NewClipboard creates the platform clipboard implementation.
func NewClipboard(logger *zap.Logger) ImageClipboard {
	return stubClipboard{}
}

func (stubClipboard) Open() error { return ErrUnsupported }

func (stubClipboard) Close() {}

func (stubClipboard) HasFormat(ImageFormat) bool { return false }

func (stubClipboard) ReadFormat(ImageFormat, func(data []byte) error) (bool, error) {
	return false, nil
}
