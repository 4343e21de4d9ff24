// Package platform abstracts the native clipboard capabilities the capture
// pipeline depends on. Each platform provides its own implementation selected
// at compile time through build tags.
package platform

import "errors"

// ImageFormat identifies a clipboard image representation.
type ImageFormat int

const (
	// FormatPNG is the registered "PNG" clipboard format: complete PNG bytes,
	// no conversion needed.
	FormatPNG ImageFormat = iota

	// FormatDIBV5 is CF_DIBV5, a device-independent bitmap with extended
	// color information.
	FormatDIBV5

	// FormatDIB is CF_DIB, the legacy device-independent bitmap.
	FormatDIB
)

// FormatPriority is the fixed probe order: direct PNG first because it needs
// no transcoding, then DIBV5, then legacy DIB.
var FormatPriority = [...]ImageFormat{FormatPNG, FormatDIBV5, FormatDIB}

func (f ImageFormat) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatDIBV5:
		return "dibv5"
	case FormatDIB:
		return "dib"
	default:
		return "unknown"
	}
}

// ErrUnsupported is returned by Open on platforms without a native image
// clipboard implementation.
var ErrUnsupported = errors.New("clipboard image capture is not supported on this platform")

// ImageClipboard is the capability surface the capture pipeline needs from
// the OS clipboard. Implementations hold exclusive ownership of the system
// clipboard between Open and Close; nothing else may be interleaved with
// that critical section.
type ImageClipboard interface {
	// Open acquires the clipboard exclusively. Every successful Open must be
	// paired with exactly one Close.
	Open() error

	// Close releases the clipboard. Safe to call via defer.
	Close()

	// HasFormat reports whether the clipboard currently offers data in the
	// given format. Availability queries do not require an open clipboard.
	HasFormat(format ImageFormat) bool

	// ReadFormat locks the clipboard data for format and passes the raw bytes
	// to fn. The slice is a borrowed view over locked clipboard memory: it is
	// only valid for the duration of fn and must never be retained. The lock
	// is released on every path out of fn, including when fn fails.
	//
	// It returns false when the format turned out to be unusable (nil data
	// handle, failed lock, or zero reported size); callers treat that as
	// "try the next format", not as a failure. An error returned by fn is
	// surfaced as-is. Requires an open clipboard.
	ReadFormat(format ImageFormat, fn func(data []byte) error) (bool, error)
}
