package clipboard

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clipvault/clipvault/internal/platform"
)

// makeDIB24 builds a raw clipboard DIB: a 40-byte header followed by 24-bit
// bottom-up pixel rows padded to 4-byte boundaries, every pixel set to the
// same color. No file header, exactly what CF_DIB hands back.
func makeDIB24(t *testing.T, width, height int, c color.RGBA) []byte {
	t.Helper()

	le := binary.LittleEndian
	b := make([]byte, 0, 40)
	b = le.AppendUint32(b, 40)
	b = le.AppendUint32(b, uint32(width))
	b = le.AppendUint32(b, uint32(height))
	b = le.AppendUint16(b, 1)  // planes
	b = le.AppendUint16(b, 24) // bit count
	b = le.AppendUint32(b, 0)  // BI_RGB
	b = le.AppendUint32(b, 0)  // size image
	b = le.AppendUint32(b, 2835)
	b = le.AppendUint32(b, 2835)
	b = le.AppendUint32(b, 0) // clr used
	b = le.AppendUint32(b, 0) // clr important

	rowSize := (width*3 + 3) &^ 3
	for y := 0; y < height; y++ {
		row := make([]byte, rowSize)
		for x := 0; x < width; x++ {
			row[x*3+0] = c.B
			row[x*3+1] = c.G
			row[x*3+2] = c.R
		}
		b = append(b, row...)
	}
	return b
}

// encodePNG produces real PNG bytes for a solid-color image.
func encodePNG(t *testing.T, width, height int, c color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fakeClipboard is an in-memory ImageClipboard for pipeline tests. Formats in
// claimed advertise availability without usable data behind them, modeling a
// nil handle or zero-size lock.
type fakeClipboard struct {
	data    map[platform.ImageFormat][]byte
	claimed map[platform.ImageFormat]bool
	openErr error

	openCount  int
	closeCount int
}

func (f *fakeClipboard) Open() error {
	if f.openErr != nil {
		return f.openErr
	}
	f.openCount++
	return nil
}

func (f *fakeClipboard) Close() {
	f.closeCount++
}

func (f *fakeClipboard) HasFormat(format platform.ImageFormat) bool {
	if f.claimed[format] {
		return true
	}
	_, ok := f.data[format]
	return ok
}

func (f *fakeClipboard) ReadFormat(format platform.ImageFormat, fn func(data []byte) error) (bool, error) {
	data, ok := f.data[format]
	if !ok || len(data) == 0 {
		return false, nil
	}
	return true, fn(data)
}
