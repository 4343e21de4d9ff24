package imagemeta

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodePNG produces real PNG bytes for a blank image of the given size.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)))
	require.NoError(t, err)
	return buf.Bytes()
}

// rawPNGHeader builds just the 24-byte signature+IHDR prefix with arbitrary
// width and height fields.
func rawPNGHeader(width, height uint32) []byte {
	b := make([]byte, 0, pngHeaderLen)
	b = append(b, pngSignature...)
	b = binary.BigEndian.AppendUint32(b, 13) // IHDR data length
	b = append(b, 'I', 'H', 'D', 'R')
	b = binary.BigEndian.AppendUint32(b, width)
	b = binary.BigEndian.AppendUint32(b, height)
	return b
}

func TestPNGDimensions(t *testing.T) {
	t.Run("EncodedImage", func(t *testing.T) {
		data := encodePNG(t, 3, 5)

		width, height, ok := PNGDimensions(data)
		assert.True(t, ok)
		assert.Equal(t, uint32(3), width)
		assert.Equal(t, uint32(5), height)
	})

	t.Run("BigEndianFields", func(t *testing.T) {
		data := rawPNGHeader(0x01020304, 0x0a0b0c0d)

		width, height, ok := PNGDimensions(data)
		assert.True(t, ok)
		assert.Equal(t, uint32(0x01020304), width)
		assert.Equal(t, uint32(0x0a0b0c0d), height)
	})

	t.Run("ZeroDimensionsStillReported", func(t *testing.T) {
		// The inspector only reads fields; rejecting zero sizes is the
		// caller's policy.
		width, height, ok := PNGDimensions(rawPNGHeader(0, 0))
		assert.True(t, ok)
		assert.Zero(t, width)
		assert.Zero(t, height)
	})

	t.Run("TooShort", func(t *testing.T) {
		data := encodePNG(t, 1, 1)
		_, _, ok := PNGDimensions(data[:23])
		assert.False(t, ok)

		_, _, ok = PNGDimensions(nil)
		assert.False(t, ok)
	})

	t.Run("WrongSignature", func(t *testing.T) {
		// JPEG prefix padded out past the minimum length.
		data := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)
		_, _, ok := PNGDimensions(data)
		assert.False(t, ok)

		// One flipped signature byte is enough to disqualify.
		corrupted := encodePNG(t, 2, 2)
		corrupted[0] = 0x88
		_, _, ok = PNGDimensions(corrupted)
		assert.False(t, ok)
	})
}
