// Package imagemeta parses the fixed binary prefixes of the image formats the
// clipboard can hand back: the PNG signature/IHDR and the DIB
// (device-independent bitmap) header family.
package imagemeta

import (
	"bytes"
	"encoding/binary"
)

// pngSignature is the fixed 8-byte prefix of every PNG file.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// pngHeaderLen covers the signature plus enough of the IHDR chunk to read
// the width and height fields.
const pngHeaderLen = 24

// PNGDimensions reads width and height straight out of the IHDR chunk
// without decoding any pixel data. IHDR is required to be the first chunk,
// so both fields sit at fixed offsets as big-endian 32-bit integers.
//
// It reports ok=false for input that is too short or does not start with the
// PNG signature; callers treat that as "not a PNG", never as an error.
func PNGDimensions(data []byte) (width, height uint32, ok bool) {
	if len(data) < pngHeaderLen {
		return 0, 0, false
	}
	if !bytes.Equal(data[:8], pngSignature) {
		return 0, 0, false
	}

	width = binary.BigEndian.Uint32(data[16:20])
	height = binary.BigEndian.Uint32(data[20:24])
	return width, height, true
}
