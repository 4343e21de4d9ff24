package imagemeta

import "encoding/binary"

// Sizes of the fixed bitmap structures, in bytes.
const (
	// DIBHeaderSize is the size of a BITMAPINFOHEADER on the wire.
	DIBHeaderSize = 40

	// BMPFileHeaderSize is the size of the BITMAPFILEHEADER prefix that turns
	// a raw DIB into a standalone .bmp file.
	BMPFileHeaderSize = 14
)

// DIBHeader is the BITMAPINFOHEADER prefix shared by CF_DIB and CF_DIBV5
// clipboard buffers. The V5 header is longer, but only grows Size; all the
// fields below sit at the same offsets in both variants.
type DIBHeader struct {
	Size          uint32
	Width         int32
	Height        int32 // negative height means top-down row order
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// ParseDIBHeader decodes the header field by field in little-endian order.
// Reading from explicit offsets instead of overlaying a struct keeps the
// result independent of Go's alignment and padding rules.
func ParseDIBHeader(b []byte) (DIBHeader, bool) {
	if len(b) < DIBHeaderSize {
		return DIBHeader{}, false
	}

	le := binary.LittleEndian
	return DIBHeader{
		Size:          le.Uint32(b[0:4]),
		Width:         int32(le.Uint32(b[4:8])),
		Height:        int32(le.Uint32(b[8:12])),
		Planes:        le.Uint16(b[12:14]),
		BitCount:      le.Uint16(b[14:16]),
		Compression:   le.Uint32(b[16:20]),
		SizeImage:     le.Uint32(b[20:24]),
		XPelsPerMeter: int32(le.Uint32(b[24:28])),
		YPelsPerMeter: int32(le.Uint32(b[28:32])),
		ClrUsed:       le.Uint32(b[32:36]),
		ClrImportant:  le.Uint32(b[36:40]),
	}, true
}

// ColorsUsed returns the number of color table entries implied by the header.
// Indexed formats (8 bits per pixel or fewer) carry a full palette unless
// ClrUsed narrows it; true-color formats carry none.
func (h DIBHeader) ColorsUsed() uint32 {
	if h.ClrUsed > 0 {
		return h.ClrUsed
	}
	if h.BitCount <= 8 {
		return 1 << h.BitCount
	}
	return 0
}

// ReconstructBMP turns a raw clipboard DIB (header + optional color table +
// pixel data, no file-level wrapper) into a standalone BMP file by prefixing
// the 14-byte BITMAPFILEHEADER with the total file size and the absolute
// pixel data offset filled in.
//
// It returns nil when the buffer is too short to hold a header or ends
// before the computed pixel data offset. Those are truncated or malformed
// captures and are treated as "nothing usable on the clipboard", not errors.
// Compression mode, color masks, and row order are deliberately not
// validated here; the decoder fails loudly on anything inconsistent.
func ReconstructBMP(dib []byte) []byte {
	header, ok := ParseDIBHeader(dib)
	if !ok {
		return nil
	}

	// RGBQUAD palette entries are 4 bytes each. Widened arithmetic so a junk
	// ClrUsed cannot wrap the offset back into range.
	colorTableSize := uint64(header.ColorsUsed()) * 4
	pixelDataOffset := uint64(header.Size) + colorTableSize
	if uint64(len(dib)) <= pixelDataOffset {
		return nil
	}

	fileSize := uint32(BMPFileHeaderSize + len(dib))
	pixelOffset := uint32(BMPFileHeaderSize) + uint32(pixelDataOffset)

	bmp := make([]byte, 0, fileSize)
	bmp = append(bmp, 'B', 'M')
	bmp = binary.LittleEndian.AppendUint32(bmp, fileSize)
	bmp = append(bmp, 0, 0, 0, 0) // reserved
	bmp = binary.LittleEndian.AppendUint32(bmp, pixelOffset)
	bmp = append(bmp, dib...)
	return bmp
}
