package clipboard

import (
	"bytes"
	"fmt"
	"image/png"

	"golang.org/x/image/bmp"
)

// TranscodeBMP decodes a standalone BMP file and re-encodes its pixels as
// PNG, losslessly. A decoder rejection is a real error: the clipboard
// claimed a bitmap was there but its bytes are internally inconsistent, and
// that should surface rather than produce a corrupt file. A decoded image
// with a zero dimension yields (nil, nil) so the caller can fall through to
// the next format.
func TranscodeBMP(bmpBytes []byte) ([]byte, error) {
	img, err := bmp.Decode(bytes.NewReader(bmpBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode bitmap: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}
