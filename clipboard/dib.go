package clipboard

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/bmp"
)

// bmpFileHeaderSize is the size of the BITMAPFILEHEADER that precedes
// the DIB data in a .bmp file. The clipboard wants only the DIB part.
const bmpFileHeaderSize = 14

// encodeDIB converts an image into the CF_DIB clipboard payload: a BMP
// encoding with the file header stripped off.
func encodeDIB(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode bitmap: %w", err)
	}
	content := buf.Bytes()
	if len(content) <= bmpFileHeaderSize {
		return nil, fmt.Errorf("bitmap encoding produced %d bytes", len(content))
	}
	return content[bmpFileHeaderSize:], nil
}
