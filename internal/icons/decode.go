package icons

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

var supported = []string{"image/png", "image/jpeg", "image/gif", "image/webp", "image/bmp"}

// Decode sniffs data and decodes it into an image. Content that is not one
// of the supported raster formats is rejected before decoding.
func Decode(data []byte) (image.Image, string, error) {
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), supported...) {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", mt.String(), err)
	}
	return img, format, nil
}
