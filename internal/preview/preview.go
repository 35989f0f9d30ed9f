// Package preview turns a selected image file into the sidebar's thumbnail.
package preview

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// MaxPixels bounds the images Thumbnail will decode.
const MaxPixels = 64 << 20

// ErrTooLarge is returned for images whose header declares more than MaxPixels.
var ErrTooLarge = errors.New("preview: image too large")

// DataURL encodes data as a data: URL, the form the preview widget keeps as its source.
func DataURL(data []byte, contentType string) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Thumbnail decodes data and scales it to fit within size x size, keeping the aspect ratio.
// Images already inside the box are returned unscaled. size <= 0 disables scaling.
func Thumbnail(data []byte, size int) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preview: decode: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preview: decode: %w", err)
	}
	w, h := Fit(img.Bounds().Dx(), img.Bounds().Dy(), size)
	if w == img.Bounds().Dx() && h == img.Bounds().Dy() {
		return img, nil
	}
	return transform.Resize(img, w, h, transform.Linear), nil
}

// Fit returns the size of a w x h box scaled down to fit within size x size.
func Fit(w, h, size int) (int, int) {
	if size <= 0 || (w <= size && h <= size) || w <= 0 || h <= 0 {
		return w, h
	}
	if w >= h {
		nh := h * size / w
		if nh < 1 {
			nh = 1
		}
		return size, nh
	}
	nw := w * size / h
	if nw < 1 {
		nw = 1
	}
	return nw, size
}
