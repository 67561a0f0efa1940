// Package preview turns captured image bytes into small thumbnails the
// terminal can draw.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxPixels caps the declared size of an image before it is decoded
const MaxPixels = 50_000_000

var (
	ErrEmptyImage    = errors.New("empty image")
	ErrImageTooLarge = errors.New("image too large")
)

// Decode reads any registered format (jpeg, png, gif, bmp, webp)
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, "", fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Thumbnail downscales src to fit within maxW x maxH, keeping the aspect
// ratio. Images that already fit are returned unchanged.
func Thumbnail(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 || (w <= maxW && h <= maxH) {
		return src
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}

	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// Load decodes data and returns a thumbnail no larger than maxW x maxH
func Load(data []byte, maxW, maxH int) (image.Image, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Thumbnail(img, maxW, maxH), nil
}
