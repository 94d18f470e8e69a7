// Package raster decodes stored mask images into binary occupancy grids.
//
// A mask is an image whose alpha or intensity channel encodes region
// membership: masks produced by the segmentation backend are pure 0/255
// values, so any non-zero channel value counts as foreground.
package raster

import (
	"bytes"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	_ "golang.org/x/image/webp"

	_ "image/jpeg"
	_ "image/png"
)

// Decode decodes an encoded image payload (PNG, JPEG or WebP).
func Decode(data []byte) (image.Image, error) {
	// Try registered decoders first
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}

	return nil, fmt.Errorf("image: unknown or unsupported format")
}

// Rasterize converts a decoded mask image into a binary grid. The mask must
// match the owning image's dimensions exactly; a mismatch is a data
// integrity error.
//
// A pixel is foreground when its alpha channel is non-zero and, for fully
// opaque images (JPEG, grayscale PNG), its intensity is non-zero.
func Rasterize(mask image.Image, expectedWidth, expectedHeight int) (*Grid, error) {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w != expectedWidth || h != expectedHeight {
		return nil, fmt.Errorf("mask dimensions %dx%d do not match image %dx%d",
			w, h, expectedWidth, expectedHeight)
	}

	grid := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := mask.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			if a == 0 {
				continue
			}
			// Partial alpha means the alpha channel itself carries the
			// mask; fully opaque pixels are judged by intensity.
			if a < 0xffff || r|g|b != 0 {
				grid.Set(x, y, true)
			}
		}
	}

	return grid, nil
}

// RasterizeBytes decodes and rasterizes an encoded mask payload in one step.
func RasterizeBytes(data []byte, expectedWidth, expectedHeight int) (*Grid, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mask: %w", err)
	}
	return Rasterize(img, expectedWidth, expectedHeight)
}
