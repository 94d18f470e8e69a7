// Package overlay renders binary masks as semi-transparent colored images
// for interactive preview.
package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/annolab/maskset/pkg/raster"
)

// DefaultTint is the preview color: red at half opacity.
var DefaultTint = color.NRGBA{R: 255, G: 0, B: 0, A: 128}

// Render produces a standalone overlay image: tint where the grid is
// foreground, fully transparent elsewhere.
func Render(grid *raster.Grid, tint color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, grid.Width(), grid.Height()))
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.At(x, y) {
				img.SetNRGBA(x, y, tint)
			}
		}
	}
	return img
}

// Composite draws the tinted mask over a copy of the base image. The base
// is not modified.
func Composite(base image.Image, grid *raster.Grid, tint color.NRGBA) *image.NRGBA {
	return imaging.Overlay(base, Render(grid, tint), image.Pt(0, 0), 1.0)
}

// EncodePNG encodes an overlay to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeWebP encodes an overlay to lossless WebP bytes, which keeps the
// alpha channel intact for the browser.
func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Lossless: true}); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return buf.Bytes(), nil
}
