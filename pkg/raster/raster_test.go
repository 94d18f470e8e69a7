package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// grayMaskPNG encodes a grayscale mask where fill reports foreground pixels.
func grayMaskPNG(t *testing.T, width, height int, fill func(x, y int) bool) []byte {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if fill(x, y) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode mask: %v", err)
	}
	return buf.Bytes()
}

func TestRasterizeBytesGrayMask(t *testing.T) {
	data := grayMaskPNG(t, 8, 6, func(x, y int) bool {
		return x >= 2 && x < 5 && y >= 1 && y < 4
	})

	grid, err := RasterizeBytes(data, 8, 6)
	if err != nil {
		t.Fatalf("RasterizeBytes failed: %v", err)
	}

	if grid.Width() != 8 || grid.Height() != 6 {
		t.Errorf("Expected 8x6 grid, got %dx%d", grid.Width(), grid.Height())
	}

	if !grid.At(2, 1) || !grid.At(4, 3) {
		t.Error("Expected foreground pixels inside the filled rectangle")
	}
	if grid.At(0, 0) || grid.At(5, 1) {
		t.Error("Expected background pixels outside the filled rectangle")
	}
	if grid.Count() != 9 {
		t.Errorf("Expected 9 foreground pixels, got %d", grid.Count())
	}
}

func TestRasterizeAlphaMask(t *testing.T) {
	// Membership carried by the alpha channel, color left black
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{A: 128})
	img.SetNRGBA(2, 2, color.NRGBA{A: 255})

	grid, err := Rasterize(img, 4, 4)
	if err != nil {
		t.Fatalf("Rasterize failed: %v", err)
	}

	if !grid.At(1, 1) {
		t.Error("Expected partially transparent pixel to be foreground")
	}
	if grid.At(0, 0) {
		t.Error("Expected fully transparent pixel to be background")
	}
}

func TestRasterizeDimensionMismatch(t *testing.T) {
	data := grayMaskPNG(t, 4, 4, func(x, y int) bool { return true })

	if _, err := RasterizeBytes(data, 8, 8); err == nil {
		t.Error("Expected error for mismatched dimensions")
	}
}

func TestRasterizeBytesInvalidPayload(t *testing.T) {
	if _, err := RasterizeBytes([]byte("not an image"), 4, 4); err == nil {
		t.Error("Expected error for undecodable payload")
	}
}

func TestDecodePNG(t *testing.T) {
	data := grayMaskPNG(t, 3, 3, func(x, y int) bool { return x == y })

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 3 {
		t.Errorf("Expected 3x3 image, got %v", img.Bounds())
	}
}

func TestGridBounds(t *testing.T) {
	grid := NewGrid(4, 3)
	grid.Set(1, 2, true)

	if !grid.At(1, 2) {
		t.Error("Expected set cell to be foreground")
	}
	if grid.At(-1, 0) || grid.At(0, -1) || grid.At(4, 0) || grid.At(0, 3) {
		t.Error("Expected out-of-bounds cells to be background")
	}

	// Out-of-bounds writes are ignored
	grid.Set(10, 10, true)
	if grid.Count() != 1 {
		t.Errorf("Expected 1 foreground cell, got %d", grid.Count())
	}
}

func TestGridEmpty(t *testing.T) {
	grid := NewGrid(5, 5)
	if !grid.Empty() {
		t.Error("Expected fresh grid to be empty")
	}

	grid.Set(3, 3, true)
	if grid.Empty() {
		t.Error("Expected grid with a foreground cell to be non-empty")
	}
}
