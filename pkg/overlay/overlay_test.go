package overlay

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/annolab/maskset/pkg/raster"
)

func crossGrid() *raster.Grid {
	grid := raster.NewGrid(5, 5)
	for i := 0; i < 5; i++ {
		grid.Set(2, i, true)
		grid.Set(i, 2, true)
	}
	return grid
}

func TestRenderTintAndTransparency(t *testing.T) {
	img := Render(crossGrid(), DefaultTint)

	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 5 {
		t.Fatalf("Expected 5x5 overlay, got %v", img.Bounds())
	}

	if got := img.NRGBAAt(2, 2); got != DefaultTint {
		t.Errorf("Expected tint at foreground pixel, got %v", got)
	}
	if got := img.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("Expected transparent background pixel, got %v", got)
	}
}

func TestRenderCustomTint(t *testing.T) {
	tint := color.NRGBA{R: 0, G: 255, B: 0, A: 200}
	img := Render(crossGrid(), tint)

	if got := img.NRGBAAt(2, 0); got != tint {
		t.Errorf("Expected custom tint, got %v", got)
	}
}

func TestCompositePreservesBase(t *testing.T) {
	base := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			base.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
		}
	}

	out := Composite(base, crossGrid(), DefaultTint)

	// Background pixels keep the base color
	if got := out.NRGBAAt(0, 0); got.B != 255 || got.R != 0 {
		t.Errorf("Expected untouched background pixel, got %v", got)
	}
	// Foreground pixels blend toward the tint
	if got := out.NRGBAAt(2, 2); got.R == 0 {
		t.Errorf("Expected tinted foreground pixel, got %v", got)
	}
	// The base image itself is unchanged
	if got := base.NRGBAAt(2, 2); got.R != 0 {
		t.Errorf("Expected base image to be untouched, got %v", got)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	data, err := EncodePNG(Render(crossGrid(), DefaultTint))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Encoded overlay does not decode as PNG: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 5 {
		t.Errorf("Expected 5x5 image, got %v", img.Bounds())
	}
}

func TestEncodeWebP(t *testing.T) {
	data, err := EncodeWebP(Render(crossGrid(), DefaultTint))
	if err != nil {
		t.Fatalf("EncodeWebP failed: %v", err)
	}

	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Error("Encoded overlay is not a WebP container")
	}
}
