package imageutil

import (
	"image/color"
	"testing"
)

func TestResizeDimensions(t *testing.T) {
	img := NewRGBAImage(64, 32)
	img.Fill(color.RGBA{R: 50, G: 100, B: 150, A: 255})

	for _, interp := range []Interpolation{InterpolationArea, InterpolationLinear, InterpolationNearest} {
		out := Resize(img, 16, 8, interp)
		if out.Width() != 16 || out.Height() != 8 {
			t.Errorf("Interp %d: expected 16x8, got %dx%d",
				interp, out.Width(), out.Height())
		}
		// A uniform source stays uniform under any interpolation.
		if got := out.RGBAAt(8, 4); got != (color.RGBA{R: 50, G: 100, B: 150, A: 255}) {
			t.Errorf("Interp %d: expected uniform color, got %v", interp, got)
		}
	}
}

func TestResizeToWidthKeepsAspect(t *testing.T) {
	img := NewRGBAImage(200, 100)
	out := ResizeToWidth(img, 50, InterpolationNearest)
	if out.Width() != 50 || out.Height() != 25 {
		t.Errorf("Expected 50x25, got %dx%d", out.Width(), out.Height())
	}

	// Extreme aspect ratios clamp to at least one row.
	wide := NewRGBAImage(1000, 2)
	out = ResizeToWidth(wide, 10, InterpolationNearest)
	if out.Height() != 1 {
		t.Errorf("Expected height clamp to 1, got %d", out.Height())
	}
}

func TestResizeNearestPreservesBlocks(t *testing.T) {
	// Left half red, right half blue; nearest-neighbor downscale keeps
	// the halves exact.
	img := NewRGBAImage(8, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}

	out := Resize(img, 2, 1, InterpolationNearest)
	if got := out.RGBAAt(0, 0); got.R != 255 || got.B != 0 {
		t.Errorf("Left cell: expected red, got %v", got)
	}
	if got := out.RGBAAt(1, 0); got.B != 255 || got.R != 0 {
		t.Errorf("Right cell: expected blue, got %v", got)
	}
}
