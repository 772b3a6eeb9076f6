package asciify

import (
	"errors"
	"image/color"
	"testing"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	return NewPipeline(rampGlyphSet(t), WithScaler(testScaler()))
}

func TestPipelineLifecycle(t *testing.T) {
	p := newTestPipeline(t)
	if p.State() != StateIdle {
		t.Fatalf("Expected Idle, got %v", p.State())
	}

	seq := p.BeginDecode()
	if p.State() != StateDecoding {
		t.Fatalf("Expected Decoding, got %v", p.State())
	}

	img := solidImage(100, 50, color.RGBA{R: 120, G: 130, B: 140, A: 255})
	grid, err := p.CompleteDecode(seq, img, 50, 1)
	if err != nil {
		t.Fatalf("CompleteDecode: %v", err)
	}
	if p.State() != StateReady {
		t.Fatalf("Expected Ready, got %v", p.State())
	}
	if grid.Width != 50 || grid.Height != 25 {
		t.Errorf("Expected 50x25 grid (aspect 2), got %dx%d", grid.Width, grid.Height)
	}
}

func TestPipelineStaleDecodeDiscarded(t *testing.T) {
	p := newTestPipeline(t)

	stale := p.BeginDecode()
	latest := p.BeginDecode()

	img := solidImage(50, 50, color.RGBA{R: 9, G: 9, B: 9, A: 255})
	if _, err := p.CompleteDecode(stale, img, 50, 1); !errors.Is(err, ErrStaleDecode) {
		t.Fatalf("Expected ErrStaleDecode, got %v", err)
	}
	if p.Grid() != nil {
		t.Fatal("Stale decode must not install a grid")
	}

	if _, err := p.CompleteDecode(latest, img, 50, 1); err != nil {
		t.Fatalf("Latest decode rejected: %v", err)
	}
	if p.Grid() == nil {
		t.Fatal("Expected grid after latest decode")
	}
}

func TestPipelineDecodeFailureKeepsPriorState(t *testing.T) {
	p := newTestPipeline(t)

	// Failure with no prior grid returns to Idle.
	seq := p.BeginDecode()
	if _, err := p.CompleteDecode(seq, nil, 50, 1); err == nil {
		t.Fatal("Expected error for failed decode")
	}
	if p.State() != StateIdle || p.Grid() != nil {
		t.Fatalf("Expected Idle with no grid, got %v", p.State())
	}

	// Failure after a successful load keeps the prior grid and frame.
	img := solidImage(100, 100, color.RGBA{R: 77, G: 77, B: 77, A: 255})
	seq = p.BeginDecode()
	if _, err := p.CompleteDecode(seq, img, 60, 1); err != nil {
		t.Fatalf("CompleteDecode: %v", err)
	}
	prior := p.Grid()
	priorFrame, _ := p.Frame()

	seq = p.BeginDecode()
	if _, err := p.CompleteDecode(seq, nil, 60, 1); err == nil {
		t.Fatal("Expected error for failed decode")
	}
	if p.State() != StateReady {
		t.Fatalf("Expected Ready after failed reload, got %v", p.State())
	}
	if p.Grid() != prior {
		t.Error("Failed decode must not replace the prior grid")
	}
	if frame, _ := p.Frame(); frame != priorFrame {
		t.Error("Failed decode must not replace the prior frame")
	}
}

func TestPipelineWidthValidation(t *testing.T) {
	p := newTestPipeline(t)
	img := solidImage(50, 50, color.RGBA{A: 255})
	seq := p.BeginDecode()
	if _, err := p.CompleteDecode(seq, img, 40, 1); err == nil {
		t.Error("Expected error for width below minimum")
	}
	seq = p.BeginDecode()
	if _, err := p.CompleteDecode(seq, img, 301, 1); err == nil {
		t.Error("Expected error for width above maximum")
	}
}

func TestExportFrameStableAcrossParameterChanges(t *testing.T) {
	p := NewPipeline(rampGlyphSet(t),
		WithScaler(testScaler()),
		WithCharPixelSize(12),
		WithScaleMultiplier(2))

	img := solidImage(100, 50, color.RGBA{R: 10, G: 200, B: 50, A: 255})
	seq := p.BeginDecode()
	if _, err := p.CompleteDecode(seq, img, 50, 1); err != nil {
		t.Fatalf("CompleteDecode: %v", err)
	}

	frame, ok := p.Frame()
	if !ok {
		t.Fatal("Expected a captured frame")
	}
	// 50x25 grid, 12 px per character, multiplier 2.
	if frame.Width != 1200 || frame.Height != 600 {
		t.Fatalf("Expected 1200x600 frame, got %dx%d", frame.Width, frame.Height)
	}

	// A width change recomputes the grid but not the frame.
	if _, err := p.ComputeGrid(80, 1); err != nil {
		t.Fatalf("ComputeGrid: %v", err)
	}
	if got, _ := p.Frame(); got != frame {
		t.Errorf("Width change moved the frame: %v -> %v", frame, got)
	}

	// Render-parameter changes never touch the frame either.
	for _, params := range []RenderParams{
		{Palette: Grey2Bit, Ink: Black, Tint: 1, Contrast: 0.5},
		{Palette: ColorFull, Ink: White, Tint: 0.3, Brightness: -0.2},
	} {
		if _, err := p.RenderFrame(params); err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
		if got, _ := p.Frame(); got != frame {
			t.Errorf("Render moved the frame: %v -> %v", frame, got)
		}
	}

	// Only a new image load recaptures.
	seq = p.BeginDecode()
	if _, err := p.CompleteDecode(seq, solidImage(100, 100, color.RGBA{A: 255}), 50, 1); err != nil {
		t.Fatalf("CompleteDecode: %v", err)
	}
	if got, _ := p.Frame(); got == frame {
		t.Error("New image load should recapture the frame")
	}
}

func TestCaptureExportFrameCellSize(t *testing.T) {
	frame := CaptureExportFrame(50, 25, 12, 2)
	grid := &Grid{Width: 50, Height: 25}
	w, h := frame.CellSize(grid, 2)
	if w != 12 || h != 12 {
		t.Errorf("Expected 12x12 cell size, got %fx%f", w, h)
	}

	// After a grid change the derived cell size shifts, but the frame
	// dimensions stay fixed.
	w, h = frame.CellSize(&Grid{Width: 100, Height: 50}, 2)
	if w != 6 || h != 6 {
		t.Errorf("Expected 6x6 cell size, got %fx%f", w, h)
	}
}

func TestPipelineRenderBeforeDecode(t *testing.T) {
	p := newTestPipeline(t)
	if _, err := p.RenderFrame(DefaultRenderParams()); err == nil {
		t.Error("Expected error rendering before any decode")
	}
}

// TestEndToEndSolidRed walks a 2x2 solid red image through sampling, tone
// mapping, matching, and quantization at the component level (the grid
// width floor applies only to the pipeline entry point).
func TestEndToEndSolidRed(t *testing.T) {
	gs := rampGlyphSet(t)
	img := solidImage(2, 2, color.RGBA{R: 255, A: 255})

	values, colors, err := Sample(img, testScaler(), 2, 2, 1)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	p := RenderParams{Palette: Grey2Bit, Ink: Black, Tint: 1}
	cells := RenderCells(gs, values, colors, p)
	if len(cells) != 4 {
		t.Fatalf("Expected 4 cells, got %d", len(cells))
	}

	// A solid image is a flat value map, so tone mapping passes the raw
	// value 1 - 255/765 = 2/3 through, matching ramp index 6.
	wantChar, _ := gs.NearestCharacter([]float64{1 - 255.0/765.0})
	if wantChar != []rune(DefaultCharset)[6] {
		t.Fatalf("sanity: expected ramp index 6, got %q", wantChar)
	}

	// Every grey entry v is at Manhattan distance 255+v from pure red, so
	// the darkest Grey2Bit entry is the exact nearest.
	for i, cell := range cells {
		if cell.Color.R != 0 || cell.Color.G != 0 || cell.Color.B != 0 {
			t.Errorf("Cell %d: expected black channels, got %v", i, cell.Color)
		}
		if cell.Char != wantChar {
			t.Errorf("Cell %d: expected %q, got %q", i, wantChar, cell.Char)
		}
	}
}

// TestEndToEndTransparent renders a fully transparent image through the
// whole pipeline: every cell comes out as white ink with the lightest
// character.
func TestEndToEndTransparent(t *testing.T) {
	p := newTestPipeline(t)
	img := solidImage(50, 50, color.RGBA{})

	seq := p.BeginDecode()
	grid, err := p.CompleteDecode(seq, img, 50, 1)
	if err != nil {
		t.Fatalf("CompleteDecode: %v", err)
	}

	params := RenderParams{Palette: ColorFull, Ink: Black, Tint: 1}
	cells, err := p.RenderFrame(params)
	if err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if len(cells) != grid.Width*grid.Height {
		t.Fatalf("Expected %d cells, got %d", grid.Width*grid.Height, len(cells))
	}

	lightest := []rune(DefaultCharset)[0]
	for i, cell := range cells {
		if cell.Char != lightest {
			t.Errorf("Cell %d: expected lightest character %q, got %q",
				i, lightest, cell.Char)
		}
		if cell.Color.R != 255 || cell.Color.G != 255 || cell.Color.B != 255 {
			t.Errorf("Cell %d: expected white channels, got %v", i, cell.Color)
		}
	}
}
