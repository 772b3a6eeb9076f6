package asciify

import (
	"fmt"
	"image"
	"time"
)

// Exporter draws rendered cell frames into a raster image whose pixel
// dimensions equal a captured ExportFrame. Glyph rasters are rendered once
// per character and reused across cells.
type Exporter struct {
	tr         TextRenderer
	background RGBA
	cache      map[rune]*image.Alpha
}

// NewExporter creates an Exporter that rasterizes characters with the
// given renderer over a white background.
func NewExporter(tr TextRenderer) *Exporter {
	return &Exporter{
		tr:         tr,
		background: White,
		cache:      make(map[rune]*image.Alpha),
	}
}

// RenderImage draws a row-major cell sequence for the given grid into an
// RGBA image with exactly the frame's pixel dimensions. Each cell is drawn
// at the per-cell pitch frame/grid, which equals the derived per-cell
// pixel size times the scale multiplier, so the output dimensions never
// drift from the captured frame regardless of later grid changes.
func (e *Exporter) RenderImage(cells []CellOutput, grid *Grid, frame ExportFrame) (*image.RGBA, error) {
	if grid == nil || grid.Width == 0 || grid.Height == 0 {
		return nil, fmt.Errorf("no grid to export")
	}
	if len(cells) != grid.Width*grid.Height {
		return nil, fmt.Errorf("cell count %d does not match grid %dx%d",
			len(cells), grid.Width, grid.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	pitchX := float64(frame.Width) / float64(grid.Width)
	pitchY := float64(frame.Height) / float64(grid.Height)

	for cy := 0; cy < grid.Height; cy++ {
		for cx := 0; cx < grid.Width; cx++ {
			cell := cells[cy*grid.Width+cx]
			x0 := int(float64(cx) * pitchX)
			y0 := int(float64(cy) * pitchY)
			x1 := int(float64(cx+1) * pitchX)
			y1 := int(float64(cy+1) * pitchY)
			e.drawGlyph(img, cell, x0, y0, x1, y1)
		}
	}
	return img, nil
}

// drawGlyph draws one cell's character into the pixel rectangle
// [x0,x1)x[y0,y1), nearest-scaling the cached glyph raster and compositing
// the cell color over the white background by combined glyph and cell
// alpha.
func (e *Exporter) drawGlyph(img *image.RGBA, cell CellOutput, x0, y0, x1, y1 int) {
	raster, ok := e.cache[cell.Char]
	if !ok {
		raster = e.tr.RenderGlyph(cell.Char, GlyphCell)
		e.cache[cell.Char] = raster
	}
	if raster == nil {
		return
	}

	w, h := x1-x0, y1-y0
	if w <= 0 || h <= 0 {
		return
	}
	cellAlpha := float64(cell.Color.A) / 255.0

	for y := 0; y < h; y++ {
		gy := y * GlyphCell / h
		for x := 0; x < w; x++ {
			gx := x * GlyphCell / w
			a := float64(raster.AlphaAt(gx, gy).A) / 255.0 * cellAlpha
			if a == 0 {
				continue
			}
			dst := img.RGBAAt(x0+x, y0+y)
			dst.R = clampChannel(float64(cell.Color.R)*a + float64(dst.R)*(1-a))
			dst.G = clampChannel(float64(cell.Color.G)*a + float64(dst.G)*(1-a))
			dst.B = clampChannel(float64(cell.Color.B)*a + float64(dst.B)*(1-a))
			img.SetRGBA(x0+x, y0+y, dst)
		}
	}
}

// ExportFilename returns the conventional export filename for the given
// moment: an ISO-8601 timestamp with colons replaced by hyphens, e.g.
// "ascii-art-2024-01-15T10-30-00.png".
func ExportFilename(t time.Time) string {
	return "ascii-art-" + t.Format("2006-01-02T15-04-05") + ".png"
}
