package asciify

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	// GlyphCell defines the square raster cell size, in pixels, that every
	// character is rendered into before coverage sampling.
	GlyphCell = 12

	// MinSamples and MaxSamples bound the per-axis coverage sample count.
	MinSamples = 1
	MaxSamples = 3
)

// Glyph holds a single character together with its coverage vector: one
// float per sub-cell, in raster order, each in [0, 1], where 1 means the
// sub-cell is fully covered by ink. A Glyph is immutable once computed for
// a fixed character and sample count. An empty coverage vector means the
// renderer produced no data for the character; such glyphs are excluded
// from nearest-character matching.
type Glyph struct {
	Char     rune
	Coverage []float64
}

// TextRenderer renders a single character into a small square alpha raster.
// Implementations return nil when no rendering is possible for the
// character; callers must treat a nil raster as "no data for this glyph".
type TextRenderer interface {
	RenderGlyph(r rune, cell int) *image.Alpha
}

// FreetypeRenderer renders characters using a TrueType font. It is the
// production TextRenderer; tests substitute a stub so no font file is
// required.
type FreetypeRenderer struct {
	font *truetype.Font
}

// NewFreetypeRenderer creates a FreetypeRenderer from parsed TTF data.
func NewFreetypeRenderer(ttf *truetype.Font) *FreetypeRenderer {
	return &FreetypeRenderer{font: ttf}
}

// LoadFreetypeRenderer reads and parses a TrueType font file and returns a
// FreetypeRenderer for it.
func LoadFreetypeRenderer(path string) (*FreetypeRenderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &FreetypeRenderer{font: ttf}, nil
}

// RenderGlyph renders a single character into a cell x cell alpha image.
//
// The alpha channel is used rather than a grayscale target because TrueType
// rendering produces anti-aliased output, and alpha directly represents
// pixel coverage. The baseline is derived from the font metrics so that
// descenders are not clipped.
func (fr *FreetypeRenderer) RenderGlyph(r rune, cell int) *image.Alpha {
	if fr.font == nil {
		return nil
	}

	img := image.NewAlpha(image.Rect(0, 0, cell, cell))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(fr.font)
	ctx.SetFontSize(float64(cell))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	face := truetype.NewFace(fr.font, &truetype.Options{
		Size:    float64(cell),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	metrics := face.Metrics()
	ascent := int(metrics.Ascent >> 6)
	descent := int(metrics.Descent >> 6)
	baselineY := (cell + ascent - descent) / 2

	if _, err := ctx.DrawString(string(r), freetype.Pt(0, baselineY)); err != nil {
		return nil
	}
	return img
}

// RasterizeGlyph renders a character and reduces the raster to a coverage
// vector. The function partitions the glyph cell into samples x samples
// equal sub-cells and, for each sub-cell, averages the alpha coverage of
// its pixels divided by 255, producing samples^2 floats in raster order.
// If the renderer returns no raster, the coverage vector is empty.
func RasterizeGlyph(tr TextRenderer, r rune, samples int) Glyph {
	g := Glyph{Char: r}
	if samples < MinSamples || samples > MaxSamples {
		return g
	}

	img := tr.RenderGlyph(r, GlyphCell)
	if img == nil {
		return g
	}

	sub := GlyphCell / samples
	g.Coverage = make([]float64, 0, samples*samples)
	for sy := 0; sy < samples; sy++ {
		for sx := 0; sx < samples; sx++ {
			var sum float64
			for y := sy * sub; y < (sy+1)*sub; y++ {
				for x := sx * sub; x < (sx+1)*sub; x++ {
					sum += float64(img.AlphaAt(x, y).A)
				}
			}
			g.Coverage = append(g.Coverage, sum/float64(sub*sub)/255.0)
		}
	}
	return g
}
