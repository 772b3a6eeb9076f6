package asciify

// RenderParams carries the parameters that affect only the rendered cell
// sequence. Changing any of these re-renders cells from the existing Grid;
// none of them invalidate the Grid or the ExportFrame.
type RenderParams struct {
	// Contrast and Brightness adjust the tone-mapped value map, each in
	// [-1, 1].
	Contrast   float64
	Brightness float64

	// Palette selects the output palette.
	Palette PaletteKind

	// Ink is the fixed ink color: the render color for Monochrome, and
	// the tint blend target otherwise.
	Ink RGBA

	// Tint blends the computed color toward (tint < 1) or away from
	// (tint > 1) the ink color. Tint 1 is the identity.
	Tint float64

	// AlphaAdjust is added to the source alpha (normalized to [0, 1])
	// before clamping.
	AlphaAdjust float64
}

// DefaultRenderParams returns the neutral parameter set: no tone
// adjustment, monochrome palette, black ink, identity tint.
func DefaultRenderParams() RenderParams {
	return RenderParams{
		Palette: Monochrome,
		Ink:     Black,
		Tint:    1,
	}
}

// CellOutput is one rendered grid position: the matched character and the
// color to draw it with.
type CellOutput struct {
	Char  rune
	Color RGBA
}

// RenderCell produces the (character, color) pair for a single cell from
// its tone-mapped sample values and sampled source color.
//
// The character is the nearest glyph for the values. For Monochrome the
// render color is the ink color, with tint and alpha adjustment not
// applied. Otherwise the base color is the raw color for ColorFull or the
// palette-quantized color for every other palette; the effective alpha is
// clamp(rawColor.A/255 + alphaAdjust, 0, 1); a fully transparent source
// pixel renders with white channels regardless of palette or tint; and a
// tint other than 1 blends each channel toward the ink color via
// channel*tint + ink*(1-tint), clamped per channel. Tint above 1
// extrapolates away from the ink color and may overshoot before clamping.
func RenderCell(gs *GlyphSet, values []float64, rawColor RGBA, p RenderParams) CellOutput {
	char, ok := gs.NearestCharacter(values)
	if !ok {
		char = gs.glyphs[0].Char
	}

	if p.Palette == Monochrome {
		return CellOutput{Char: char, Color: p.Ink}
	}

	base := p.Palette.Quantize(rawColor)
	alpha := clampUnit(float64(rawColor.A)/255.0 + p.AlphaAdjust)

	if rawColor.A == 0 {
		base.R, base.G, base.B = 255, 255, 255
	} else if p.Tint != 1 {
		base.R = clampChannel(float64(base.R)*p.Tint + float64(p.Ink.R)*(1-p.Tint))
		base.G = clampChannel(float64(base.G)*p.Tint + float64(p.Ink.G)*(1-p.Tint))
		base.B = clampChannel(float64(base.B)*p.Tint + float64(p.Ink.B)*(1-p.Tint))
	}
	base.A = clampChannel(alpha * 255)

	return CellOutput{Char: char, Color: base}
}

// RenderCells tone-maps the raw value map and renders every cell, returning
// the outputs in row-major order.
func RenderCells(gs *GlyphSet, values ValueMap, colors ColorMap, p RenderParams) []CellOutput {
	normalized := Normalize(values, p.Contrast, p.Brightness)

	var out []CellOutput
	for y, row := range normalized {
		for x, cell := range row {
			out = append(out, RenderCell(gs, cell, colors[y][x], p))
		}
	}
	return out
}
