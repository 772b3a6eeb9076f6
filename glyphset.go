package asciify

import (
	"fmt"
	"math"
)

// DefaultCharset is the default candidate character sequence, ordered from
// lightest to darkest ink coverage. The order matters: nearest-character
// ties are broken by the earliest character in the sequence.
const DefaultCharset = " .:-=+*#%@"

// GlyphSet holds the coverage vectors for a fixed ordered character
// sequence, all rasterized with the same per-axis sample count and jointly
// min-max normalized. A GlyphSet is immutable after construction and safe
// to share across concurrent pipeline runs.
type GlyphSet struct {
	glyphs  []Glyph
	samples int
}

// BuildGlyphSet computes a Glyph for every character in the sequence using
// the given renderer, then performs one global min-max normalization pass
// over all sub-cells of all glyphs: if max > 0 and min != max, every value
// is rescaled to (v-min)/(max-min); otherwise values are left unchanged
// (degenerate character set, e.g. all-blank). Characters the renderer
// cannot produce keep an empty coverage vector and never participate in
// matching. The function returns an error only when no character in the
// sequence produced any coverage data at all.
func BuildGlyphSet(tr TextRenderer, characters []rune, samples int) (*GlyphSet, error) {
	if samples < MinSamples || samples > MaxSamples {
		return nil, fmt.Errorf("sample count %d out of range [%d, %d]",
			samples, MinSamples, MaxSamples)
	}
	if len(characters) == 0 {
		return nil, fmt.Errorf("empty character sequence")
	}

	gs := &GlyphSet{
		glyphs:  make([]Glyph, 0, len(characters)),
		samples: samples,
	}
	rendered := 0
	for _, r := range characters {
		g := RasterizeGlyph(tr, r, samples)
		if len(g.Coverage) > 0 {
			rendered++
		}
		gs.glyphs = append(gs.glyphs, g)
	}
	if rendered == 0 {
		return nil, fmt.Errorf("no glyph in %q produced coverage data", string(characters))
	}

	gs.normalize()
	return gs, nil
}

// NewGlyphSetFromGlyphs builds a GlyphSet directly from precomputed glyphs,
// applying the same global normalization pass as BuildGlyphSet. It is used
// when loading coverage data files and by tests.
func NewGlyphSetFromGlyphs(glyphs []Glyph, samples int) (*GlyphSet, error) {
	if samples < MinSamples || samples > MaxSamples {
		return nil, fmt.Errorf("sample count %d out of range [%d, %d]",
			samples, MinSamples, MaxSamples)
	}
	rendered := 0
	for _, g := range glyphs {
		if len(g.Coverage) > 0 {
			rendered++
		}
	}
	if rendered == 0 {
		return nil, fmt.Errorf("no glyph carries coverage data")
	}
	gs := &GlyphSet{glyphs: glyphs, samples: samples}
	gs.normalize()
	return gs, nil
}

// normalize performs the global min-max pass across every sub-cell of every
// glyph in the set. Glyphs with empty coverage vectors are ignored.
func (gs *GlyphSet) normalize() {
	min, max := math.Inf(1), math.Inf(-1)
	for _, g := range gs.glyphs {
		for _, v := range g.Coverage {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if !(max > 0) || min == max {
		return
	}
	scale := max - min
	for _, g := range gs.glyphs {
		for i, v := range g.Coverage {
			g.Coverage[i] = (v - min) / scale
		}
	}
}

// Samples returns the per-axis sample count the set was built with.
func (gs *GlyphSet) Samples() int {
	return gs.samples
}

// Len returns the number of characters in the set, including any that
// failed to rasterize.
func (gs *GlyphSet) Len() int {
	return len(gs.glyphs)
}

// Glyphs returns the glyphs of the set in character-sequence order. The
// returned slice must not be mutated.
func (gs *GlyphSet) Glyphs() []Glyph {
	return gs.glyphs
}

// NearestCharacter returns the character whose normalized coverage vector
// has the smallest sum of absolute per-sample differences against the given
// values. The scan proceeds in character-sequence order and keeps the first
// minimum, so exact ties resolve to the earliest configured character,
// making matching deterministic and order-sensitive. Glyphs with empty
// coverage vectors are skipped. The boolean result is false only when no
// glyph could be compared.
func (gs *GlyphSet) NearestCharacter(values []float64) (rune, bool) {
	best := math.Inf(1)
	var bestChar rune
	found := false
	for _, g := range gs.glyphs {
		if len(g.Coverage) != len(values) {
			continue
		}
		var diff float64
		for i, v := range g.Coverage {
			diff += math.Abs(v - values[i])
		}
		if diff < best {
			best = diff
			bestChar = g.Char
			found = true
		}
	}
	return bestChar, found
}
