package asciify

// PaletteKind identifies one of the fixed output palettes. It is a closed
// enumeration: every switch over PaletteKind in this package is exhaustive.
type PaletteKind int

const (
	// Monochrome renders every cell with the configured ink color and
	// never consults the source color.
	Monochrome PaletteKind = iota

	// Grey2Bit quantizes to a 4-entry grey ramp.
	Grey2Bit

	// Grey4Bit quantizes to a 16-entry linear grey ramp.
	Grey4Bit

	// Grey8Bit quantizes to a 256-entry linear grey ramp.
	Grey8Bit

	// Color3Bit quantizes to 8 fixed hues.
	Color3Bit

	// Color4Bit quantizes to the 8 fixed hues plus 7 grey steps.
	Color4Bit

	// ColorFull passes the source color through without quantization.
	ColorFull
)

// String returns the display name of the palette.
func (k PaletteKind) String() string {
	switch k {
	case Monochrome:
		return "monochrome"
	case Grey2Bit:
		return "grey-2bit"
	case Grey4Bit:
		return "grey-4bit"
	case Grey8Bit:
		return "grey-8bit"
	case Color3Bit:
		return "color-3bit"
	case Color4Bit:
		return "color-4bit"
	case ColorFull:
		return "color-full"
	}
	return "unknown"
}

// ParsePaletteKind maps a palette name to its PaletteKind. The boolean
// result is false for unrecognized names.
func ParsePaletteKind(name string) (PaletteKind, bool) {
	for _, k := range PaletteKinds {
		if k.String() == name {
			return k, true
		}
	}
	return Monochrome, false
}

// PaletteKinds lists every palette in catalog order.
var PaletteKinds = []PaletteKind{
	Monochrome, Grey2Bit, Grey4Bit, Grey8Bit, Color3Bit, Color4Bit, ColorFull,
}

// The palette tables are process-wide constants: built once at package
// initialization and never mutated, so they are safe to share across
// concurrent pipeline runs without synchronization.
var (
	grey2BitColors = []RGBA{
		{R: 0x00, G: 0x00, B: 0x00, A: 255},
		{R: 0x68, G: 0x68, B: 0x68, A: 255},
		{R: 0xB8, G: 0xB8, B: 0xB8, A: 255},
		{R: 0xFF, G: 0xFF, B: 0xFF, A: 255},
	}

	grey4BitColors = greyRamp(16, 17)
	grey8BitColors = greyRamp(256, 1)

	color3BitColors = []RGBA{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
		{R: 255, G: 0, B: 255, A: 255},
		{R: 0, G: 255, B: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}

	color4BitColors = append(append([]RGBA{}, color3BitColors...),
		greySteps(32, 64, 96, 128, 160, 192, 224)...)
)

// greyRamp builds a linear grey ramp of n entries spaced by step.
func greyRamp(n, step int) []RGBA {
	ramp := make([]RGBA, n)
	for i := range ramp {
		v := uint8(i * step)
		ramp[i] = RGBA{R: v, G: v, B: v, A: 255}
	}
	return ramp
}

// greySteps builds grey entries at the given channel values.
func greySteps(values ...uint8) []RGBA {
	steps := make([]RGBA, len(values))
	for i, v := range values {
		steps[i] = RGBA{R: v, G: v, B: v, A: 255}
	}
	return steps
}

// Colors returns the fixed, ordered color table for the palette. Monochrome
// and ColorFull carry no table: Monochrome never consults color and
// ColorFull is an identity transform.
func (k PaletteKind) Colors() []RGBA {
	switch k {
	case Monochrome:
		return nil
	case Grey2Bit:
		return grey2BitColors
	case Grey4Bit:
		return grey4BitColors
	case Grey8Bit:
		return grey8BitColors
	case Color3Bit:
		return color3BitColors
	case Color4Bit:
		return color4BitColors
	case ColorFull:
		return nil
	}
	return nil
}

// Quantize maps a color to the nearest entry of the palette by Manhattan
// distance over the R, G, and B channels, ignoring alpha; the input alpha
// is carried through on the result. The scan runs in table order and the
// first entry at the minimum distance wins, so ties are deterministic.
// ColorFull returns the input unchanged; Monochrome has no color table and
// also returns the input unchanged (callers never consult color for it).
func (k PaletteKind) Quantize(c RGBA) RGBA {
	table := k.Colors()
	if table == nil {
		return c
	}
	best := table[0]
	bestDist := c.manhattanDistance(table[0])
	for _, entry := range table[1:] {
		if d := c.manhattanDistance(entry); d < bestDist {
			bestDist = d
			best = entry
		}
	}
	best.A = c.A
	return best
}
