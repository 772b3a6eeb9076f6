package asciify

import (
	"strconv"
	"strings"
)

// RGBA represents a color with 8-bit red, green, blue, and alpha channels,
// where each channel ranges from 0 to 255. Alpha 255 is fully opaque and
// alpha 0 is fully transparent.
type RGBA struct {
	R, G, B, A uint8
}

// White is the fallback ink rendering for fully transparent source pixels.
var White = RGBA{R: 255, G: 255, B: 255, A: 255}

// Black is the fallback for colors that fail to parse.
var Black = RGBA{A: 255}

// manhattanDistance calculates the Manhattan distance between two colors in
// the RGB color space, ignoring alpha. The function returns the sum of the
// absolute per-channel differences as an integer.
func (c RGBA) manhattanDistance(other RGBA) int {
	return absDiff(c.R, other.R) + absDiff(c.G, other.G) + absDiff(c.B, other.B)
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a) - int(b)
	}
	return int(b) - int(a)
}

// ParseHexColor parses a hex color string of the form "#RGB", "#RRGGBB",
// or "#RRGGBBAA" (the leading '#' is optional) into an RGBA color. Malformed
// input falls back to opaque black rather than returning an error; the
// configuration surfaces that feed this function treat bad colors as a
// recoverable condition.
func ParseHexColor(s string) RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	expand := func(h string) uint8 {
		v, err := strconv.ParseUint(h, 16, 8)
		if err != nil {
			return 0
		}
		return uint8(v)
	}

	switch len(s) {
	case 3:
		// Shorthand: each digit doubles, e.g. "f80" -> "ff8800".
		if !isHex(s) {
			return Black
		}
		return RGBA{
			R: expand(s[0:1] + s[0:1]),
			G: expand(s[1:2] + s[1:2]),
			B: expand(s[2:3] + s[2:3]),
			A: 255,
		}
	case 6:
		if !isHex(s) {
			return Black
		}
		return RGBA{
			R: expand(s[0:2]),
			G: expand(s[2:4]),
			B: expand(s[4:6]),
			A: 255,
		}
	case 8:
		if !isHex(s) {
			return Black
		}
		return RGBA{
			R: expand(s[0:2]),
			G: expand(s[2:4]),
			B: expand(s[4:6]),
			A: expand(s[6:8]),
		}
	default:
		return Black
	}
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// clampChannel clamps a floating-point channel value to the 0-255 range and
// converts it to uint8.
func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampUnit clamps a floating-point value to the [0, 1] range.
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
