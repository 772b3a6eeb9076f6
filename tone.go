package asciify

import "math"

// Normalize applies tone mapping to a value map: one global min-max pass
// across every sample of every cell, followed by contrast and brightness
// adjustment and clamping to [0, 1]. Contrast and brightness both range
// over [-1, 1].
//
// If max > 0 and min != max, every sample v is rescaled to
// (v-min)/(max-min), then adjusted to (contrast+1)*(v-0.5)+0.5+brightness,
// then clamped. A flat value map (min == max, or max == 0) passes through
// unchanged with no contrast or brightness applied.
//
// The input map is not mutated; a fresh map is returned.
func Normalize(values ValueMap, contrast, brightness float64) ValueMap {
	min, max := math.Inf(1), math.Inf(-1)
	for _, row := range values {
		for _, cell := range row {
			for _, v := range cell {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
		}
	}

	out := make(ValueMap, len(values))
	degenerate := !(max > 0) || min == max
	scale := max - min
	for y, row := range values {
		out[y] = make([][]float64, len(row))
		for x, cell := range row {
			mapped := make([]float64, len(cell))
			for i, v := range cell {
				if degenerate {
					mapped[i] = v
					continue
				}
				v = (v - min) / scale
				v = (contrast+1)*(v-0.5) + 0.5 + brightness
				mapped[i] = clampUnit(v)
			}
			out[y][x] = mapped
		}
	}
	return out
}
