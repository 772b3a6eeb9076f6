package asciify

import (
	"fmt"

	"github.com/asciify/asciify/imageutil"
)

const (
	// MinGridWidth and MaxGridWidth bound the user-controlled character
	// grid width.
	MinGridWidth = 50
	MaxGridWidth = 300
)

// Scaler produces RGBA pixel data for an image at an arbitrary target
// resolution. It is the decoded-image accessor the sampler collaborates
// with; the production implementation wraps the x/image scalers.
type Scaler interface {
	Scale(img *imageutil.RGBAImage, width, height int) *imageutil.RGBAImage
}

// DrawScaler scales with the x/image draw scalers via imageutil.
type DrawScaler struct {
	Interp imageutil.Interpolation
}

// Scale resizes the image to the requested dimensions.
func (s DrawScaler) Scale(img *imageutil.RGBAImage, width, height int) *imageutil.RGBAImage {
	return imageutil.Resize(img, width, height, s.Interp)
}

// ValueMap holds, per grid cell, the ordered pre-normalization sample
// values, indexed [row][column][sample].
type ValueMap [][][]float64

// ColorMap holds the sampled source color per grid cell, indexed
// [row][column].
type ColorMap [][]RGBA

// Sample downsamples a decoded image into a per-cell value map and color
// map at the requested character grid resolution. The image is first scaled
// to gridWidth*samples x gridHeight*samples pixels, so each grid cell spans
// a samples x samples block of pixels. Per cell:
//
//   - the color map entry is the RGBA of the single pixel at the cell's
//     top-left sample position, not an average over the cell.
//
//   - the value map entry is one float per sample position, computed as
//     1 - ((r+g+b)/765 * a/255 + 1 - a/255): an inverted, alpha-weighted
//     mean luminance. Fully transparent pixels evaluate to 0 regardless of
//     their color channels, because the alpha term cancels the color
//     contribution; fully opaque pixels evaluate to 1 - (r+g+b)/765.
//
// Sample is a pure function over the decoded pixel data.
func Sample(img *imageutil.RGBAImage, scaler Scaler, gridWidth, gridHeight, samples int) (ValueMap, ColorMap, error) {
	if gridWidth < 1 || gridHeight < 1 {
		return nil, nil, fmt.Errorf("grid %dx%d has no cells", gridWidth, gridHeight)
	}
	if samples < MinSamples || samples > MaxSamples {
		return nil, nil, fmt.Errorf("sample count %d out of range [%d, %d]",
			samples, MinSamples, MaxSamples)
	}

	scaled := img
	pxWidth, pxHeight := gridWidth*samples, gridHeight*samples
	if scaled.Width() != pxWidth || scaled.Height() != pxHeight {
		scaled = scaler.Scale(img, pxWidth, pxHeight)
	}

	values := make(ValueMap, gridHeight)
	colors := make(ColorMap, gridHeight)
	for cy := 0; cy < gridHeight; cy++ {
		values[cy] = make([][]float64, gridWidth)
		colors[cy] = make([]RGBA, gridWidth)
		for cx := 0; cx < gridWidth; cx++ {
			px := scaled.RGBAAt(cx*samples, cy*samples)
			colors[cy][cx] = RGBA{R: px.R, G: px.G, B: px.B, A: px.A}

			cell := make([]float64, 0, samples*samples)
			for sy := 0; sy < samples; sy++ {
				for sx := 0; sx < samples; sx++ {
					p := scaled.RGBAAt(cx*samples+sx, cy*samples+sy)
					cell = append(cell, sampleValue(p.R, p.G, p.B, p.A))
				}
			}
			values[cy][cx] = cell
		}
	}
	return values, colors, nil
}

// sampleValue computes the inverted, alpha-weighted mean luminance of one
// pixel. Not equivalent to 1-luminance when alpha < 255.
func sampleValue(r, g, b, a uint8) float64 {
	lum := float64(int(r)+int(g)+int(b)) / 765.0
	alpha := float64(a) / 255.0
	return 1 - (lum*alpha + 1 - alpha)
}

// DeriveGridHeight derives the character grid height from the grid width
// and the source image aspect ratio: height = floor(width / aspect), with a
// floor of one row for extremely wide sources.
func DeriveGridHeight(gridWidth, srcWidth, srcHeight int) int {
	if srcWidth <= 0 || srcHeight <= 0 {
		return 1
	}
	aspect := float64(srcWidth) / float64(srcHeight)
	h := int(float64(gridWidth) / aspect)
	if h < 1 {
		h = 1
	}
	return h
}
