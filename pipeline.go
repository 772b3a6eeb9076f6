package asciify

import (
	"errors"
	"fmt"

	"github.com/asciify/asciify/imageutil"
)

// ErrStaleDecode reports a decode completion that arrived after a newer
// decode request; its result is discarded so a slow decode can never
// overwrite fresher state.
var ErrStaleDecode = errors.New("stale decode result discarded")

// PipelineState tracks the decode lifecycle of a pipeline.
type PipelineState int

const (
	// StateIdle means no image has been loaded yet.
	StateIdle PipelineState = iota

	// StateDecoding means a decode request is in flight.
	StateDecoding

	// StateReady means a Grid has been computed and frames can be
	// rendered.
	StateReady
)

// Cell is one grid position: the sampled source color and the
// pre-normalization sample values. Normalized values are derived per
// render pass and never stored on the cell.
type Cell struct {
	RawColor RGBA
	RawValue []float64
}

// Grid is the row-major character grid derived from one decoded image at
// one width/sample-count configuration. It is replaced wholesale on
// recomputation; no partial mutation is ever visible to a consumer.
type Grid struct {
	Width   int
	Height  int
	Samples int
	Values  ValueMap
	Colors  ColorMap
}

// Cell returns the cell at the given grid position.
func (g *Grid) Cell(x, y int) Cell {
	return Cell{RawColor: g.Colors[y][x], RawValue: g.Values[y][x]}
}

// ExportFrame is the fixed pixel-dimension contract for exported rasters.
// It is captured once per loaded image and held constant across subsequent
// parameter changes, so exported dimensions do not drift as the grid
// resolution or scale multiplier change later.
type ExportFrame struct {
	Width  int
	Height int
}

// CaptureExportFrame computes the export frame for a newly loaded image
// from its initial grid dimensions, the per-character pixel size, and the
// scale multiplier.
func CaptureExportFrame(gridWidth, gridHeight, charPixelSize int, scaleMultiplier float64) ExportFrame {
	return ExportFrame{
		Width:  int(float64(gridWidth*charPixelSize) * scaleMultiplier),
		Height: int(float64(gridHeight*charPixelSize) * scaleMultiplier),
	}
}

// CellSize returns the derived per-cell pixel dimensions for drawing a grid
// into this frame at the given scale multiplier.
func (f ExportFrame) CellSize(grid *Grid, scaleMultiplier float64) (w, h float64) {
	if grid == nil || grid.Width == 0 || grid.Height == 0 || scaleMultiplier == 0 {
		return 0, 0
	}
	w = float64(f.Width) / float64(grid.Width) / scaleMultiplier
	h = float64(f.Height) / float64(grid.Height) / scaleMultiplier
	return w, h
}

// Pipeline owns the Grid, value/color maps, and ExportFrame for one image
// conversion flow, and exposes the two recompute entry points: ComputeGrid
// for changes to {image, width, sample count} and RenderFrame for changes
// to {contrast, brightness, palette, ink, tint, alpha adjust}.
//
// A Pipeline is single-threaded. The GlyphSet and palette tables it
// consults are immutable and may be shared between pipelines; everything
// else is pipeline-local.
type Pipeline struct {
	glyphs *GlyphSet
	scaler Scaler

	charPixelSize   int
	scaleMultiplier float64

	state         PipelineState
	decodeSeq     uint64
	source        *imageutil.RGBAImage
	grid          *Grid
	frame         ExportFrame
	frameCaptured bool
}

// PipelineOption is a functional option for configuring a Pipeline.
type PipelineOption func(*Pipeline)

// NewPipeline creates a Pipeline that matches cells against the given glyph
// set. Default values: CatmullRom scaling, per-character pixel size equal
// to the glyph raster cell, scale multiplier 1.
func NewPipeline(glyphs *GlyphSet, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		glyphs:          glyphs,
		scaler:          DrawScaler{Interp: imageutil.InterpolationArea},
		charPixelSize:   GlyphCell,
		scaleMultiplier: 1,
		state:           StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithScaler sets the decoded-image scaler.
func WithScaler(s Scaler) PipelineOption {
	return func(p *Pipeline) {
		p.scaler = s
	}
}

// WithCharPixelSize sets the per-character pixel size used when capturing
// the export frame.
func WithCharPixelSize(px int) PipelineOption {
	return func(p *Pipeline) {
		p.charPixelSize = px
	}
}

// WithScaleMultiplier sets the export scale multiplier.
func WithScaleMultiplier(m float64) PipelineOption {
	return func(p *Pipeline) {
		p.scaleMultiplier = m
	}
}

// State returns the current lifecycle state.
func (p *Pipeline) State() PipelineState {
	return p.state
}

// Grid returns the current grid, or nil before the first successful decode.
func (p *Pipeline) Grid() *Grid {
	return p.grid
}

// Frame returns the captured export frame; the boolean result is false
// before the first successful decode.
func (p *Pipeline) Frame() (ExportFrame, bool) {
	return p.frame, p.frameCaptured
}

// ScaleMultiplier returns the configured export scale multiplier.
func (p *Pipeline) ScaleMultiplier() float64 {
	return p.scaleMultiplier
}

// BeginDecode registers a new decode request and returns its sequence
// number. Decode requests are tagged with monotonically increasing
// sequence numbers; only the completion matching the latest request is
// accepted, which makes a stale decode racing a newer one harmless.
func (p *Pipeline) BeginDecode() uint64 {
	p.decodeSeq++
	p.state = StateDecoding
	return p.decodeSeq
}

// CompleteDecode delivers the result of the decode request with the given
// sequence number and, on acceptance, computes the grid at the requested
// width and sample count and captures a fresh export frame for the image.
//
// A completion whose sequence number is not the latest requested is
// discarded with ErrStaleDecode. A failed decode (nil image) leaves the
// prior grid, frame, and state untouched apart from exiting the Decoding
// state. No partially computed grid is ever observable.
func (p *Pipeline) CompleteDecode(seq uint64, img *imageutil.RGBAImage, widthChars, samples int) (*Grid, error) {
	if seq != p.decodeSeq {
		return nil, ErrStaleDecode
	}

	restore := func() {
		if p.grid != nil {
			p.state = StateReady
		} else {
			p.state = StateIdle
		}
	}

	if img == nil {
		restore()
		return nil, fmt.Errorf("image decode failed")
	}

	p.source = img
	p.frameCaptured = false
	grid, err := p.ComputeGrid(widthChars, samples)
	if err != nil {
		p.source = nil
		restore()
		return nil, err
	}
	return grid, nil
}

// ComputeGrid recomputes the grid from the currently loaded image at the
// given character width and per-character sample count. It is the entry
// point for width and sample-count changes; tone, palette, ink, tint, and
// alpha parameters never pass through here. The export frame is captured
// only on the first grid computed for a loaded image and is retained
// across subsequent calls, so the exported raster dimensions stay fixed
// while the grid resolution changes.
func (p *Pipeline) ComputeGrid(widthChars, samples int) (*Grid, error) {
	if p.source == nil {
		return nil, fmt.Errorf("no image loaded")
	}
	if widthChars < MinGridWidth || widthChars > MaxGridWidth {
		return nil, fmt.Errorf("width %d chars out of range [%d, %d]",
			widthChars, MinGridWidth, MaxGridWidth)
	}
	if samples != p.glyphs.Samples() {
		return nil, fmt.Errorf("sample count %d does not match glyph set (%d)",
			samples, p.glyphs.Samples())
	}

	height := DeriveGridHeight(widthChars, p.source.Width(), p.source.Height())
	values, colors, err := Sample(p.source, p.scaler, widthChars, height, samples)
	if err != nil {
		return nil, err
	}

	p.grid = &Grid{
		Width:   widthChars,
		Height:  height,
		Samples: samples,
		Values:  values,
		Colors:  colors,
	}
	if !p.frameCaptured {
		p.frame = CaptureExportFrame(widthChars, height, p.charPixelSize, p.scaleMultiplier)
		p.frameCaptured = true
	}
	p.state = StateReady
	return p.grid, nil
}

// RenderFrame renders the current grid into a row-major (character, color)
// cell sequence under the given parameters. It is the entry point for
// tone, palette, ink, tint, and alpha changes and never touches the grid
// or the export frame.
func (p *Pipeline) RenderFrame(params RenderParams) ([]CellOutput, error) {
	if p.grid == nil {
		return nil, fmt.Errorf("no grid computed")
	}
	return RenderCells(p.glyphs, p.grid.Values, p.grid.Colors, params), nil
}
