// Command asciiview is an interactive terminal previewer. Parameter keys
// re-render the current grid in place; width keys recompute the grid from
// the loaded image. The export frame is captured at load time and is
// unaffected by either.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/asciify/asciify"
	"github.com/asciify/asciify/imageutil"
)

type viewer struct {
	screen   tcell.Screen
	pipeline *asciify.Pipeline
	params   asciify.RenderParams
	palette  int
	width    int
	samples  int
}

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	fontPath := flag.String("font", "",
		"Path to a monospace TTF font (required)")
	width := flag.Int("width", 100,
		"Initial output width in characters (50-300)")
	samples := flag.Int("samples", 2,
		"Coverage samples per axis per character (1-3)")
	charset := flag.String("charset", asciify.DefaultCharset,
		"Candidate characters ordered light to dark")
	flag.Parse()

	if *inputFile == "" || *fontPath == "" {
		fmt.Println("Usage: asciiview -input image.png -font font.ttf")
		flag.PrintDefaults()
		os.Exit(1)
	}

	renderer, err := asciify.LoadFreetypeRenderer(*fontPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load font: %v\n", err)
		os.Exit(1)
	}
	glyphs, err := asciify.BuildGlyphSet(renderer, []rune(*charset), *samples)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build glyph set: %v\n", err)
		os.Exit(1)
	}
	img, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load image: %v\n", err)
		os.Exit(1)
	}

	pipeline := asciify.NewPipeline(glyphs)
	seq := pipeline.BeginDecode()
	if _, err := pipeline.CompleteDecode(seq, img, *width, *samples); err != nil {
		fmt.Fprintf(os.Stderr, "compute grid: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	params := asciify.DefaultRenderParams()
	params.Palette = asciify.ColorFull
	params.Ink = asciify.White

	v := &viewer{
		screen:   screen,
		pipeline: pipeline,
		params:   params,
		palette:  paletteIndex(params.Palette),
		width:    *width,
		samples:  *samples,
	}
	v.run()
}

func paletteIndex(k asciify.PaletteKind) int {
	for i, pk := range asciify.PaletteKinds {
		if pk == k {
			return i
		}
	}
	return 0
}

func (v *viewer) run() {
	v.draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
			v.draw()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
			v.draw()
		}
	}
}

// handleKey applies one key press; it returns false when the viewer should
// exit. Every parameter key funnels into RenderFrame via draw; only the
// width keys recompute the grid.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		return false
	}
	switch ev.Rune() {
	case 'q':
		return false
	case 'c':
		v.params.Contrast = clamp(v.params.Contrast-0.05, -1, 1)
	case 'C':
		v.params.Contrast = clamp(v.params.Contrast+0.05, -1, 1)
	case 'b':
		v.params.Brightness = clamp(v.params.Brightness-0.05, -1, 1)
	case 'B':
		v.params.Brightness = clamp(v.params.Brightness+0.05, -1, 1)
	case 't':
		v.params.Tint -= 0.1
	case 'T':
		v.params.Tint += 0.1
	case 'a':
		v.params.AlphaAdjust = clamp(v.params.AlphaAdjust-0.1, -1, 1)
	case 'A':
		v.params.AlphaAdjust = clamp(v.params.AlphaAdjust+0.1, -1, 1)
	case 'p':
		v.palette = (v.palette + 1) % len(asciify.PaletteKinds)
		v.params.Palette = asciify.PaletteKinds[v.palette]
	case 'w':
		v.setWidth(v.width - 10)
	case 'W':
		v.setWidth(v.width + 10)
	case 'r':
		v.params = asciify.DefaultRenderParams()
		v.params.Palette = asciify.ColorFull
		v.params.Ink = asciify.White
		v.palette = paletteIndex(v.params.Palette)
	}
	return true
}

func (v *viewer) setWidth(w int) {
	if w < asciify.MinGridWidth || w > asciify.MaxGridWidth {
		return
	}
	if _, err := v.pipeline.ComputeGrid(w, v.samples); err == nil {
		v.width = w
	}
}

func (v *viewer) draw() {
	v.screen.Clear()

	grid := v.pipeline.Grid()
	cells, err := v.pipeline.RenderFrame(v.params)
	if err != nil {
		v.screen.Show()
		return
	}

	sw, sh := v.screen.Size()
	for i, cell := range cells {
		x, y := i%grid.Width, i/grid.Width
		if x >= sw || y >= sh-1 {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
			int32(cell.Color.R), int32(cell.Color.G), int32(cell.Color.B)))
		v.screen.SetContent(x, y, cell.Char, nil, style)
	}

	frame, _ := v.pipeline.Frame()
	status := fmt.Sprintf(
		"[%s] w:%d contrast:%+.2f brightness:%+.2f tint:%.1f alpha:%+.1f export:%dx%d  (q quit, p palette, c/C b/B t/T a/A w/W, r reset)",
		v.params.Palette, v.width, v.params.Contrast, v.params.Brightness,
		v.params.Tint, v.params.AlphaAdjust, frame.Width, frame.Height)
	statusStyle := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		if i >= sw {
			break
		}
		v.screen.SetContent(i, sh-1, r, nil, statusStyle)
	}
	v.screen.Show()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
