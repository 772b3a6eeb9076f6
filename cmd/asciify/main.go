package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/asciify/asciify"
	"github.com/asciify/asciify/imageutil"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output; .png exports a raster, anything else "+
			"writes ANSI text (default: timestamped PNG next to the input "+
			"when -export is set, otherwise ANSI to stdout)")
	export := flag.Bool("export", false,
		"Export a PNG with the conventional timestamped filename")
	width := flag.Int("width", 100,
		"Output width in characters (50-300)")
	samples := flag.Int("samples", 2,
		"Coverage samples per axis per character (1-3)")
	charset := flag.String("charset", asciify.DefaultCharset,
		"Candidate characters ordered light to dark")
	paletteName := flag.String("palette", "color-full",
		"Palette: monochrome, grey-2bit, grey-4bit, grey-8bit, "+
			"color-3bit, color-4bit, color-full")
	inkColor := flag.String("ink", "#000000",
		"Ink color as hex (monochrome render color and tint target)")
	contrast := flag.Float64("contrast", 0,
		"Contrast adjustment (-1 to 1)")
	brightness := flag.Float64("brightness", 0,
		"Brightness adjustment (-1 to 1)")
	tint := flag.Float64("tint", 1,
		"Tint blend toward the ink color (1 = no tint)")
	alphaAdjust := flag.Float64("alphaadjust", 0,
		"Alpha adjustment added to source alpha (-1 to 1)")
	fontPath := flag.String("font", "",
		"Path to a monospace TTF font (required for PNG export)")
	coverageFile := flag.String("coverage", "",
		"Precomputed coverage data file (alternative to -font)")
	scaleMult := flag.Float64("scale", 1.0,
		"Export scale multiplier")
	filters := flag.String("filter", "",
		"Comma-separated preprocess filters: grayscale, sepia, blur, "+
			"sharpen, invert")
	plain := flag.Bool("plain", false,
		"Emit plain text without ANSI color codes")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	palette, ok := asciify.ParsePaletteKind(*paletteName)
	if !ok {
		log.Fatalf("Unknown palette %q", *paletteName)
	}

	glyphs, renderer, err := buildGlyphSet(*coverageFile, *fontPath, *charset, *samples)
	if err != nil {
		log.Fatalf("Glyph set: %v", err)
	}

	img, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		log.Fatalf("Load image: %v", err)
	}
	log.WithField("input", *inputFile).
		Infof("Decoded %dx%d source", img.Width(), img.Height())

	if *filters != "" {
		img, err = imageutil.Preprocess(img, strings.Split(*filters, ","))
		if err != nil {
			log.Fatalf("Preprocess: %v", err)
		}
	}

	pipeline := asciify.NewPipeline(glyphs,
		asciify.WithScaleMultiplier(*scaleMult))
	seq := pipeline.BeginDecode()
	grid, err := pipeline.CompleteDecode(seq, img, *width, *samples)
	if err != nil {
		log.Fatalf("Compute grid: %v", err)
	}
	log.Infof("Grid %dx%d characters", grid.Width, grid.Height)

	params := asciify.RenderParams{
		Contrast:    *contrast,
		Brightness:  *brightness,
		Palette:     palette,
		Ink:         asciify.ParseHexColor(*inkColor),
		Tint:        *tint,
		AlphaAdjust: *alphaAdjust,
	}
	cells, err := pipeline.RenderFrame(params)
	if err != nil {
		log.Fatalf("Render frame: %v", err)
	}

	target := *outputFile
	if target == "" && *export {
		target = asciify.ExportFilename(time.Now())
	}

	switch {
	case target != "" && strings.HasSuffix(strings.ToLower(target), ".png"):
		if renderer == nil {
			log.Fatal("PNG export needs a font; pass -font")
		}
		frame, _ := pipeline.Frame()
		out, err := asciify.NewExporter(renderer).RenderImage(cells, grid, frame)
		if err != nil {
			log.Fatalf("Export: %v", err)
		}
		if err := imageutil.SavePNG(out, target); err != nil {
			log.Fatalf("Save PNG: %v", err)
		}
		log.WithField("output", target).
			Infof("Exported %dx%d raster", frame.Width, frame.Height)
	case target != "":
		text := renderText(cells, grid.Width, *plain)
		if err := os.WriteFile(target, []byte(text), 0644); err != nil {
			log.Fatalf("Write output: %v", err)
		}
		log.WithField("output", target).Info("Output written")
	default:
		fmt.Print(renderText(cells, grid.Width, *plain))
	}
}

// buildGlyphSet builds the glyph set from a coverage data file when one is
// given, otherwise by rasterizing the charset from a TTF font. The
// returned renderer is nil in the coverage-file case unless a font was
// also supplied.
func buildGlyphSet(coveragePath, fontPath, charset string, samples int) (*asciify.GlyphSet, asciify.TextRenderer, error) {
	var renderer asciify.TextRenderer
	if fontPath != "" {
		fr, err := asciify.LoadFreetypeRenderer(fontPath)
		if err != nil {
			return nil, nil, err
		}
		renderer = fr
	}

	if coveragePath != "" {
		data, err := asciify.ReadCoverageFile(coveragePath)
		if err != nil {
			return nil, nil, err
		}
		glyphs, err := data.GlyphSet()
		if err != nil {
			return nil, nil, err
		}
		if glyphs.Samples() != samples {
			return nil, nil, fmt.Errorf(
				"coverage file has %d samples per axis, requested %d",
				glyphs.Samples(), samples)
		}
		return glyphs, renderer, nil
	}

	if renderer == nil {
		return nil, nil, fmt.Errorf("pass -font or -coverage")
	}
	glyphs, err := asciify.BuildGlyphSet(renderer, []rune(charset), samples)
	if err != nil {
		return nil, nil, err
	}
	return glyphs, renderer, nil
}

func renderText(cells []asciify.CellOutput, gridWidth int, plain bool) string {
	if plain {
		return asciify.RenderToText(cells, gridWidth)
	}
	return asciify.RenderToANSI(cells, gridWidth)
}
