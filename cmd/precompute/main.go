// Command precompute rasterizes a character set with a TTF font and writes
// the coverage vectors to a compressed data file, so batch hosts can build
// glyph sets without parsing fonts at runtime.
package main

import (
	"flag"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/asciify/asciify"
)

func main() {
	fontPath := flag.String("font", "",
		"Path to a monospace TTF font (required)")
	outputFile := flag.String("output", "",
		"Output coverage file (default: <font>.coverage)")
	charset := flag.String("charset", asciify.DefaultCharset,
		"Candidate characters ordered light to dark")
	samples := flag.Int("samples", 2,
		"Coverage samples per axis per character (1-3)")
	flag.Parse()

	if *fontPath == "" {
		log.Fatal("Please provide the font using the -font flag")
	}

	out := *outputFile
	if out == "" {
		base := strings.TrimSuffix(*fontPath, filepath.Ext(*fontPath))
		out = base + ".coverage"
	}

	renderer, err := asciify.LoadFreetypeRenderer(*fontPath)
	if err != nil {
		log.Fatalf("Load font: %v", err)
	}

	name := strings.TrimSuffix(filepath.Base(*fontPath), filepath.Ext(*fontPath))
	data, err := asciify.ComputeCoverageData(renderer, name, []rune(*charset), *samples)
	if err != nil {
		log.Fatalf("Compute coverage: %v", err)
	}

	if err := asciify.WriteCoverageFile(out, data); err != nil {
		log.Fatalf("Write coverage: %v", err)
	}
	log.WithField("output", out).
		Infof("Wrote coverage for %d characters at %d samples per axis",
			len(data.Characters), data.Samples)
}
