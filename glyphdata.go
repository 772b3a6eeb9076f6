package asciify

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"
)

// CoverageData is the serialized form of a glyph set's raw coverage
// vectors: the character sequence in order, the per-axis sample count, and
// the pre-normalization coverage values. Storing raw values keeps the file
// independent of the normalization pass, which is re-applied on load.
type CoverageData struct {
	FontName   string
	Samples    int
	Characters []rune
	Coverage   [][]float64
}

// ComputeCoverageData rasterizes the character sequence with the given
// renderer and packages the raw coverage vectors for serialization.
func ComputeCoverageData(tr TextRenderer, fontName string, characters []rune, samples int) (*CoverageData, error) {
	if samples < MinSamples || samples > MaxSamples {
		return nil, fmt.Errorf("sample count %d out of range [%d, %d]",
			samples, MinSamples, MaxSamples)
	}
	data := &CoverageData{
		FontName:   fontName,
		Samples:    samples,
		Characters: characters,
		Coverage:   make([][]float64, len(characters)),
	}
	rendered := 0
	for i, r := range characters {
		g := RasterizeGlyph(tr, r, samples)
		data.Coverage[i] = g.Coverage
		if len(g.Coverage) > 0 {
			rendered++
		}
	}
	if rendered == 0 {
		return nil, fmt.Errorf("no glyph in %q produced coverage data", string(characters))
	}
	return data, nil
}

// GlyphSet rebuilds a normalized GlyphSet from the stored coverage vectors.
func (d *CoverageData) GlyphSet() (*GlyphSet, error) {
	glyphs := make([]Glyph, len(d.Characters))
	for i, r := range d.Characters {
		glyphs[i] = Glyph{Char: r, Coverage: append([]float64(nil), d.Coverage[i]...)}
	}
	return NewGlyphSetFromGlyphs(glyphs, d.Samples)
}

// WriteCoverageFile writes coverage data to a gob-encoded, gzip-compressed
// file.
func WriteCoverageFile(path string, data *CoverageData) error {
	raw, err := EncodeCoverageData(data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write coverage file: %w", err)
	}
	return nil
}

// ReadCoverageFile reads coverage data from a gob-encoded, gzip-compressed
// file.
func ReadCoverageFile(path string) (*CoverageData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage file: %w", err)
	}
	return DecodeCoverageData(raw)
}

// DecodeCoverageData decodes coverage data from gzip-compressed gob bytes.
func DecodeCoverageData(raw []byte) (*CoverageData, error) {
	gr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	var data CoverageData
	if err := gob.NewDecoder(gr).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode coverage data: %w", err)
	}
	return &data, nil
}

// EncodeCoverageData encodes coverage data to gzip-compressed gob bytes.
func EncodeCoverageData(data *CoverageData) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gw).Encode(data); err != nil {
		return nil, fmt.Errorf("failed to encode coverage data: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress coverage data: %w", err)
	}
	return buf.Bytes(), nil
}
