package asciify

import (
	"strings"
	"testing"
)

func TestRenderToANSI(t *testing.T) {
	red := RGBA{R: 255, A: 255}
	blue := RGBA{B: 255, A: 255}
	cells := []CellOutput{
		{Char: '#', Color: red},
		{Char: '#', Color: red},
		{Char: '.', Color: blue},
		{Char: '@', Color: blue},
	}

	got := RenderToANSI(cells, 2)
	want := ESC + "[38;2;255;0;0m##" + ESC + "[0m\n" +
		ESC + "[38;2;0;0;255m.@" + ESC + "[0m\n"
	if got != want {
		t.Errorf("RenderToANSI:\n got %q\nwant %q", got, want)
	}
}

func TestRenderToANSISharesEscapes(t *testing.T) {
	c := RGBA{R: 1, G: 2, B: 3, A: 255}
	cells := []CellOutput{
		{Char: 'a', Color: c},
		{Char: 'b', Color: c},
		{Char: 'c', Color: c},
	}
	got := RenderToANSI(cells, 3)
	if n := strings.Count(got, "[38;2;"); n != 1 {
		t.Errorf("Expected one shared color escape, got %d in %q", n, got)
	}
}

func TestRenderToANSIResetsPerLine(t *testing.T) {
	cells := make([]CellOutput, 6)
	for i := range cells {
		cells[i] = CellOutput{Char: 'x', Color: RGBA{R: uint8(i * 40), A: 255}}
	}
	got := RenderToANSI(cells, 3)
	if n := strings.Count(got, ESC+"[0m\n"); n != 2 {
		t.Errorf("Expected a reset on each of 2 lines, got %d in %q", n, got)
	}
}

func TestRenderToANSIEmpty(t *testing.T) {
	if got := RenderToANSI(nil, 10); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}

func TestRenderToText(t *testing.T) {
	cells := []CellOutput{
		{Char: '.', Color: White},
		{Char: '#', Color: White},
		{Char: ' ', Color: White},
		{Char: '@', Color: White},
	}
	if got := RenderToText(cells, 2); got != ".#\n @\n" {
		t.Errorf("RenderToText: got %q", got)
	}
	if got := RenderToText(nil, 2); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}
}
