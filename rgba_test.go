package asciify

import "testing"

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want RGBA
	}{
		{"#ff0000", RGBA{R: 255, A: 255}},
		{"00ff00", RGBA{G: 255, A: 255}},
		{"#336699", RGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}},
		{"#f80", RGBA{R: 0xff, G: 0x88, B: 0x00, A: 255}},
		{"#11223344", RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{"  #FFFFFF ", RGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, c := range cases {
		if got := ParseHexColor(c.in); got != c.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseHexColorFallsBackToBlack(t *testing.T) {
	// Malformed colors fall back to opaque black rather than failing.
	for _, in := range []string{"", "#", "red", "#12345", "#xyzxyz", "#ff00", "ббфф00"} {
		if got := ParseHexColor(in); got != Black {
			t.Errorf("ParseHexColor(%q) = %v, want black fallback", in, got)
		}
	}
}

func TestManhattanDistance(t *testing.T) {
	a := RGBA{R: 10, G: 250, B: 100, A: 255}
	b := RGBA{R: 20, G: 240, B: 100, A: 0}
	if got := a.manhattanDistance(b); got != 20 {
		t.Errorf("Expected distance 20 (alpha ignored), got %d", got)
	}
	if got := a.manhattanDistance(a); got != 0 {
		t.Errorf("Expected distance 0, got %d", got)
	}
}
