package imageutil

import (
	"fmt"
	"strings"

	"github.com/disintegration/gift"
)

// Filter names accepted by Preprocess.
const (
	FilterGrayscale = "grayscale"
	FilterSepia     = "sepia"
	FilterBlur      = "blur"
	FilterSharpen   = "sharpen"
	FilterInvert    = "invert"
)

// Preprocess applies an ordered chain of named filters to an image before
// sampling. An empty chain returns the input unchanged. Unknown filter
// names are an error; the recognized names are grayscale, sepia, blur,
// sharpen, and invert.
func Preprocess(img *RGBAImage, filters []string) (*RGBAImage, error) {
	if len(filters) == 0 {
		return img, nil
	}

	g := gift.New()
	for _, name := range filters {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case FilterGrayscale:
			g.Add(gift.Grayscale())
		case FilterSepia:
			g.Add(gift.Sepia(100))
		case FilterBlur:
			g.Add(gift.GaussianBlur(1.5))
		case FilterSharpen:
			g.Add(gift.UnsharpMask(1.0, 1.0, 0))
		case FilterInvert:
			g.Add(gift.Invert())
		case "":
			continue
		default:
			return nil, fmt.Errorf("unknown filter %q", name)
		}
	}

	dst := NewRGBAImage(img.Width(), img.Height())
	g.Draw(dst.RGBA, img.RGBA)
	return dst, nil
}
