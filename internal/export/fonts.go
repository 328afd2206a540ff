package export

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type fontSet struct {
	title   font.Face
	heading font.Face
	body    font.Face
	strong  font.Face
	total   font.Face
}

var parsedFonts = sync.OnceValues(func() ([2]*truetype.Font, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return [2]*truetype.Font{}, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return [2]*truetype.Font{}, fmt.Errorf("failed to parse bold font: %w", err)
	}
	return [2]*truetype.Font{regular, bold}, nil
})

// loadFonts returns the faces used on the page, sized for scale
func loadFonts(scale float64) (*fontSet, error) {
	fonts, err := parsedFonts()
	if err != nil {
		return nil, err
	}
	regular, bold := fonts[0], fonts[1]

	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{
			Size:    size * scale,
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}

	return &fontSet{
		title:   face(bold, 30),
		heading: face(bold, 18),
		body:    face(regular, 14),
		strong:  face(bold, 14),
		total:   face(bold, 24),
	}, nil
}

func ascent(f font.Face) float64 {
	return float64(f.Metrics().Ascent) / 64
}

func lineHeight(f font.Face) float64 {
	return float64(f.Metrics().Height) / 64 * 1.3
}
