// Package fonts provides font faces for raster rendering.
//
// The Go fonts are compiled into golang.org/x/image, so text renders the
// same on every machine without looking up system fonts.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family used in vector output. Raster output
// substitutes the Go fonts for it.
const FontFamily = `Arial, "Open Sans", verdana, sans-serif`

// Weight selects a typeface.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Parsed fonts (computed once on first access).
var (
	parsed     [2]*truetype.Font
	parseErr   error
	parsedOnce sync.Once
)

func load() error {
	parsedOnce.Do(func() {
		for w, data := range [][]byte{goregular.TTF, gobold.TTF} {
			f, err := truetype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse embedded font: %w", err)
				return
			}
			parsed[w] = f
		}
	})
	return parseErr
}

// Face returns a font face of the given pixel size. Faces are not safe for
// concurrent use; callers create one per drawing.
func Face(size float64, w Weight) (font.Face, error) {
	if err := load(); err != nil {
		return nil, err
	}
	if w != Bold {
		w = Regular
	}
	return truetype.NewFace(parsed[w], &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// charWidth is the average advance of a sans-serif glyph relative to the
// font size.
const charWidth = 0.55

// EstimateWidth approximates the rendered width of s without loading a
// font, for vector output where the viewer picks the face.
func EstimateWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * charWidth
}
