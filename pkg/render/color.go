package render

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// ParseColor converts a CSS color string into a color.Color.
func ParseColor(s string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "transparent":
		return color.Transparent, nil
	case strings.HasPrefix(v, "#"):
		if c, ok := parseHex(v); ok {
			return c, nil
		}
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		if c, ok := parseRGBFunc(v); ok {
			return c, nil
		}
	case strings.HasPrefix(v, "hsla(") || strings.HasPrefix(v, "hsl(") ||
		strings.HasPrefix(v, "hsva(") || strings.HasPrefix(v, "hsv("):
		if c, ok := parseHueFunc(v); ok {
			return c, nil
		}
	default:
		if c, ok := colornames.Map[v]; ok {
			return c, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidColor, "unrecognized color %q", s)
}

func parseHex(v string) (color.Color, bool) {
	alpha := uint8(255)
	switch len(v) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return nil, false
		}
		alpha = uint8(a)
		v = v[:7]
	default:
		return nil, false
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return nil, false
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, true
}

func parseRGBFunc(v string) (color.Color, bool) {
	parts, ok := funcArgs(v)
	if !ok {
		return nil, false
	}

	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		n, ok := parseChannel(parts[i], 255)
		if !ok {
			return nil, false
		}
		rgb[i] = uint8(math.Round(n))
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, ok := parseChannel(parts[3], 1)
		if !ok {
			return nil, false
		}
		alpha = uint8(math.Round(a * 255))
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, true
}

// parseHueFunc reads hsl(), hsla(), hsv() and hsva(). Saturation and
// lightness or value are percentages, fractions up to 1, or numbers out of 100.
func parseHueFunc(v string) (color.Color, bool) {
	parts, ok := funcArgs(v)
	if !ok {
		return nil, false
	}
	h, ok := parseHue(parts[0])
	if !ok {
		return nil, false
	}
	sat, ok := parseUnit(parts[1])
	if !ok {
		return nil, false
	}
	third, ok := parseUnit(parts[2])
	if !ok {
		return nil, false
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, ok := parseChannel(parts[3], 1)
		if !ok {
			return nil, false
		}
		alpha = uint8(math.Round(a * 255))
	}

	var c colorful.Color
	if strings.HasPrefix(v, "hsv") {
		c = colorful.Hsv(h, sat, third)
	} else {
		c = colorful.Hsl(h, sat, third)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, true
}

// funcArgs splits the comma separated arguments of a CSS color function.
func funcArgs(v string) ([]string, bool) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end != len(v)-1 {
		return nil, false
	}
	parts := strings.Split(v[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return nil, false
	}
	return parts, true
}

// parseHue reads an angle in degrees and wraps it into [0, 360).
func parseHue(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "deg")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	f = math.Mod(f, 360)
	if f < 0 {
		f += 360
	}
	return f, true
}

func parseUnit(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		return parseChannel(s, 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if f > 1 {
		f /= 100
	}
	return max(0, min(1, f)), true
}

// parseChannel reads a number or percentage and clamps it to [0, full].
func parseChannel(s string, full float64) (float64, bool) {
	s = strings.TrimSpace(s)
	pct := strings.HasSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	if pct {
		f = f / 100 * full
	}
	return max(0, min(full, f)), true
}

// ValidateColors checks that every color in fig can be parsed.
func ValidateColors(fig *timeline.Figure) error {
	for _, s := range fig.Segments {
		if _, err := ParseColor(s.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "series %q color", s.Series)
		}
	}
	for _, a := range fig.Annotations {
		if _, err := ParseColor(a.BGColor); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "series %q bgcolor", a.Series)
		}
		if _, err := ParseColor(a.Font.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "series %q font color", a.Series)
		}
	}
	return nil
}
