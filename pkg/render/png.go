package render

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/fonts"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// RenderPNG rasterizes fig. The canvas is width*scale by height*scale
// pixels; the layout is computed at the logical size.
func RenderPNG(fig *timeline.Figure, opts ...Option) ([]byte, error) {
	c := newConfig(opts...)
	if err := errors.ValidateImageSize(int(c.width), int(c.height), c.scale); err != nil {
		return nil, err
	}
	if err := ValidateColors(fig); err != nil {
		return nil, err
	}

	p := newPainter(c)
	sc := NewScene(fig, c.width, c.height, p.measure)
	if err := p.paint(sc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return buf.Bytes(), nil
}

type painter struct {
	dc    *gg.Context
	scale float64
	faces map[float64]font.Face
}

func newPainter(c config) *painter {
	w := int(math.Ceil(c.width * c.scale))
	h := int(math.Ceil(c.height * c.scale))
	dc := gg.NewContext(w, h)
	dc.SetLineCapButt()
	return &painter{dc: dc, scale: c.scale, faces: make(map[float64]font.Face)}
}

// face returns a Go font face for a logical size, falling back to the
// fixed bitmap face if the embedded font cannot be parsed.
func (p *painter) face(size float64) font.Face {
	if f, ok := p.faces[size]; ok {
		return f
	}
	f, err := fonts.Face(size*p.scale, fonts.Regular)
	if err != nil {
		f = basicfont.Face7x13
	}
	p.faces[size] = f
	return f
}

func (p *painter) measure(s string, size float64) float64 {
	p.dc.SetFontFace(p.face(size))
	w, _ := p.dc.MeasureString(s)
	return w / p.scale
}

func (p *painter) paint(sc *Scene) error {
	dc, k := p.dc, p.scale

	if err := p.fill(paperColor); err != nil {
		return err
	}
	dc.Clear()

	pl := sc.Plot
	if err := p.fill(plotColor); err != nil {
		return err
	}
	dc.DrawRectangle(pl.X*k, pl.Y*k, pl.W*k, pl.H*k)
	dc.Fill()

	if err := p.fill(gridColor); err != nil {
		return err
	}
	dc.SetLineWidth(k)
	for _, t := range sc.XTicks {
		dc.DrawLine(t.Pos*k, pl.Y*k, t.Pos*k, (pl.Y+pl.H)*k)
		dc.Stroke()
	}
	for _, t := range sc.YTicks {
		dc.DrawLine(pl.X*k, t.Pos*k, (pl.X+pl.W)*k, t.Pos*k)
		dc.Stroke()
	}

	dc.DrawRectangle(pl.X*k, pl.Y*k, pl.W*k, pl.H*k)
	dc.Clip()
	for _, b := range sc.Bars {
		if err := p.fill(b.Color); err != nil {
			return err
		}
		dc.SetLineWidth(b.Width * k)
		dc.DrawLine(b.X1*k, b.Y*k, b.X2*k, b.Y*k)
		dc.Stroke()
	}
	dc.ResetClip()

	for _, l := range sc.Labels {
		if err := p.fill(l.BGColor); err != nil {
			return err
		}
		dc.DrawRectangle(l.Box.X*k, l.Box.Y*k, l.Box.W*k, l.Box.H*k)
		dc.Fill()
		if err := p.fill(l.Color); err != nil {
			return err
		}
		dc.SetFontFace(p.face(l.Size))
		dc.DrawString(l.S, l.TextX*k, l.TextY*k)
	}

	if err := p.fill(textColor); err != nil {
		return err
	}
	for _, t := range sc.XTicks {
		p.text(Text{X: t.Pos, Y: pl.Y + pl.H + tickLabelGap + tickFontSize, S: t.Label, Size: tickFontSize, Anchor: "middle"})
	}
	for _, t := range sc.YTicks {
		p.text(Text{X: pl.X - tickLabelGap, Y: t.Pos + tickFontSize*0.35, S: t.Label, Size: tickFontSize, Anchor: "end"})
	}
	p.text(sc.Title)
	p.text(sc.XTitle)

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), sc.YTitle.X*k, sc.YTitle.Y*k)
	p.text(sc.YTitle)
	dc.Pop()

	for _, e := range sc.Legend {
		if err := p.fill(e.Color); err != nil {
			return err
		}
		dc.SetLineWidth(4 * k)
		dc.DrawLine(e.X*k, e.Y*k, (e.X+legendSwatch)*k, e.Y*k)
		dc.Stroke()
		if err := p.fill(textColor); err != nil {
			return err
		}
		p.text(Text{X: e.X + legendSwatch + tickLabelGap, Y: e.Y + legendFontSize*0.35, S: e.Name, Size: legendFontSize, Anchor: "start"})
	}
	return nil
}

// fill sets the current drawing color from a CSS color string.
func (p *painter) fill(css string) error {
	c, err := ParseColor(css)
	if err != nil {
		return err
	}
	p.dc.SetColor(c)
	return nil
}

// text draws t with its baseline at t.Y.
func (p *painter) text(t Text) {
	if t.S == "" {
		return
	}
	p.dc.SetFontFace(p.face(t.Size))
	ax := 0.0
	switch t.Anchor {
	case "middle":
		ax = 0.5
	case "end":
		ax = 1
	}
	p.dc.DrawStringAnchored(t.S, t.X*p.scale, t.Y*p.scale, ax, 0)
}
