package render

import (
	"math"
	"time"

	"github.com/matzehuels/timeline/pkg/timeline"
)

// Chart geometry in logical pixels.
const (
	marginLeft   = 80.0
	marginRight  = 80.0
	marginTop    = 100.0
	marginBottom = 80.0

	titleFontSize     = 17.0
	axisTitleFontSize = 14.0
	tickFontSize      = 12.0
	legendFontSize    = 12.0

	tickLabelGap   = 8.0
	legendGap      = 20.0
	legendSwatch   = 30.0
	legendRow      = 20.0
	annotationPad  = 3.0
	minPlotSize    = 10.0
	xTickSpacing   = 90.0
	rangePadFactor = 0.03
)

// Chart colors.
const (
	paperColor = "#ffffff"
	plotColor  = "#e5ecf6"
	gridColor  = "#ffffff"
	textColor  = "#2a3f5f"
)

// emptyRange is the time axis of a figure with nothing to plot.
var emptyRange = [2]time.Time{
	time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC),
}

// MeasureFunc returns the width of text drawn at size, in logical pixels.
type MeasureFunc func(text string, size float64) float64

// Scene is a figure laid out in logical pixel coordinates, with the y axis
// pointing down.
type Scene struct {
	Width, Height float64
	Plot          Rect

	Title  Text
	XTitle Text
	YTitle Text // drawn rotated 90 degrees counter-clockwise

	XTicks []Tick
	YTicks []Tick

	Bars   []Bar
	Labels []Label
	Legend []LegendEntry
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Text is a single line of text. Anchor is "start", "middle" or "end".
type Text struct {
	X, Y   float64
	S      string
	Size   float64
	Anchor string
}

// Tick is a grid position along one axis with an optional label.
type Tick struct {
	Pos   float64
	Label string
}

// Bar is a horizontal stroke for one segment.
type Bar struct {
	X1, X2, Y float64
	Width     float64
	Color     string
	Series    string
	Tooltip   string
}

// Label is an annotation box. Box is the background, the text baseline
// starts at (TextX, TextY).
type Label struct {
	Box          Rect
	TextX, TextY float64
	S            string
	Size         float64
	Family       string
	Color        string
	BGColor      string
	Series       string
}

// LegendEntry is one legend row; (X, Y) is the left end of its swatch.
type LegendEntry struct {
	X, Y   float64
	Name   string
	Color  string
	Series string
}

// NewScene lays out fig on a width by height canvas.
func NewScene(fig *timeline.Figure, width, height float64, measure MeasureFunc) *Scene {
	l := fig.Layout
	sc := &Scene{Width: width, Height: height}

	left := marginLeft
	if l.ShowTickLabels {
		widest := 0.0
		for i := range l.TickVals {
			if label, ok := l.TickLabel(i); ok {
				widest = max(widest, measure(label, tickFontSize))
			}
		}
		left = max(left, widest+tickLabelGap+axisTitleFontSize*2.5)
	}

	right := marginRight
	legend := legendSeries(fig)
	if l.ShowLegend && len(legend) > 0 {
		widest := 0.0
		for _, e := range legend {
			widest = max(widest, measure(e.Name, legendFontSize))
		}
		right = max(right, legendGap+legendSwatch+tickLabelGap+widest+legendGap)
	}

	sc.Plot = Rect{
		X: left,
		Y: marginTop,
		W: max(minPlotSize, width-left-right),
		H: max(minPlotSize, height-marginTop-marginBottom),
	}
	p := sc.Plot

	sc.Title = Text{X: width * 0.05, Y: marginTop / 2, S: l.Title, Size: titleFontSize, Anchor: "start"}
	sc.XTitle = Text{X: p.X + p.W/2, Y: p.Y + p.H + marginBottom*0.6, S: l.XAxisTitle, Size: axisTitleFontSize, Anchor: "middle"}
	sc.YTitle = Text{X: axisTitleFontSize * 1.5, Y: p.Y + p.H/2, S: l.YAxisTitle, Size: axisTitleFontSize, Anchor: "middle"}

	xs := newTimeScale(fig, p)
	ys := newPositionScale(fig.Positions(), p)

	for _, t := range dateTicks(xs.lo, xs.hi, int(p.W/xTickSpacing)) {
		sc.XTicks = append(sc.XTicks, Tick{Pos: xs.px(t), Label: timeline.FormatDate(t)})
	}
	for i, v := range l.TickVals {
		tick := Tick{Pos: ys.px(float64(v))}
		if l.ShowTickLabels {
			tick.Label, _ = l.TickLabel(i)
		}
		sc.YTicks = append(sc.YTicks, tick)
	}

	for _, s := range fig.Segments {
		sc.Bars = append(sc.Bars, Bar{
			X1: xs.px(s.Start), X2: xs.px(s.End), Y: ys.px(float64(s.Y)),
			Width:   s.LineWidth,
			Color:   s.Color,
			Series:  s.Series,
			Tooltip: tooltip(s),
		})
	}

	for _, a := range fig.Annotations {
		size := a.Font.Size
		w := measure(a.Text, size) + 2*annotationPad
		h := size + 2*annotationPad
		x, y := xs.px(a.X), ys.px(float64(a.Y))
		if a.XAnchor == "right" {
			x -= w
		}
		sc.Labels = append(sc.Labels, Label{
			Box:   Rect{X: x, Y: y - h/2, W: w, H: h},
			TextX: x + annotationPad, TextY: y + size*0.35,
			S:       a.Text,
			Size:    size,
			Family:  a.Font.Family,
			Color:   a.Font.Color,
			BGColor: a.BGColor,
			Series:  a.Series,
		})
	}

	if l.ShowLegend {
		x := p.X + p.W + legendGap
		for i, e := range legend {
			e.X, e.Y = x, p.Y+legendRow*(float64(i)+0.5)
			sc.Legend = append(sc.Legend, e)
		}
	}
	return sc
}

// legendSeries lists each series once, in the order its first segment was
// drawn, with that segment's color.
func legendSeries(fig *timeline.Figure) []LegendEntry {
	seen := make(map[string]bool)
	var out []LegendEntry
	for _, s := range fig.Segments {
		if seen[s.Series] {
			continue
		}
		seen[s.Series] = true
		out = append(out, LegendEntry{Name: s.Series, Color: s.Color, Series: s.Series})
	}
	return out
}

func tooltip(s timeline.Segment) string {
	text := s.Series
	if s.Description != "" {
		text += ": " + s.Description
	}
	return text + "\n" + timeline.FormatDate(s.Start) + " to " + timeline.FormatDate(s.End)
}

type timeScale struct {
	lo, hi time.Time
	plot   Rect
}

func newTimeScale(fig *timeline.Figure, plot Rect) timeScale {
	lo, hi, ok := fig.TimeRange()
	switch {
	case !ok:
		lo, hi = emptyRange[0], emptyRange[1]
	case !hi.After(lo):
		lo, hi = lo.AddDate(0, 0, -1), hi.AddDate(0, 0, 1)
	default:
		pad := int64(math.Round(seconds(lo, hi) * rangePadFactor))
		lo, hi = addSeconds(lo, -pad), addSeconds(hi, pad)
	}
	return timeScale{lo: lo, hi: hi, plot: plot}
}

// px maps t to an x coordinate. Distances are measured in float seconds
// since a time.Duration only spans about 292 years.
func (s timeScale) px(t time.Time) float64 {
	frac := seconds(s.lo, t) / seconds(s.lo, s.hi)
	return s.plot.X + frac*s.plot.W
}

func seconds(from, to time.Time) float64 {
	return float64(to.Unix()-from.Unix()) + float64(to.Nanosecond()-from.Nanosecond())/1e9
}

func addSeconds(t time.Time, sec int64) time.Time {
	return time.Unix(t.Unix()+sec, int64(t.Nanosecond())).In(t.Location())
}

type positionScale struct {
	lo, hi float64
	plot   Rect
}

func newPositionScale(positions int, plot Rect) positionScale {
	if positions == 0 {
		return positionScale{lo: -1, hi: 1, plot: plot}
	}
	return positionScale{lo: -0.5, hi: float64(positions) - 0.5, plot: plot}
}

// px maps a position to a y coordinate; position 0 is at the bottom.
func (s positionScale) px(v float64) float64 {
	frac := (v - s.lo) / (s.hi - s.lo)
	return s.plot.Y + s.plot.H - frac*s.plot.H
}
