package timeline

import "time"

// Annotation styling shared by every label.
const (
	AnnotationFontFamily = "Arial"
	AnnotationFontSize   = 12.0
	AnnotationFontColor  = "black"

	// lineWidthFactor scales interval width to stroke width in pixels.
	lineWidthFactor = 20.0
)

// Axis settings of the time axis.
const (
	XAxisTypeDate   = "date"
	XAxisTickFormat = "%Y-%m-%d"
)

// Figure is a renderer-independent timeline chart.
type Figure struct {
	Segments    []Segment
	Annotations []Annotation
	Layout      FigureLayout
}

// Segment is one horizontal bar, drawn from (Start, Y) to (End, Y).
type Segment struct {
	// Series is also the legend label.
	Series      string
	Description string
	Start       time.Time
	End         time.Time
	Y           int
	LineWidth   float64
	Color       string
}

// Annotation is a text label anchored at a data coordinate.
type Annotation struct {
	Series    string
	Text      string
	X         time.Time
	Y         int
	BGColor   string
	Align     string
	XAnchor   string
	ShowArrow bool
	Font      Font
}

// Font describes annotation text.
type Font struct {
	Family string
	Size   float64
	Color  string
}

// FigureLayout holds titles and axis configuration.
type FigureLayout struct {
	Title      string
	XAxisTitle string
	YAxisTitle string

	XAxisType   string
	XTickFormat string

	// TickVals has one entry per plotted series; TickText lists every
	// series name. The two are paired by index.
	TickVals       []int
	TickText       []string
	ShowTickLabels bool
	ShowLegend     bool
}

// TickLabel returns the label paired with the i-th tick, if any.
func (l FigureLayout) TickLabel(i int) (string, bool) {
	if i < 0 || i >= len(l.TickVals) || i >= len(l.TickText) {
		return "", false
	}
	return l.TickText[i], true
}

// Positions returns the number of vertical positions in use.
func (f *Figure) Positions() int {
	return len(f.Layout.TickVals)
}

// TimeRange returns the earliest and latest instants covered by segments and
// annotations. ok is false for an empty figure.
func (f *Figure) TimeRange() (lo, hi time.Time, ok bool) {
	visit := func(t time.Time) {
		if !ok {
			lo, hi, ok = t, t, true
			return
		}
		if t.Before(lo) {
			lo = t
		}
		if t.After(hi) {
			hi = t
		}
	}
	for _, s := range f.Segments {
		visit(s.Start)
		visit(s.End)
	}
	for _, a := range f.Annotations {
		visit(a.X)
	}
	return lo, hi, ok
}
