package timeline

import "time"

// Default values for optional document keys.
const (
	DefaultTitle      = "Timeline"
	DefaultXAxisTitle = "Time"
	DefaultYAxisTitle = "Series"

	DefaultImagePath   = "timeline.png"
	DefaultImageWidth  = 1200
	DefaultImageHeight = 600
	DefaultImageScale  = 1.0

	DefaultBGColor       = "rgba(255, 255, 255, 0.7)"
	DefaultIntervalWidth = 1.0

	// NowToken is the end value that resolves to Settings.Now.
	NowToken = "now"
)

// Document is a parsed timeline description with defaults applied.
type Document struct {
	Settings Settings
	Layout   LayoutSettings
	Data     []Series
	OutImg   ImageSettings

	// OutHTMLPath is only meaningful when HasOutHTMLPath is true.
	OutHTMLPath    string
	HasOutHTMLPath bool
}

// Settings holds document-wide settings.
type Settings struct {
	// Now replaces every interval end written as "now".
	Now time.Time
}

// LayoutSettings controls chart titles and axis decoration.
type LayoutSettings struct {
	Title               string
	XAxisTitle          string
	YAxisTitle          string
	YAxisShowTickLabels bool
	ShowLegend          bool
}

// ImageSettings controls the static image output.
type ImageSettings struct {
	Path   string
	Width  int
	Height int
	Scale  float64
}

// Series is one named track. Series keep the order they were declared in.
type Series struct {
	Name      string
	Intervals []Interval

	// NullIntervals reports that intervals was given as an explicit null.
	// Such a series is skipped entirely, including its vertical position.
	NullIntervals bool

	// Color is empty when the series should take a palette color.
	Color   string
	BGColor string
}

// Interval is one date span of a series as written in the document.
// Dates stay unparsed until [Build] so that an interval missing one of its
// bounds can be reported instead of failing the whole document.
type Interval struct {
	Start    string
	End      string
	HasStart bool
	HasEnd   bool

	Description string
	Width       float64

	// Raw is the interval as it appeared in the document, for diagnostics.
	Raw string
}

// IsOpenEnded reports whether the interval ends at Settings.Now.
func (iv Interval) IsOpenEnded() bool {
	return iv.End == NowToken
}

// DefaultLayout returns the layout used when the document has none.
func DefaultLayout() LayoutSettings {
	return LayoutSettings{
		Title:               DefaultTitle,
		XAxisTitle:          DefaultXAxisTitle,
		YAxisTitle:          DefaultYAxisTitle,
		YAxisShowTickLabels: true,
		ShowLegend:          true,
	}
}

// DefaultImage returns the image settings used when the document has none.
func DefaultImage() ImageSettings {
	return ImageSettings{
		Path:   DefaultImagePath,
		Width:  DefaultImageWidth,
		Height: DefaultImageHeight,
		Scale:  DefaultImageScale,
	}
}

// NewSeries returns a series with default colors and an empty interval list.
func NewSeries(name string) Series {
	return Series{Name: name, Intervals: []Interval{}, BGColor: DefaultBGColor}
}

// NewInterval returns an interval with both bounds present.
func NewInterval(start, end string) Interval {
	return Interval{
		Start: start, End: end,
		HasStart: true, HasEnd: true,
		Width: DefaultIntervalWidth,
	}
}

// SeriesNames returns the names of all series in declaration order.
func (d *Document) SeriesNames() []string {
	names := make([]string, len(d.Data))
	for i, s := range d.Data {
		names[i] = s.Name
	}
	return names
}
