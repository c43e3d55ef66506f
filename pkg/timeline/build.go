package timeline

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/timeline/pkg/observability"
)

// BuildOption configures [Build].
type BuildOption func(*builder)

type builder struct {
	diag  Diagnostics
	clock func() time.Time
}

// WithDiagnostics sends advisories to d instead of discarding them.
func WithDiagnostics(d Diagnostics) BuildOption {
	return func(b *builder) {
		if d != nil {
			b.diag = d
		}
	}
}

// WithClock sets the time source used when the document has no
// Settings.Now. It is read at most once per build.
func WithClock(now func() time.Time) BuildOption {
	return func(b *builder) { b.clock = now }
}

// span is an interval with both bounds resolved.
type span struct {
	index      int
	start, end time.Time
}

// Build converts doc into a figure.
//
// Series are visited in declaration order. Each series whose intervals are
// not null takes the next vertical position starting at 0; series with null
// intervals are skipped without consuming one. Intervals missing a start or
// end are skipped and reported as [AdvisoryMissingBounds]; overlapping
// intervals are reported as [AdvisoryOverlap] and still drawn. An
// unparsable date aborts the build.
func Build(ctx context.Context, doc *Document, opts ...BuildOption) (*Figure, error) {
	b := builder{diag: Discard, clock: time.Now}
	for _, opt := range opts {
		opt(&b)
	}

	hooks := observability.Build()
	hooks.OnBuildStart(ctx, len(doc.Data))
	start := time.Now()

	counted := &countingDiagnostics{next: b.diag}
	fig, err := b.build(doc, counted)

	stats := observability.BuildStats{Series: len(doc.Data), Advisories: counted.n}
	if fig != nil {
		stats.Plotted = fig.Positions()
		stats.Segments = len(fig.Segments)
		stats.Annotations = len(fig.Annotations)
	}
	hooks.OnBuildComplete(ctx, stats, time.Since(start), err)
	return fig, err
}

func (b *builder) build(doc *Document, diag Diagnostics) (*Figure, error) {
	now := doc.Settings.Now
	if now.IsZero() {
		now = wallClock(b.clock())
	}

	fig := &Figure{
		Segments:    []Segment{},
		Annotations: []Annotation{},
	}

	y := 0
	for index, s := range doc.Data {
		if s.NullIntervals {
			continue
		}

		spans, err := resolveSpans(s, now)
		if err != nil {
			return nil, err
		}
		checkOverlap(s, spans, diag)

		color := s.Color
		labels := make(map[string]bool)
		for i, iv := range s.Intervals {
			sp, ok := spans[i]
			if !ok {
				diag.Advise(Advisory{
					Kind:    AdvisoryMissingBounds,
					Series:  s.Name,
					Message: "interval has no start or end",
					Content: iv.Raw,
				})
				continue
			}

			// The first resolved palette color sticks for the rest of the series.
			if color == "" {
				color = PaletteColor(index)
			}

			fig.Segments = append(fig.Segments, Segment{
				Series:      s.Name,
				Description: iv.Description,
				Start:       sp.start,
				End:         sp.end,
				Y:           y,
				LineWidth:   lineWidthFactor * iv.Width,
				Color:       color,
			})

			text := labelText(s.Name, iv.Description)
			if labels[text] {
				continue
			}
			labels[text] = true
			fig.Annotations = append(fig.Annotations, Annotation{
				Series:  s.Name,
				Text:    text,
				X:       sp.start,
				Y:       y,
				BGColor: s.BGColor,
				Align:   "left",
				XAnchor: "left",
				Font: Font{
					Family: AnnotationFontFamily,
					Size:   AnnotationFontSize,
					Color:  AnnotationFontColor,
				},
			})
		}
		y++
	}

	fig.Layout = FigureLayout{
		Title:          doc.Layout.Title,
		XAxisTitle:     doc.Layout.XAxisTitle,
		YAxisTitle:     doc.Layout.YAxisTitle,
		XAxisType:      XAxisTypeDate,
		XTickFormat:    XAxisTickFormat,
		TickVals:       make([]int, y),
		TickText:       doc.SeriesNames(),
		ShowTickLabels: doc.Layout.YAxisShowTickLabels,
		ShowLegend:     doc.Layout.ShowLegend,
	}
	for i := range fig.Layout.TickVals {
		fig.Layout.TickVals[i] = i
	}
	return fig, nil
}

// resolveSpans parses the bounds of every interval that has both. The map is
// keyed by interval index.
func resolveSpans(s Series, now time.Time) (map[int]span, error) {
	spans := make(map[int]span, len(s.Intervals))
	for i, iv := range s.Intervals {
		if !iv.HasStart || !iv.HasEnd {
			continue
		}
		start, err := ParseDate(iv.Start)
		if err != nil {
			return nil, fmt.Errorf("series %q interval %d start: %w", s.Name, i, err)
		}
		end, err := resolveEnd(iv.End, now)
		if err != nil {
			return nil, fmt.Errorf("series %q interval %d end: %w", s.Name, i, err)
		}
		spans[i] = span{index: i, start: start, end: end}
	}
	return spans, nil
}

// checkOverlap reports every pair of neighbouring intervals, ordered by
// start, where the earlier one ends after the later one starts.
func checkOverlap(s Series, spans map[int]span, diag Diagnostics) {
	sorted := make([]span, 0, len(spans))
	for _, sp := range spans {
		sorted = append(sorted, sp)
	}
	slices.SortFunc(sorted, func(a, b span) int {
		if c := a.start.Compare(b.start); c != 0 {
			return c
		}
		return a.index - b.index
	})

	for i := 0; i+1 < len(sorted); i++ {
		cur, next := sorted[i], sorted[i+1]
		if !cur.end.After(next.start) {
			continue
		}
		diag.Advise(Advisory{
			Kind:   AdvisoryOverlap,
			Series: s.Name,
			Message: fmt.Sprintf("overlapping intervals: %s..%s ends after %s starts",
				FormatDate(cur.start), FormatDate(cur.end), FormatDate(next.start)),
			Content: strings.TrimSpace(s.Intervals[cur.index].Raw + " " + s.Intervals[next.index].Raw),
		})
	}
}

func labelText(series, description string) string {
	if description == "" {
		return series
	}
	return series + ":" + description
}

type countingDiagnostics struct {
	next Diagnostics
	n    int
}

func (c *countingDiagnostics) Advise(a Advisory) {
	c.n++
	c.next.Advise(a)
}
