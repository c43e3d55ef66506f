package render

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/timeline/pkg/timeline"
)

func fixedMeasure(s string, size float64) float64 {
	return float64(len(s)) * size * 0.5
}

func inside(x, y float64, r Rect) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func TestNewScene(t *testing.T) {
	sc := NewScene(sampleFigure(), 1200, 600, fixedMeasure)

	if len(sc.Bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(sc.Bars))
	}
	for i, b := range sc.Bars {
		if b.X1 >= b.X2 {
			t.Errorf("bar %d: X1 %.1f >= X2 %.1f", i, b.X1, b.X2)
		}
		if !inside(b.X1, b.Y, sc.Plot) || !inside(b.X2, b.Y, sc.Plot) {
			t.Errorf("bar %d outside plot area", i)
		}
	}
	if sc.Bars[0].Y != sc.Bars[1].Y {
		t.Error("segments of one series should share a row")
	}
	if sc.Bars[2].Y >= sc.Bars[0].Y {
		t.Errorf("position 1 (y=%.1f) should be drawn above position 0 (y=%.1f)", sc.Bars[2].Y, sc.Bars[0].Y)
	}
	if sc.Bars[0].X2 != sc.Bars[1].X1 {
		t.Error("adjacent segments should meet")
	}

	if len(sc.YTicks) != 2 {
		t.Fatalf("got %d y ticks, want 2", len(sc.YTicks))
	}
	if sc.YTicks[0].Label != "backend" || sc.YTicks[1].Label != "frontend & ui" {
		t.Errorf("y tick labels = %q, %q", sc.YTicks[0].Label, sc.YTicks[1].Label)
	}
	if sc.YTicks[0].Pos != sc.Bars[0].Y {
		t.Error("y tick should line up with its row")
	}

	if len(sc.XTicks) == 0 {
		t.Fatal("no x ticks")
	}
	for _, tick := range sc.XTicks {
		if tick.Pos < sc.Plot.X || tick.Pos > sc.Plot.X+sc.Plot.W {
			t.Errorf("x tick %q at %.1f outside plot", tick.Label, tick.Pos)
		}
	}

	if len(sc.Labels) != 3 {
		t.Fatalf("got %d labels, want 3", len(sc.Labels))
	}
	if l := sc.Labels[0]; l.Box.X != sc.Bars[0].X1 || l.S != "backend:design" {
		t.Errorf("label 0 = %+v, want left aligned at the segment start", l)
	}

	if len(sc.Legend) != 2 {
		t.Fatalf("got %d legend entries, want 2", len(sc.Legend))
	}
	if sc.Legend[0].Name != "backend" || sc.Legend[1].Name != "frontend & ui" {
		t.Errorf("legend = %q, %q", sc.Legend[0].Name, sc.Legend[1].Name)
	}
	if sc.Legend[0].X <= sc.Plot.X+sc.Plot.W {
		t.Error("legend should sit right of the plot")
	}

	if sc.Title.S != "Roadmap" || sc.XTitle.S != "Time" || sc.YTitle.S != "Series" {
		t.Errorf("titles = %q, %q, %q", sc.Title.S, sc.XTitle.S, sc.YTitle.S)
	}
}

func TestNewSceneHiddenParts(t *testing.T) {
	fig := sampleFigure()
	fig.Layout.ShowLegend = false
	fig.Layout.ShowTickLabels = false

	sc := NewScene(fig, 1200, 600, fixedMeasure)
	if len(sc.Legend) != 0 {
		t.Errorf("got %d legend entries, want none", len(sc.Legend))
	}
	for _, tick := range sc.YTicks {
		if tick.Label != "" {
			t.Errorf("y tick label %q should be hidden", tick.Label)
		}
	}
	if want := 1200 - marginLeft - marginRight; sc.Plot.W != want {
		t.Errorf("plot width = %.1f, want %.1f", sc.Plot.W, want)
	}
}

func TestNewSceneLongTickLabels(t *testing.T) {
	fig := sampleFigure()
	short := NewScene(fig, 1200, 600, fixedMeasure)

	fig.Layout.TickText[0] = "a very long series name that needs room"
	long := NewScene(fig, 1200, 600, fixedMeasure)
	if long.Plot.X <= short.Plot.X {
		t.Errorf("plot left edge %.1f should move right of %.1f", long.Plot.X, short.Plot.X)
	}
}

func TestNewSceneEmpty(t *testing.T) {
	fig := &timeline.Figure{Layout: timeline.FigureLayout{Title: "Empty", ShowLegend: true}}
	sc := NewScene(fig, 800, 400, fixedMeasure)

	if len(sc.Bars) != 0 || len(sc.Labels) != 0 || len(sc.Legend) != 0 {
		t.Errorf("empty figure produced %d bars, %d labels, %d legend entries", len(sc.Bars), len(sc.Labels), len(sc.Legend))
	}
	if len(sc.XTicks) == 0 {
		t.Error("empty figure should still have a date axis")
	}
}

func TestNewSceneSingleDay(t *testing.T) {
	fig := &timeline.Figure{
		Segments: []timeline.Segment{{Series: "a", Start: day(2024, 1, 1), End: day(2024, 1, 1), LineWidth: 20, Color: "red"}},
		Layout:   timeline.FigureLayout{TickVals: []int{0}, TickText: []string{"a"}},
	}
	sc := NewScene(fig, 800, 400, fixedMeasure)
	b := sc.Bars[0]
	if b.X1 != b.X2 {
		t.Errorf("zero-length segment has width %.1f", b.X2-b.X1)
	}
	if mid := sc.Plot.X + sc.Plot.W/2; b.X1 < mid-1 || b.X1 > mid+1 {
		t.Errorf("single day at %.1f, want centred at %.1f", b.X1, mid)
	}
}

func TestNewSceneCenturies(t *testing.T) {
	fig := &timeline.Figure{
		Segments: []timeline.Segment{
			{Series: "a", Start: day(1500, 1, 1), End: day(1600, 1, 1), LineWidth: 20, Color: "red"},
			{Series: "b", Start: day(1900, 1, 1), End: day(2020, 1, 1), LineWidth: 20, Color: "blue"},
		},
		Layout: timeline.FigureLayout{TickVals: []int{0}, TickText: []string{"a"}},
	}
	sc := NewScene(fig, 1200, 600, fixedMeasure)

	lo, hi := day(1500, 1, 1).Unix(), day(2020, 1, 1).Unix()
	pad := float64(hi-lo) * rangePadFactor
	want := func(d time.Time) float64 {
		frac := (float64(d.Unix()-lo) + pad) / (float64(hi-lo) + 2*pad)
		return sc.Plot.X + frac*sc.Plot.W
	}

	tests := []struct {
		name   string
		got    float64
		expect time.Time
	}{
		{"a start", sc.Bars[0].X1, day(1500, 1, 1)},
		{"a end", sc.Bars[0].X2, day(1600, 1, 1)},
		{"b start", sc.Bars[1].X1, day(1900, 1, 1)},
		{"b end", sc.Bars[1].X2, day(2020, 1, 1)},
	}
	for _, tt := range tests {
		if w := want(tt.expect); math.Abs(tt.got-w) > 0.5 {
			t.Errorf("%s: x = %.1f, want %.1f", tt.name, tt.got, w)
		}
	}
	if sc.Bars[1].X2 >= sc.Plot.X+sc.Plot.W {
		t.Error("last bar should end inside the padded plot")
	}
	if sc.Bars[1].X2-sc.Bars[1].X1 <= sc.Bars[0].X2-sc.Bars[0].X1 {
		t.Error("120 year bar should be longer than the 100 year bar")
	}
}
