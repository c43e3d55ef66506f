package render

import (
	"time"

	"github.com/matzehuels/timeline/pkg/timeline"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleFigure has two plotted series, one of them with two segments.
func sampleFigure() *timeline.Figure {
	font := timeline.Font{Family: "Arial", Size: 12, Color: "black"}
	return &timeline.Figure{
		Segments: []timeline.Segment{
			{Series: "backend", Description: "design", Start: day(2024, 1, 1), End: day(2024, 3, 1), Y: 0, LineWidth: 20, Color: "rgb(31, 119, 180)"},
			{Series: "backend", Description: "build", Start: day(2024, 3, 1), End: day(2024, 6, 30), Y: 0, LineWidth: 20, Color: "rgb(31, 119, 180)"},
			{Series: "frontend & ui", Start: day(2024, 2, 1), End: day(2024, 5, 1), Y: 1, LineWidth: 10, Color: "#2ca02c"},
		},
		Annotations: []timeline.Annotation{
			{Series: "backend", Text: "backend:design", X: day(2024, 1, 1), Y: 0, BGColor: "rgba(255, 255, 255, 0.7)", Align: "left", XAnchor: "left", Font: font},
			{Series: "backend", Text: "backend:build", X: day(2024, 3, 1), Y: 0, BGColor: "rgba(255, 255, 255, 0.7)", Align: "left", XAnchor: "left", Font: font},
			{Series: "frontend & ui", Text: "frontend & ui", X: day(2024, 2, 1), Y: 1, BGColor: "white", Align: "left", XAnchor: "left", Font: font},
		},
		Layout: timeline.FigureLayout{
			Title:          "Roadmap",
			XAxisTitle:     "Time",
			YAxisTitle:     "Series",
			XAxisType:      timeline.XAxisTypeDate,
			XTickFormat:    timeline.XAxisTickFormat,
			TickVals:       []int{0, 1},
			TickText:       []string{"backend", "frontend & ui", "skipped"},
			ShowTickLabels: true,
			ShowLegend:     true,
		},
	}
}
