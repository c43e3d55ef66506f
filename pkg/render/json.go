package render

import (
	"encoding/json"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

type jsonFigure struct {
	Data   []jsonTrace `json:"data"`
	Layout jsonLayout  `json:"layout"`
}

type jsonTrace struct {
	Type       string   `json:"type"`
	Mode       string   `json:"mode"`
	Name       string   `json:"name"`
	X          []string `json:"x"`
	Y          []int    `json:"y"`
	Line       jsonLine `json:"line"`
	HoverText  string   `json:"hovertext,omitempty"`
	LegendGrp  string   `json:"legendgroup"`
	ShowLegend bool     `json:"showlegend"`
}

type jsonLine struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type jsonLayout struct {
	Title       jsonText         `json:"title"`
	XAxis       jsonAxis         `json:"xaxis"`
	YAxis       jsonAxis         `json:"yaxis"`
	ShowLegend  bool             `json:"showlegend"`
	Annotations []jsonAnnotation `json:"annotations"`
}

type jsonText struct {
	Text string `json:"text"`
}

type jsonAxis struct {
	Title          jsonText `json:"title"`
	Type           string   `json:"type,omitempty"`
	TickFormat     string   `json:"tickformat,omitempty"`
	TickMode       string   `json:"tickmode,omitempty"`
	TickVals       []int    `json:"tickvals,omitempty"`
	TickText       []string `json:"ticktext,omitempty"`
	ShowTickLabels *bool    `json:"showticklabels,omitempty"`
}

type jsonAnnotation struct {
	X         string   `json:"x"`
	Y         int      `json:"y"`
	Text      string   `json:"text"`
	BGColor   string   `json:"bgcolor"`
	Align     string   `json:"align"`
	XAnchor   string   `json:"xanchor"`
	ShowArrow bool     `json:"showarrow"`
	AX        float64  `json:"ax"`
	AY        float64  `json:"ay"`
	Font      jsonFont `json:"font"`
}

type jsonFont struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Color  string  `json:"color"`
}

// RenderJSON exports fig as a data/layout document: one line trace per
// segment and the layout with its annotations. Every trace after the first
// of its series is hidden from the legend.
func RenderJSON(fig *timeline.Figure) ([]byte, error) {
	out := jsonFigure{
		Data:   make([]jsonTrace, 0, len(fig.Segments)),
		Layout: buildJSONLayout(fig),
	}
	seen := make(map[string]bool)
	for _, s := range fig.Segments {
		out.Data = append(out.Data, jsonTrace{
			Type:       "scatter",
			Mode:       "lines",
			Name:       s.Series,
			X:          []string{timeline.FormatDate(s.Start), timeline.FormatDate(s.End)},
			Y:          []int{s.Y, s.Y},
			Line:       jsonLine{Color: s.Color, Width: s.LineWidth},
			HoverText:  s.Description,
			LegendGrp:  s.Series,
			ShowLegend: !seen[s.Series],
		})
		seen[s.Series] = true
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "encode figure json")
	}
	return append(data, '\n'), nil
}

func buildJSONLayout(fig *timeline.Figure) jsonLayout {
	l := fig.Layout
	showTicks := l.ShowTickLabels
	tickVals := l.TickVals
	if tickVals == nil {
		tickVals = []int{}
	}

	out := jsonLayout{
		Title: jsonText{Text: l.Title},
		XAxis: jsonAxis{
			Title:      jsonText{Text: l.XAxisTitle},
			Type:       l.XAxisType,
			TickFormat: l.XTickFormat,
		},
		YAxis: jsonAxis{
			Title:          jsonText{Text: l.YAxisTitle},
			TickMode:       "array",
			TickVals:       tickVals,
			TickText:       l.TickText,
			ShowTickLabels: &showTicks,
		},
		ShowLegend:  l.ShowLegend,
		Annotations: make([]jsonAnnotation, 0, len(fig.Annotations)),
	}
	for _, a := range fig.Annotations {
		out.Annotations = append(out.Annotations, jsonAnnotation{
			X:         timeline.FormatDate(a.X),
			Y:         a.Y,
			Text:      a.Text,
			BGColor:   a.BGColor,
			Align:     a.Align,
			XAnchor:   a.XAnchor,
			ShowArrow: a.ShowArrow,
			AX:        1000,
			AY:        0,
			Font:      jsonFont{Family: a.Font.Family, Size: a.Font.Size, Color: a.Font.Color},
		})
	}
	return out
}
