package timeline

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
)

func TestReadJSONDefaults(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	if doc.Layout != DefaultLayout() {
		t.Errorf("Layout = %+v, want %+v", doc.Layout, DefaultLayout())
	}
	if doc.OutImg != DefaultImage() {
		t.Errorf("OutImg = %+v, want %+v", doc.OutImg, DefaultImage())
	}
	if len(doc.Data) != 0 {
		t.Errorf("Data = %v, want empty", doc.Data)
	}
	if doc.HasOutHTMLPath {
		t.Error("HasOutHTMLPath = true, want false")
	}
	if doc.Settings.Now.IsZero() {
		t.Error("Settings.Now should default to the read time")
	}
}

func TestReadJSONPartialMapsOverrideOnlyTheirKeys(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{
		"layout": {"title": "Roadmap", "showlegend": false},
		"out_img": {"path": "out.png", "scale": 2}
	}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	want := DefaultLayout()
	want.Title = "Roadmap"
	want.ShowLegend = false
	if doc.Layout != want {
		t.Errorf("Layout = %+v, want %+v", doc.Layout, want)
	}

	img := DefaultImage()
	img.Path = "out.png"
	img.Scale = 2
	if doc.OutImg != img {
		t.Errorf("OutImg = %+v, want %+v", doc.OutImg, img)
	}
}

func TestReadJSONPreservesSeriesOrder(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{"data": {
		"zeta": {}, "alpha": {}, "mid": {}, "beta": {}
	}}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	got := strings.Join(doc.SeriesNames(), ",")
	if got != "zeta,alpha,mid,beta" {
		t.Errorf("SeriesNames() = %s, want zeta,alpha,mid,beta", got)
	}
}

func TestReadJSONSeriesDefaults(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{"data": {
		"absent": {},
		"null": {"intervals": null},
		"empty": {"intervals": []},
		"full": {"intervals": [{"start": "2020-01-01", "end": "now", "description": "x", "width": 0.5}],
		         "color": "red", "bgcolor": "white"}
	}}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	tests := []struct {
		name      string
		wantNull  bool
		wantCount int
		wantColor string
		wantBG    string
	}{
		{"absent", false, 0, "", DefaultBGColor},
		{"null", true, 0, "", DefaultBGColor},
		{"empty", false, 0, "", DefaultBGColor},
		{"full", false, 1, "red", "white"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := doc.Data[i]
			if s.Name != tt.name {
				t.Fatalf("Data[%d].Name = %q, want %q", i, s.Name, tt.name)
			}
			if s.NullIntervals != tt.wantNull {
				t.Errorf("NullIntervals = %v, want %v", s.NullIntervals, tt.wantNull)
			}
			if len(s.Intervals) != tt.wantCount {
				t.Errorf("len(Intervals) = %d, want %d", len(s.Intervals), tt.wantCount)
			}
			if s.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", s.Color, tt.wantColor)
			}
			if s.BGColor != tt.wantBG {
				t.Errorf("BGColor = %q, want %q", s.BGColor, tt.wantBG)
			}
		})
	}

	iv := doc.Data[3].Intervals[0]
	if iv.Start != "2020-01-01" || iv.End != NowToken || !iv.IsOpenEnded() {
		t.Errorf("interval = %+v", iv)
	}
	if iv.Description != "x" || iv.Width != 0.5 {
		t.Errorf("description/width = %q/%v, want x/0.5", iv.Description, iv.Width)
	}
}

func TestReadJSONIntervalKeyPresence(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{"data": {"s": {"intervals": [
		{"start": "2020-01-01"},
		{"end": "2020-01-01", "description": "d"}
	]}}}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}

	ivs := doc.Data[0].Intervals
	if !ivs[0].HasStart || ivs[0].HasEnd {
		t.Errorf("first interval presence = %v/%v, want true/false", ivs[0].HasStart, ivs[0].HasEnd)
	}
	if ivs[1].HasStart || !ivs[1].HasEnd {
		t.Errorf("second interval presence = %v/%v, want false/true", ivs[1].HasStart, ivs[1].HasEnd)
	}
	if ivs[1].Width != DefaultIntervalWidth {
		t.Errorf("Width = %v, want %v", ivs[1].Width, DefaultIntervalWidth)
	}
	if want := `{"end": "2020-01-01", "description": "d"}`; ivs[1].Raw != want {
		t.Errorf("Raw = %s, want %s", ivs[1].Raw, want)
	}
}

func TestReadJSONSettingsNow(t *testing.T) {
	tests := []struct {
		name string
		now  string
		want time.Time
	}{
		{"date", "2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"datetime", "2024-05-01T12:30:00", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
		{"microseconds", "2024-05-01 12:30:00.250000", time.Date(2024, 5, 1, 12, 30, 0, 250000000, time.UTC)},
		{"offset keeps wall clock", "2024-05-01T12:30:00+02:00", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadJSON(strings.NewReader(`{"settings": {"now": "` + tt.now + `"}}`))
			if err != nil {
				t.Fatalf("ReadJSON: %v", err)
			}
			if !doc.Settings.Now.Equal(tt.want) {
				t.Errorf("Now = %v, want %v", doc.Settings.Now, tt.want)
			}
		})
	}
}

func TestReadJSONOutHTMLPath(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{"out_html_path": "chart.html"}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !doc.HasOutHTMLPath || doc.OutHTMLPath != "chart.html" {
		t.Errorf("OutHTMLPath = %q (present %v), want chart.html", doc.OutHTMLPath, doc.HasOutHTMLPath)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"data": `, errors.ErrCodeInvalidInput},
		{"not an object", `[1, 2]`, errors.ErrCodeInvalidInput},
		{"trailing data", `{} {}`, errors.ErrCodeInvalidInput},
		{"data not an object", `{"data": []}`, errors.ErrCodeInvalidInput},
		{"series not an object", `{"data": {"s": 1}}`, errors.ErrCodeInvalidInput},
		{"intervals not a list", `{"data": {"s": {"intervals": {}}}}`, errors.ErrCodeInvalidInput},
		{"interval not an object", `{"data": {"s": {"intervals": ["x"]}}}`, errors.ErrCodeInvalidInput},
		{"negative width", `{"data": {"s": {"intervals": [{"width": -1}]}}}`, errors.ErrCodeInvalidInput},
		{"bad width", `{"out_img": {"width": "wide"}}`, errors.ErrCodeInvalidInput},
		{"fractional width", `{"out_img": {"width": 10.5}}`, errors.ErrCodeInvalidInput},
		{"bad showlegend", `{"layout": {"showlegend": "yes"}}`, errors.ErrCodeInvalidInput},
		{"bad now", `{"settings": {"now": "yesterday"}}`, errors.ErrCodeInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("ReadJSON() error = nil, want error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	doc, err := ReadYAML(strings.NewReader(`
settings:
  now: "2024-01-31"
layout:
  title: From YAML
data:
  second:
    intervals:
      - start: 2023-01-01
        end: now
        description: ongoing
  first:
    intervals: null
`))
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}

	if doc.Layout.Title != "From YAML" {
		t.Errorf("Title = %q, want From YAML", doc.Layout.Title)
	}
	if got := strings.Join(doc.SeriesNames(), ","); got != "second,first" {
		t.Errorf("SeriesNames() = %s, want second,first", got)
	}
	if !doc.Data[1].NullIntervals {
		t.Error("first.NullIntervals = false, want true")
	}
	iv := doc.Data[0].Intervals[0]
	if iv.Start != "2023-01-01" || iv.End != NowToken || iv.Description != "ongoing" {
		t.Errorf("interval = %+v", iv)
	}
	if want := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC); !doc.Settings.Now.Equal(want) {
		t.Errorf("Now = %v, want %v", doc.Settings.Now, want)
	}
}

func TestReadTOML(t *testing.T) {
	doc, err := ReadTOML(strings.NewReader(`
out_html_path = "chart.html"

[layout]
title = "From TOML"

[data.zulu]
color = "#ff0000"

[[data.zulu.intervals]]
start = 2023-01-01
end = 2023-02-01

[data.alpha]

[[data.alpha.intervals]]
start = "2023-03-01"
end = "now"
width = 2
`))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}

	if got := strings.Join(doc.SeriesNames(), ","); got != "zulu,alpha" {
		t.Errorf("SeriesNames() = %s, want zulu,alpha", got)
	}
	if doc.Data[0].Color != "#ff0000" {
		t.Errorf("zulu.Color = %q, want #ff0000", doc.Data[0].Color)
	}
	if iv := doc.Data[0].Intervals[0]; iv.Start != "2023-01-01" || iv.End != "2023-02-01" {
		t.Errorf("zulu interval = %+v", iv)
	}
	if iv := doc.Data[1].Intervals[0]; iv.Width != 2 || !iv.IsOpenEnded() {
		t.Errorf("alpha interval = %+v", iv)
	}
	if !doc.HasOutHTMLPath || doc.OutHTMLPath != "chart.html" {
		t.Errorf("OutHTMLPath = %q", doc.OutHTMLPath)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.json": `{"layout": {"title": "json"}}`,
		"a.yml":  "layout:\n  title: yaml\n",
		"a.toml": "[layout]\ntitle = \"toml\"\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for name := range files {
		t.Run(name, func(t *testing.T) {
			doc, err := Load(filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			want := strings.TrimPrefix(filepath.Ext(name), ".")
			if want == "yml" {
				want = "yaml"
			}
			if doc.Layout.Title != want {
				t.Errorf("Title = %q, want %q", doc.Layout.Title, want)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.json"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeFileNotFound)
		}
	})
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.json", FormatJSON},
		{"a.YAML", FormatYAML},
		{"a.yml", FormatYAML},
		{"a.toml", FormatTOML},
		{"noext", FormatJSON},
		{"a.txt", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestExtensions(t *testing.T) {
	want := []string{"json", "toml", "yaml", "yml"}
	if got := Extensions(); !slices.Equal(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}
