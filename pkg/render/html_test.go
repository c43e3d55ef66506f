package render

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	fig := sampleFigure()
	fig.Layout.Title = "Plans <2024>"

	data, err := RenderHTML(fig)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	s := string(data)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Plans &lt;2024&gt;</title>",
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`data-series="frontend &amp; ui"`,
		".legend-entry",
		"addEventListener('click'",
		"</html>",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Contains(s, "Plans <2024>") {
		t.Error("title not escaped")
	}
}

func TestRenderHTMLDefaultTitle(t *testing.T) {
	fig := sampleFigure()
	fig.Layout.Title = ""

	data, err := RenderHTML(fig)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(string(data), "<title>Timeline</title>") {
		t.Error("expected fallback page title")
	}
}
