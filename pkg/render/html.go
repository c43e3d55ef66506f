package render

import (
	"bytes"
	"html/template"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/fonts"
	"github.com/matzehuels/timeline/pkg/timeline"
)

const seriesInteractionCSS = `
    body { margin: 0; background: #fff; font-family: Arial, "Open Sans", verdana, sans-serif; }
    .timeline { display: block; max-width: 100%; height: auto; }
    .segment, .annotation { transition: opacity 0.2s ease; }
    .dimmed { opacity: 0.25; }
    .hidden { display: none; }
    .legend-entry { cursor: pointer; }
    .legend-entry.off { opacity: 0.4; }`

const seriesInteractionJS = `
    function parts() {
      return document.querySelectorAll('.segment, .annotation');
    }
    function highlight(series) {
      parts().forEach(el => el.classList.toggle('dimmed', el.dataset.series !== series));
    }
    function clearHighlight() {
      parts().forEach(el => el.classList.remove('dimmed'));
    }
    document.querySelectorAll('.segment').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.series));
      el.addEventListener('mouseleave', clearHighlight);
    });
    document.querySelectorAll('.legend-entry').forEach(entry => {
      entry.addEventListener('click', () => {
        const off = entry.classList.toggle('off');
        parts().forEach(el => {
          if (el.dataset.series === entry.dataset.series) el.classList.toggle('hidden', off);
        });
      });
    });`

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>{{.CSS}}
  </style>
</head>
<body>
{{.SVG}}
  <script>{{.JS}}
  </script>
</body>
</html>
`))

type page struct {
	Title string
	CSS   template.CSS
	SVG   template.HTML
	JS    template.JS
}

// RenderHTML renders fig as a standalone HTML page. Hovering a segment
// dims the other series; clicking a legend entry hides its series.
func RenderHTML(fig *timeline.Figure, opts ...Option) ([]byte, error) {
	c := newConfig(opts...)
	sc := NewScene(fig, c.width, c.height, fonts.EstimateWidth)

	var svg bytes.Buffer
	writeSVG(&svg, sc, 1)

	title := fig.Layout.Title
	if title == "" {
		title = timeline.DefaultTitle
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, page{
		Title: title,
		CSS:   template.CSS(seriesInteractionCSS),
		SVG:   template.HTML(svg.String()),
		JS:    template.JS(seriesInteractionJS),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render html")
	}
	return buf.Bytes(), nil
}
