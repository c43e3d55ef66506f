package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/timeline/pkg/fonts"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// RenderSVG renders fig as a standalone SVG document. The scale option
// multiplies the width and height attributes; the viewBox stays at the
// logical size.
func RenderSVG(fig *timeline.Figure, opts ...Option) []byte {
	c := newConfig(opts...)
	sc := NewScene(fig, c.width, c.height, fonts.EstimateWidth)

	var buf bytes.Buffer
	writeSVG(&buf, sc, c.scale)
	return buf.Bytes()
}

func writeSVG(buf *bytes.Buffer, sc *Scene, scale float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" class="timeline" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		sc.Width, sc.Height, sc.Width*scale, sc.Height*scale, escape(fonts.FontFamily))

	p := sc.Plot
	fmt.Fprintf(buf, "  <defs><clipPath id=\"plot-clip\"><rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\"/></clipPath></defs>\n",
		p.X, p.Y, p.W, p.H)
	fmt.Fprintf(buf, "  <rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", paperColor)
	fmt.Fprintf(buf, "  <rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"/>\n",
		p.X, p.Y, p.W, p.H, plotColor)

	writeGrid(buf, sc)

	buf.WriteString("  <g class=\"segments\" clip-path=\"url(#plot-clip)\">\n")
	for _, b := range sc.Bars {
		fmt.Fprintf(buf, "    <line class=\"segment\" data-series=\"%s\" x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"%.2f\"><title>%s</title></line>\n",
			escape(b.Series), b.X1, b.Y, b.X2, b.Y, escape(b.Color), b.Width, escape(b.Tooltip))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("  <g class=\"annotations\">\n")
	for _, l := range sc.Labels {
		fmt.Fprintf(buf, "    <g class=\"annotation\" data-series=\"%s\">\n", escape(l.Series))
		fmt.Fprintf(buf, "      <rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"/>\n",
			l.Box.X, l.Box.Y, l.Box.W, l.Box.H, escape(l.BGColor))
		fmt.Fprintf(buf, "      <text x=\"%.2f\" y=\"%.2f\" font-family=\"%s\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
			l.TextX, l.TextY, escape(l.Family), l.Size, escape(l.Color), escape(l.S))
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")

	writeText(buf, "title", sc.Title, "")
	writeText(buf, "xtitle", sc.XTitle, "")
	writeText(buf, "ytitle", sc.YTitle, fmt.Sprintf(` transform="rotate(-90 %.2f %.2f)"`, sc.YTitle.X, sc.YTitle.Y))

	if len(sc.Legend) > 0 {
		buf.WriteString("  <g class=\"legend\">\n")
		for _, e := range sc.Legend {
			fmt.Fprintf(buf, "    <g class=\"legend-entry\" data-series=\"%s\">\n", escape(e.Series))
			fmt.Fprintf(buf, "      <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"4\"/>\n",
				e.X, e.Y, e.X+legendSwatch, e.Y, escape(e.Color))
			fmt.Fprintf(buf, "      <text x=\"%.2f\" y=\"%.2f\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
				e.X+legendSwatch+tickLabelGap, e.Y+legendFontSize*0.35, legendFontSize, textColor, escape(e.Name))
			buf.WriteString("    </g>\n")
		}
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
}

func writeGrid(buf *bytes.Buffer, sc *Scene) {
	p := sc.Plot
	buf.WriteString("  <g class=\"grid\">\n")
	for _, t := range sc.XTicks {
		fmt.Fprintf(buf, "    <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			t.Pos, p.Y, t.Pos, p.Y+p.H, gridColor)
		fmt.Fprintf(buf, "    <text class=\"xtick\" x=\"%.2f\" y=\"%.2f\" text-anchor=\"middle\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
			t.Pos, p.Y+p.H+tickLabelGap+tickFontSize, tickFontSize, textColor, escape(t.Label))
	}
	for _, t := range sc.YTicks {
		fmt.Fprintf(buf, "    <line x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			p.X, t.Pos, p.X+p.W, t.Pos, gridColor)
		if t.Label != "" {
			fmt.Fprintf(buf, "    <text class=\"ytick\" x=\"%.2f\" y=\"%.2f\" text-anchor=\"end\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
				p.X-tickLabelGap, t.Pos+tickFontSize*0.35, tickFontSize, textColor, escape(t.Label))
		}
	}
	buf.WriteString("  </g>\n")
}

func writeText(buf *bytes.Buffer, class string, t Text, extra string) {
	if t.S == "" {
		return
	}
	fmt.Fprintf(buf, "  <text class=\"%s\" x=\"%.2f\" y=\"%.2f\" text-anchor=\"%s\" font-size=\"%.0f\" fill=\"%s\"%s>%s</text>\n",
		class, t.X, t.Y, t.Anchor, t.Size, textColor, extra, escape(t.S))
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
