// Package render draws timeline figures.
//
// # Overview
//
// A figure from the timeline package is first laid out as a [Scene]: every
// title, tick, bar, label and legend entry placed in pixel coordinates.
// Each output format then paints the same scene:
//
//   - SVG: [RenderSVG], scalable vector output
//   - PNG: [RenderPNG], raster output drawn with fogleman/gg
//   - HTML: [RenderHTML], a standalone page embedding the SVG with hover
//     highlighting and click-to-hide legend entries
//   - JSON: [RenderJSON], the figure as data/layout traces for other tools
//
// Basic usage:
//
//	svg := render.RenderSVG(fig, render.WithSize(1200, 600))
//	png, err := render.RenderPNG(fig, render.WithSize(1200, 600), render.WithScale(2))
//
// # Colors
//
// Series colors are CSS color strings. [ParseColor] understands hex
// (#rgb, #rrggbb, #rrggbbaa), rgb() and rgba() functions, "transparent",
// and the CSS named colors. Vector output passes colors through unchanged;
// call [ValidateColors] first to reject colors a raster sink could not draw.
//
// # Chart Style
//
// Plots use a light blue-grey plot area with white grid lines, a date axis
// labelled YYYY-MM-DD at day, month or year steps depending on the span,
// and one tick per plotted series on the vertical axis.
package render
