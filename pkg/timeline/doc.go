// Package timeline turns a timeline document into chart primitives.
//
// # Overview
//
// A [Document] names one or more series, each a horizontal track made of
// date intervals. [Build] walks the series in declaration order and emits a
// [Figure]: one [Segment] per interval, one [Annotation] per distinct label
// within a series, and the axis layout. Rendering the figure to pixels or
// markup is the job of the render package.
//
// # Documents
//
// Documents are read with [ReadJSON], [ReadYAML], [ReadTOML], or [Load],
// which picks the decoder from the file extension. All decoders preserve the
// order in which series are declared, since that order drives the vertical
// position of each track and the default color it receives.
//
//	doc, err := timeline.Load("roadmap.json")
//	if err != nil {
//	    return err
//	}
//	fig, err := timeline.Build(doc, timeline.WithDiagnostics(&collector))
//
// Missing keys fall back to the values returned by [DefaultLayout],
// [DefaultImage], and the series and interval defaults. A partial map only
// overrides the keys it names.
//
// # Advisories
//
// Two conditions are reported but never stop a build: overlapping
// intervals within a series, and intervals missing a start or end. They are
// delivered to the [Diagnostics] passed with [WithDiagnostics]; [Collector]
// keeps them in memory and [LogDiagnostics] forwards them to a logger.
//
// # Quirks
//
// A few behaviors are kept as-is for compatibility with existing documents:
//
//   - The palette color chosen for a series without a color is indexed by
//     the series' position in the data map, counting series that were
//     skipped because their intervals are null.
//   - Y-axis tick labels list every series name, while tick positions only
//     exist for plotted series, so labels shift when a series is skipped.
//   - Once a series resolves its palette color it keeps it for all of its
//     remaining intervals.
package timeline
