// Package pkg provides the libraries behind the timeline command.
//
// # Overview
//
// A timeline document lists named series, each a sequence of date
// intervals. The libraries turn such a document into a chart with one row
// per series:
//
//  1. [timeline] - documents, decoding and figure construction
//  2. [render] - layout and the SVG, PNG, HTML and JSON sinks
//  3. [pipeline] - orchestration (load → build → write)
//  4. [viewer] - showing a rendered page in the local browser
//
// # Architecture
//
//	JSON / YAML / TOML document
//	         ↓
//	    [timeline.Load] (ordered decoding, defaults)
//	         ↓
//	    [timeline.Build] (positions, colors, labels, advisories)
//	         ↓
//	    [render] package (scene layout + sinks)
//	         ↓
//	    PNG/SVG/JSON image, HTML page, browser
//
// # Quick Start
//
//	doc, err := timeline.Load("roadmap.json")
//	if err != nil {
//	    return err
//	}
//	fig, err := timeline.Build(ctx, doc, timeline.WithDiagnostics(diag))
//	if err != nil {
//	    return err
//	}
//	png, err := render.RenderPNG(fig, render.WithImageSettings(doc.OutImg))
//
// # Supporting Packages
//
//   - [errors] - coded errors shared by every package
//   - [observability] - build and render hooks
//   - [fonts] - embedded font faces for raster output
//   - [buildinfo] - version information set at build time
//
// [timeline]: github.com/matzehuels/timeline/pkg/timeline
// [timeline.Load]: github.com/matzehuels/timeline/pkg/timeline.Load
// [timeline.Build]: github.com/matzehuels/timeline/pkg/timeline.Build
// [render]: github.com/matzehuels/timeline/pkg/render
// [pipeline]: github.com/matzehuels/timeline/pkg/pipeline
// [viewer]: github.com/matzehuels/timeline/pkg/viewer
// [errors]: github.com/matzehuels/timeline/pkg/errors
// [observability]: github.com/matzehuels/timeline/pkg/observability
// [fonts]: github.com/matzehuels/timeline/pkg/fonts
// [buildinfo]: github.com/matzehuels/timeline/pkg/buildinfo
package pkg
