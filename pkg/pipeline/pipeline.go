// Package pipeline runs a timeline document through every stage the
// command line needs.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode the JSON, YAML or TOML document
//  2. Build: turn the document into a figure, reporting advisories
//  3. Write: save the image, the HTML page and the figure JSON, then
//     optionally show the page in a browser
//
// Each stage can be run on its own through the [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(logger, timeline.LogDiagnostics{Logger: logger}, nil)
//	result, err := runner.Execute(ctx, "roadmap.json", pipeline.Options{
//	    SaveImage: true,
//	    SaveHTML:  true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, out := range result.Outputs {
//	    fmt.Println(out.Format, out.Path)
//	}
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatHTML = "html"
)

// ImageFormats is the set of formats an out_img path may select.
var ImageFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatJSON: true,
}

// ImageFormat returns the image format selected by the extension of path.
// A path without an extension is written as PNG.
func ImageFormat(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return FormatPNG, nil
	}
	if err := ValidateImageFormat(ext); err != nil {
		return "", err
	}
	return ext, nil
}

// ValidateImageFormat checks that format can be written to out_img.
func ValidateImageFormat(format string) error {
	if !ImageFormats[format] {
		return errors.New(errors.ErrCodeUnsupportedFormat, "unsupported image format %q (must be one of: png, svg, json)", format)
	}
	return nil
}

// Options selects the outputs of a pipeline run.
type Options struct {
	// SaveImage writes the figure to the document's out_img path.
	SaveImage bool
	// SaveHTML writes an interactive page to out_html_path, which must be
	// present in the document.
	SaveHTML bool
	// JSONPath, when set, receives the figure as JSON.
	JSONPath string
	// Show opens the figure in a browser and waits until it was delivered.
	Show bool

	Logger *log.Logger
}

// DefaultOptions saves and shows the image and skips HTML.
func DefaultOptions() Options {
	return Options{SaveImage: true, Show: true}
}

// ValidateAndSetDefaults checks the options and fills in a silent logger.
func (o *Options) ValidateAndSetDefaults() error {
	if o.JSONPath != "" {
		if err := errors.ValidateOutputPath(o.JSONPath); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Document *timeline.Document
	Figure   *timeline.Figure

	// Outputs lists the written files in the order they were written.
	Outputs []Output

	// Advisories holds everything reported while building.
	Advisories []timeline.Advisory

	Stats Stats
}

// Output is one written file.
type Output struct {
	Format string
	Path   string
	Size   int
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Series      int
	Plotted     int
	Segments    int
	Annotations int
	LoadTime    time.Duration
	BuildTime   time.Duration
	WriteTime   time.Duration
}
