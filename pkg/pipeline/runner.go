package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/render"
	"github.com/matzehuels/timeline/pkg/timeline"
	"github.com/matzehuels/timeline/pkg/viewer"
)

// Viewer displays a rendered HTML page.
type Viewer interface {
	Show(ctx context.Context, page []byte) error
}

// Runner encapsulates pipeline execution.
//
// The Runner doesn't store pipeline results. Multiple goroutines can use
// the same Runner as long as its Diagnostics is safe for concurrent use.
type Runner struct {
	Logger      *log.Logger
	Diagnostics timeline.Diagnostics
	Viewer      Viewer

	// Clock supplies "now" for documents read without a settings.now.
	Clock func() time.Time
}

// NewRunner creates a runner.
// If logger is nil, log.Default() is used.
// If diag is nil, advisories are only collected into the result.
// If v is nil, pages are shown with the system browser.
func NewRunner(logger *log.Logger, diag timeline.Diagnostics, v Viewer) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if diag == nil {
		diag = timeline.Discard
	}
	if v == nil {
		v = viewer.New(viewer.WithLogger(logger))
	}
	return &Runner{
		Logger:      logger,
		Diagnostics: diag,
		Viewer:      v,
		Clock:       time.Now,
	}
}

// Execute runs the complete load → build → write pipeline for the document
// at path.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Series = len(doc.Data)

	r.Logger.Debug("loaded document",
		"path", path,
		"series", len(doc.Data),
		"duration", result.Stats.LoadTime)

	// Stage 2: Build
	buildStart := time.Now()
	fig, advisories, err := r.Build(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Figure = fig
	result.Advisories = advisories
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Plotted = fig.Positions()
	result.Stats.Segments = len(fig.Segments)
	result.Stats.Annotations = len(fig.Annotations)

	r.Logger.Debug("built figure",
		"plotted", result.Stats.Plotted,
		"segments", len(fig.Segments),
		"annotations", len(fig.Annotations),
		"advisories", len(advisories),
		"duration", result.Stats.BuildTime)

	// Stage 3: Write
	writeStart := time.Now()
	outputs, err := r.Write(ctx, doc, fig, opts)
	result.Outputs = outputs
	result.Stats.WriteTime = time.Since(writeStart)
	if err != nil {
		return result, err
	}

	r.Logger.Debug("wrote outputs",
		"files", len(outputs),
		"duration", result.Stats.WriteTime)

	return result, nil
}

// Load reads the document at path.
func (r *Runner) Load(ctx context.Context, path string) (*timeline.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return timeline.Load(path)
}

// Build converts doc into a figure. Advisories go to the runner's
// Diagnostics and are also returned.
func (r *Runner) Build(ctx context.Context, doc *timeline.Document) (*timeline.Figure, []timeline.Advisory, error) {
	collected := &timeline.Collector{}
	opts := []timeline.BuildOption{timeline.WithDiagnostics(timeline.Tee(r.Diagnostics, collected))}
	if r.Clock != nil {
		opts = append(opts, timeline.WithClock(r.Clock))
	}
	fig, err := timeline.Build(ctx, doc, opts...)
	if err != nil {
		return nil, nil, err
	}
	return fig, collected.Advisories(), nil
}

// Write performs the outputs selected by opts, in the order image, HTML,
// JSON, display. It returns the files written before any error.
func (r *Runner) Write(ctx context.Context, doc *timeline.Document, fig *timeline.Figure, opts Options) ([]Output, error) {
	var outputs []Output

	if opts.SaveImage || opts.SaveHTML || opts.Show {
		img := doc.OutImg
		if err := errors.ValidateImageSize(img.Width, img.Height, img.Scale); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "out_img")
		}
		if err := render.ValidateColors(fig); err != nil {
			return nil, err
		}
	}

	if opts.SaveImage {
		out, err := r.saveImage(ctx, fig, doc.OutImg)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}

	if opts.SaveHTML {
		if !doc.HasOutHTMLPath {
			return outputs, errors.New(errors.ErrCodeMissingKey, "out_html_path is required to save HTML")
		}
		out, err := r.saveArtifact(ctx, fig, FormatHTML, doc.OutHTMLPath, doc.OutImg)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}

	if opts.JSONPath != "" {
		out, err := r.saveArtifact(ctx, fig, FormatJSON, opts.JSONPath, doc.OutImg)
		if err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}

	if opts.Show {
		if err := r.Show(ctx, fig, doc.OutImg); err != nil {
			return outputs, err
		}
	}
	return outputs, nil
}

// Show renders the interactive page and hands it to the viewer.
func (r *Runner) Show(ctx context.Context, fig *timeline.Figure, img timeline.ImageSettings) error {
	page, err := Render(ctx, fig, FormatHTML, img)
	if err != nil {
		return err
	}
	if r.Viewer == nil {
		return errors.New(errors.ErrCodeInternal, "no viewer configured")
	}
	r.Logger.Debug("showing figure", "bytes", len(page))
	if err := r.Viewer.Show(ctx, page); err != nil {
		return fmt.Errorf("show figure: %w", err)
	}
	return nil
}

func (r *Runner) saveImage(ctx context.Context, fig *timeline.Figure, img timeline.ImageSettings) (Output, error) {
	path := img.Path
	if path == "" {
		path = timeline.DefaultImagePath
	}
	format, err := ImageFormat(path)
	if err != nil {
		return Output{}, err
	}
	return r.saveArtifact(ctx, fig, format, path, img)
}

func (r *Runner) saveArtifact(ctx context.Context, fig *timeline.Figure, format, path string, img timeline.ImageSettings) (Output, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return Output{}, err
	}
	data, err := Render(ctx, fig, format, img)
	if err != nil {
		return Output{}, err
	}
	if err := writeFile(path, data); err != nil {
		return Output{}, err
	}
	r.Logger.Debug("wrote file", "format", format, "path", path, "bytes", len(data))
	return Output{Format: format, Path: path, Size: len(data)}, nil
}
