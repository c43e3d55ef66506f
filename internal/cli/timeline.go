package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/timeline/pkg/pipeline"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// runTimeline loads the document at path, builds the figure and writes the
// requested outputs. The image is always written.
func (c *CLI) runTimeline(ctx context.Context, path string, opts runOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)
	registerHooks(logger)

	runner := c.newRunner(ctx)
	result, err := runner.Execute(ctx, path, pipeline.Options{
		SaveImage: true,
		SaveHTML:  opts.htmlSave,
		JSONPath:  opts.jsonSave,
		Show:      opts.imgShow,
		Logger:    logger,
	})
	if result != nil {
		for _, out := range result.Outputs {
			printFile(out.Path)
		}
	}
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", path)
	printStats(result.Stats, len(result.Advisories))
	prog.done(fmt.Sprintf("Rendered %d series", result.Stats.Plotted))
	return nil
}

// warningDiagnostics prints advisories as terminal warnings.
type warningDiagnostics struct{}

func (warningDiagnostics) Advise(a timeline.Advisory) {
	switch a.Kind {
	case timeline.AdvisoryOverlap:
		printWarning("Overlapping intervals in %q: %s", a.Series, a.Content)
	case timeline.AdvisoryMissingBounds:
		printWarning("Interval in %q is missing start or end: %s", a.Series, a.Content)
	default:
		printWarning("%s", a)
	}
}

// spinnerViewer shows a spinner while waiting for the browser.
type spinnerViewer struct {
	next pipeline.Viewer
}

func (v *spinnerViewer) Show(ctx context.Context, page []byte) error {
	s := newSpinnerWithContext(ctx, "Waiting for the browser...")
	s.Start()
	err := v.next.Show(ctx, page)
	if err != nil {
		s.StopWithError("Could not show the figure")
		return err
	}
	s.StopWithSuccess("Opened figure in browser")
	return nil
}
