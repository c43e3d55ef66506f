package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/timeline/pkg/buildinfo"
	"github.com/matzehuels/timeline/pkg/observability"
	"github.com/matzehuels/timeline/pkg/pipeline"
	"github.com/matzehuels/timeline/pkg/timeline"
	"github.com/matzehuels/timeline/pkg/viewer"
)

// appName is the application name used for display.
const appName = "timeline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// viewer overrides the browser viewer; tests set it.
	viewer pipeline.Viewer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// runOpts holds the command-line flags of the root command.
type runOpts struct {
	imgShow  bool   // open the figure in a browser
	htmlSave bool   // write the HTML page to out_html_path
	jsonSave string // write the figure JSON to this path
}

// RootCommand creates the root cobra command. The root command renders the
// document named by its single argument.
func (c *CLI) RootCommand() *cobra.Command {
	var opts runOpts

	root := &cobra.Command{
		Use:   appName + " <json_path>",
		Short: "Timeline draws interval series from a JSON document as a chart",
		Long: `Timeline reads a document describing named series of date intervals and
draws them as horizontal bars on a date axis, one row per series.

The image is always written to out_img.path (timeline.png by default); the
extension selects PNG, SVG or figure JSON. YAML (.yaml, .yml) and TOML
(.toml) documents are accepted as well as JSON.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTimeline(cmd.Context(), args[0], opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.Flags().BoolVar(&opts.imgShow, "img_show", false, "show the figure in a browser")
	root.Flags().BoolVar(&opts.htmlSave, "html_save", false, "save an interactive HTML page to out_html_path")
	root.Flags().StringVar(&opts.jsonSave, "json_save", "", "save the figure as JSON to `path`")

	_ = root.RegisterFlagCompletionFunc("json_save", completeJSONPath)

	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner that prints advisories as warnings.
func (c *CLI) newRunner(ctx context.Context) *pipeline.Runner {
	logger := loggerFromContext(ctx)

	diag := timeline.Diagnostics(warningDiagnostics{})
	if logger.GetLevel() <= log.DebugLevel {
		diag = timeline.Tee(diag, timeline.LogDiagnostics{Logger: logger})
	}

	v := c.viewer
	if v == nil {
		v = &spinnerViewer{next: viewer.New(viewer.WithLogger(logger))}
	}
	return pipeline.NewRunner(logger, diag, v)
}

// registerHooks logs build and render timings at debug level.
func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetBuildHooks(h)
	observability.SetRenderHooks(h)
}
