package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/observability"
)

// logHooks reports build and render events to a logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnBuildStart(_ context.Context, series int) {
	h.logger.Debug("building figure", "series", series)
}

func (h logHooks) OnBuildComplete(_ context.Context, s observability.BuildStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("build complete",
		"plotted", s.Plotted,
		"segments", s.Segments,
		"annotations", s.Annotations,
		"advisories", s.Advisories,
		"duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("rendering", "format", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("render complete", "format", format, "bytes", size, "duration", d)
}
