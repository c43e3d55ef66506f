package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/observability"
	"github.com/matzehuels/timeline/pkg/render"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Render generates the bytes of fig in one format, sized by img.
func Render(ctx context.Context, fig *timeline.Figure, format string, img timeline.ImageSettings) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()

	data, err := renderFormat(fig, format, img)

	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

func renderFormat(fig *timeline.Figure, format string, img timeline.ImageSettings) ([]byte, error) {
	opt := render.WithImageSettings(img)
	switch format {
	case FormatPNG:
		return render.RenderPNG(fig, opt)
	case FormatSVG:
		return render.RenderSVG(fig, opt), nil
	case FormatJSON:
		return render.RenderJSON(fig)
	case FormatHTML:
		return render.RenderHTML(fig, opt)
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format %q", format)
	}
}

// writeFile writes data to path, creating missing parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory for %s", path)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
