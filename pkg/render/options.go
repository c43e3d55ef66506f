package render

import "github.com/matzehuels/timeline/pkg/timeline"

// Option configures rendering.
type Option func(*config)

type config struct {
	width  float64
	height float64
	scale  float64
}

// WithSize sets the logical canvas size in pixels.
func WithSize(width, height int) Option {
	return func(c *config) {
		if width > 0 && height > 0 {
			c.width, c.height = float64(width), float64(height)
		}
	}
}

// WithScale multiplies the output resolution without changing the layout.
func WithScale(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithImageSettings applies the size and scale of a document's out_img
// as given. Unlike WithSize and WithScale it keeps invalid values, so
// RenderPNG reports them.
func WithImageSettings(img timeline.ImageSettings) Option {
	return func(c *config) {
		c.width, c.height = float64(img.Width), float64(img.Height)
		c.scale = img.Scale
	}
}

func newConfig(opts ...Option) config {
	c := config{
		width:  timeline.DefaultImageWidth,
		height: timeline.DefaultImageHeight,
		scale:  timeline.DefaultImageScale,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
