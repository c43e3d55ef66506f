package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateOutputPath checks that path can name an output file.
//
// The rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Must not name an existing directory
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path %q contains control characters", path)
		}
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return New(ErrCodeInvalidPath, "output path %q is a directory", path)
	}

	return nil
}

// ValidateImageSize checks raster dimensions and scale factor.
func ValidateImageSize(width, height int, scale float64) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "image size must be positive, got %dx%d", width, height)
	}
	if scale <= 0 {
		return New(ErrCodeInvalidInput, "image scale must be positive, got %g", scale)
	}
	const maxPixels = 100_000_000
	w, h := float64(width)*scale, float64(height)*scale
	if w*h > maxPixels {
		return New(ErrCodeInvalidInput, "image of %.0fx%.0f pixels is too large", w, h)
	}
	return nil
}
