package errors

import (
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain file", "timeline.png", false},
		{"nested file", "out/timeline.html", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"null byte", "foo\x00.png", true},
		{"newline", "foo\n.png", true},
		{"existing directory", dir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateImageSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		scale         float64
		wantErr       bool
	}{
		{"defaults", 1200, 600, 1, false},
		{"fractional scale", 800, 400, 0.5, false},
		{"zero width", 0, 600, 1, true},
		{"negative height", 1200, -1, 1, true},
		{"zero scale", 1200, 600, 0, true},
		{"huge", 100000, 100000, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageSize(tt.width, tt.height, tt.scale)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageSize(%d, %d, %g) error = %v, wantErr %v", tt.width, tt.height, tt.scale, err, tt.wantErr)
			}
		})
	}
}
