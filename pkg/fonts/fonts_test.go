package fonts

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFace(t *testing.T) {
	for _, w := range []Weight{Regular, Bold} {
		face, err := Face(12, w)
		if err != nil {
			t.Fatalf("Face(12, %d): %v", w, err)
		}
		adv := font.MeasureString(face, "timeline")
		if adv <= 0 {
			t.Errorf("MeasureString() = %v, want > 0", adv)
		}
	}
}

func TestFaceScalesWithSize(t *testing.T) {
	small, _ := Face(10, Regular)
	large, _ := Face(20, Regular)

	ws := font.MeasureString(small, "abc").Round()
	wl := font.MeasureString(large, "abc").Round()
	if wl <= ws {
		t.Errorf("20px width %d should exceed 10px width %d", wl, ws)
	}
}

func TestEstimateWidth(t *testing.T) {
	if got := EstimateWidth("", 12); got != 0 {
		t.Errorf("EstimateWidth(\"\") = %v, want 0", got)
	}
	if EstimateWidth("abcd", 12) != 2*EstimateWidth("ab", 12) {
		t.Error("EstimateWidth should be linear in length")
	}
	if EstimateWidth("äö", 10) != EstimateWidth("ab", 10) {
		t.Error("EstimateWidth should count runes, not bytes")
	}
}
