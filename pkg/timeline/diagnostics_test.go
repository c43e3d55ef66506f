package timeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestCollector(t *testing.T) {
	var c Collector
	c.Advise(Advisory{Kind: AdvisoryOverlap, Series: "a"})
	c.Advise(Advisory{Kind: AdvisoryMissingBounds, Series: "b"})
	c.Advise(Advisory{Kind: AdvisoryOverlap, Series: "c"})

	if got := c.Count(AdvisoryOverlap); got != 2 {
		t.Errorf("Count(overlap) = %d, want 2", got)
	}
	got := c.Advisories()
	if len(got) != 3 || got[1].Series != "b" {
		t.Errorf("Advisories() = %v", got)
	}

	// The returned slice is a copy.
	got[0].Series = "changed"
	if c.Advisories()[0].Series != "a" {
		t.Error("Advisories() should return a copy")
	}
}

func TestLogDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	LogDiagnostics{Logger: logger}.Advise(Advisory{
		Kind:    AdvisoryMissingBounds,
		Series:  "backend",
		Message: "interval has no start or end",
		Content: `{"start": "2020-01-01"}`,
	})

	out := buf.String()
	for _, want := range []string{"interval has no start or end", "backend", "missing-bounds"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

func TestTee(t *testing.T) {
	var a, b Collector
	d := Tee(&a, nil, &b)
	d.Advise(Advisory{Kind: AdvisoryOverlap})

	if a.Count(AdvisoryOverlap) != 1 || b.Count(AdvisoryOverlap) != 1 {
		t.Error("Tee should forward to every diagnostics sink")
	}
}

func TestAdvisoryString(t *testing.T) {
	a := Advisory{Series: "s", Message: "m"}
	if got := a.String(); got != "s: m" {
		t.Errorf("String() = %q", got)
	}
	a.Content = "{}"
	if got := a.String(); got != "s: m: {}" {
		t.Errorf("String() = %q", got)
	}
}
