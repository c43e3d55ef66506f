package timeline

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// AdvisoryKind classifies a non-fatal build diagnostic.
type AdvisoryKind string

const (
	// AdvisoryOverlap reports two intervals of one series that overlap.
	AdvisoryOverlap AdvisoryKind = "overlap"

	// AdvisoryMissingBounds reports an interval without a start or end.
	// The interval is skipped.
	AdvisoryMissingBounds AdvisoryKind = "missing-bounds"
)

// Advisory is a non-fatal diagnostic raised while building a figure.
type Advisory struct {
	Kind    AdvisoryKind
	Series  string
	Message string

	// Content is the offending interval (or interval pair) as written.
	Content string
}

func (a Advisory) String() string {
	if a.Content == "" {
		return fmt.Sprintf("%s: %s", a.Series, a.Message)
	}
	return fmt.Sprintf("%s: %s: %s", a.Series, a.Message, a.Content)
}

// Diagnostics receives advisories during a build.
type Diagnostics interface {
	Advise(Advisory)
}

// DiagnosticsFunc adapts a function to the Diagnostics interface.
type DiagnosticsFunc func(Advisory)

// Advise calls f(a).
func (f DiagnosticsFunc) Advise(a Advisory) { f(a) }

// Discard drops every advisory.
var Discard Diagnostics = DiagnosticsFunc(func(Advisory) {})

// Collector records advisories in memory. It is safe for concurrent use.
type Collector struct {
	mu         sync.Mutex
	advisories []Advisory
}

// Advise records a.
func (c *Collector) Advise(a Advisory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.advisories = append(c.advisories, a)
}

// Advisories returns a copy of everything recorded so far.
func (c *Collector) Advisories() []Advisory {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Advisory, len(c.advisories))
	copy(out, c.advisories)
	return out
}

// Count returns how many advisories of kind were recorded.
func (c *Collector) Count(kind AdvisoryKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, a := range c.advisories {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// LogDiagnostics writes advisories to a logger at warn level.
type LogDiagnostics struct {
	Logger *log.Logger
}

// Advise logs a with its kind and series as structured fields.
func (d LogDiagnostics) Advise(a Advisory) {
	l := d.Logger
	if l == nil {
		l = log.Default()
	}
	kv := []any{"kind", a.Kind, "series", a.Series}
	if a.Content != "" {
		kv = append(kv, "content", a.Content)
	}
	l.Warn(a.Message, kv...)
}

// Tee fans advisories out to every non-nil d.
func Tee(ds ...Diagnostics) Diagnostics {
	return DiagnosticsFunc(func(a Advisory) {
		for _, d := range ds {
			if d != nil {
				d.Advise(a)
			}
		}
	})
}
