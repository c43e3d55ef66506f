package timeline

import (
	"strings"
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
)

const (
	// dateLayout is the canonical interval date format.
	dateLayout = "2006-01-02"

	// dateParseLayout also accepts months and days without a leading zero.
	dateParseLayout = "2006-1-2"
)

// nowLayouts are tried in order when parsing settings.now.
var nowLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	dateParseLayout,
}

// ParseDate parses an interval bound written as YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateParseLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrap(errors.ErrCodeInvalidDate, err, "date %q is not YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseNow parses the settings.now timestamp. Any zone offset is dropped
// and the wall clock time kept, so "now" lines up with the zone-less
// interval dates.
func ParseNow(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range nowLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return wallClock(t), nil
		}
	}
	return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "settings.now %q is not an ISO date or datetime", s)
}

// FormatDate formats t the way interval bounds are written.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// wallClock returns t's wall clock reading in UTC.
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// resolveEnd parses an interval end, substituting now for the "now" token.
func resolveEnd(s string, now time.Time) (time.Time, error) {
	if s == NowToken {
		return now, nil
	}
	return ParseDate(s)
}
