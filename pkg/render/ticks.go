package render

import "time"

// tickStep is a calendar step between date ticks.
type tickStep struct {
	years, months, days int
}

// tickSteps are tried from finest to coarsest.
var tickSteps = []tickStep{
	{days: 1}, {days: 2}, {days: 7}, {days: 14},
	{months: 1}, {months: 2}, {months: 3}, {months: 6},
	{years: 1}, {years: 2}, {years: 5}, {years: 10},
	{years: 20}, {years: 50}, {years: 100},
}

// dateTicks returns calendar-aligned tick instants within [lo, hi], using
// the finest step that yields at most maxTicks ticks.
func dateTicks(lo, hi time.Time, maxTicks int) []time.Time {
	maxTicks = max(2, maxTicks)
	for _, step := range tickSteps {
		if ticks, ok := stepTicks(lo, hi, step, maxTicks); ok {
			return ticks
		}
	}
	ticks, _ := stepTicks(lo, hi, tickSteps[len(tickSteps)-1], -1)
	return ticks
}

// stepTicks lists ticks at step. ok is false once more than limit ticks
// would be produced; a negative limit disables the check.
func stepTicks(lo, hi time.Time, step tickStep, limit int) ([]time.Time, bool) {
	var out []time.Time
	for t := alignTick(lo, step); !t.After(hi); t = t.AddDate(step.years, step.months, step.days) {
		if t.Before(lo) {
			continue
		}
		out = append(out, t)
		if limit >= 0 && len(out) > limit {
			return nil, false
		}
	}
	return out, true
}

// alignTick returns the first step boundary at or before lo.
func alignTick(lo time.Time, step tickStep) time.Time {
	y, m, d := lo.Date()
	switch {
	case step.years > 0:
		y -= mod(y, step.years)
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	case step.months > 0:
		m0 := int(m) - 1
		m0 -= mod(m0, step.months)
		return time.Date(y, time.Month(m0+1), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}
