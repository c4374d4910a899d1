package stats

import (
	"time"

	"github.com/barrero/supertareas/internal/model"
)

// Window restricts an aggregation to a recent time span.
type Window string

const (
	WindowAll     Window = "all"
	WindowWeekly  Window = "weekly"  // since the most recent Monday
	WindowMonthly Window = "monthly" // since the first of the current month
)

// ParseWindow maps a query-string value to a Window, defaulting to all time.
func ParseWindow(s string) Window {
	switch s {
	case string(WindowWeekly):
		return WindowWeekly
	case string(WindowMonthly):
		return WindowMonthly
	default:
		return WindowAll
	}
}

// start returns the inclusive lower bound of the window in the local time
// zone of now, and whether a bound applies at all.
func (w Window) start(now time.Time) (time.Time, bool) {
	switch w {
	case WindowWeekly:
		day := now
		for day.Weekday() != time.Monday {
			day = day.AddDate(0, 0, -1)
		}
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location()), true
	case WindowMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// filterCompletions keeps completions whose date falls inside the window.
// ISO dates compare correctly as strings.
func (w Window) filterCompletions(cs []model.TaskCompletion, now time.Time) []model.TaskCompletion {
	start, ok := w.start(now)
	if !ok {
		return cs
	}
	cutoff := model.DateString(start)
	var out []model.TaskCompletion
	for _, c := range cs {
		if c.Date >= cutoff {
			out = append(out, c)
		}
	}
	return out
}

// filterExtraPoints keeps ledger entries stamped inside the window.
func (w Window) filterExtraPoints(es []model.ExtraPointEntry, now time.Time) []model.ExtraPointEntry {
	start, ok := w.start(now)
	if !ok {
		return es
	}
	cutoff := start.UnixMilli()
	var out []model.ExtraPointEntry
	for _, e := range es {
		if e.Timestamp >= cutoff {
			out = append(out, e)
		}
	}
	return out
}
