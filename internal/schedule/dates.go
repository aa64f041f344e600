// Package schedule is the pure data-transform core: it turns a flat task
// collection into ordered list views and calendar grid projections, and
// computes the field updates a calendar drop or due-date edit must persist.
// Nothing in this package touches storage or HTTP.
package schedule

import (
	"fmt"
	"time"
)

const dueDateLayout = "2006-01-02"

// SameDay reports whether two instants fall on the same calendar day.
// Each instant is read through its own location, so a task stored in UTC
// still lands on the local day the user scheduled it.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfWeek returns midnight of the Sunday starting the week containing d.
func StartOfWeek(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day-int(d.Weekday()), 0, 0, 0, 0, d.Location())
}

// FormatHour renders an hour 0-23 as a 12-hour clock label.
func FormatHour(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// ParseDueDate parses a strict YYYY-MM-DD calendar date as midnight in loc.
// It never routes the value through another timezone, so the calendar day
// is preserved exactly as written.
func ParseDueDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dueDateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: %w", s, err)
	}
	return t, nil
}

// FormatDueDate renders a calendar date in the canonical YYYY-MM-DD shape.
func FormatDueDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}
