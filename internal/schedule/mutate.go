package schedule

import (
	"time"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

// DefaultDropHour is the time-of-day assumed when a task is dropped on a
// whole-day cell: noon.
const DefaultDropHour = 12

// Placement holds the three fields every schedule-affecting mutation must
// write together, so DueDate, ScheduledDate and ReminderTime can never
// disagree after an update.
type Placement struct {
	DueDate       string
	ScheduledDate time.Time
	ReminderTime  time.Time
}

// Apply copies the placement onto a task.
func (p Placement) Apply(t *model.Task) {
	t.DueDate = p.DueDate
	sd := p.ScheduledDate
	rt := p.ReminderTime
	t.ScheduledDate = &sd
	t.ReminderTime = &rt
}

// PlaceOnCell computes the fields to persist when a task is dropped on a
// calendar cell. hour is the day-view slot; pass a value outside [0,23]
// (or DefaultDropHour) for month and week cells, which default to noon.
// The due date is recomputed from the same local day, so calendar
// placement stays authoritative over the due date.
func PlaceOnCell(year int, month time.Month, day, hour int, loc *time.Location) Placement {
	if loc == nil {
		loc = time.Local
	}
	if hour < 0 || hour > 23 {
		hour = DefaultDropHour
	}
	at := time.Date(year, month, day, hour, 0, 0, 0, loc)
	y, m, d := at.Date()
	return Placement{
		DueDate:       FormatDueDate(y, m, d),
		ScheduledDate: at,
		ReminderTime:  at,
	}
}

// RetargetDueDate computes the fields to persist when only the due date is
// edited. The existing time-of-day of the scheduled instant is preserved
// and only the date portion replaced; a task that has never been scheduled
// defaults to noon.
func RetargetDueDate(t model.Task, newDate string, loc *time.Location) (Placement, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := ParseDueDate(newDate, loc)
	if err != nil {
		return Placement{}, err
	}

	hour, minute := DefaultDropHour, 0
	if at, ok := t.ScheduledInstant(); ok {
		hour, minute = at.Hour(), at.Minute()
	}

	y, m, d := day.Date()
	at := time.Date(y, m, d, hour, minute, 0, 0, loc)
	return Placement{
		DueDate:       FormatDueDate(y, m, d),
		ScheduledDate: at,
		ReminderTime:  at,
	}, nil
}
