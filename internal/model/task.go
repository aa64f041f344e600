package model

import "time"

// Priority is the user-facing priority label of a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	PriorityUnsure Priority = "Unsure"
)

// Rank maps a priority to its sort weight. Unknown values rank below Unsure.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 4
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 2
	case PriorityUnsure:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// Task is a user-owned to-do item. DueDate is a pure calendar date in
// YYYY-MM-DD form and is never stored as a timestamp, so a timezone shift
// cannot move it across a date boundary. ScheduledDate duplicates
// ReminderTime for compatibility with older records; ReminderTime is
// canonical and wins when the two disagree.
type Task struct {
	ID            string     `json:"id"`
	UserID        string     `json:"-"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	DueDate       string     `json:"dueDate"`
	Priority      Priority   `json:"priority"`
	Tag           string     `json:"tag,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	ReminderTime  *time.Time `json:"reminderTime,omitempty"`
	Completed     bool       `json:"completed"`
	ReminderSent  bool       `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// ScheduledInstant returns the task's calendar placement, preferring
// ReminderTime over the deprecated ScheduledDate alias. The second return
// is false for tasks that have never been scheduled.
func (t Task) ScheduledInstant() (time.Time, bool) {
	if t.ReminderTime != nil {
		return *t.ReminderTime, true
	}
	if t.ScheduledDate != nil {
		return *t.ScheduledDate, true
	}
	return time.Time{}, false
}
