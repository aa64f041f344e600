package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

// SortMode selects a list ordering.
type SortMode string

const (
	SortNone     SortMode = "none"     // creation order
	SortPriority SortMode = "priority" // priority rank, completed last
	SortDeadline SortMode = "ddl"      // due date, completed last
)

// ParseSortMode accepts the wire value of a sort mode; empty means SortNone.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "", SortNone:
		return SortNone, nil
	case SortPriority:
		return SortPriority, nil
	case SortDeadline:
		return SortDeadline, nil
	}
	return "", fmt.Errorf("unknown sort mode %q", s)
}

// Order returns a new slice with every input task exactly once, in a stable
// total order for the given mode. The input slice is not modified.
//
// Creation order puts tasks with a zero CreatedAt first. In priority and
// deadline modes every completed task sorts after every incomplete task;
// ties within a group fall back to creation order of the input.
func Order(tasks []model.Task, mode SortMode) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	switch mode {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if a.Completed != b.Completed {
				return !a.Completed
			}
			if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
				return ra > rb
			}
			return dueBefore(a.DueDate, b.DueDate)
		})
	case SortDeadline:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if a.Completed != b.Completed {
				return !a.Completed
			}
			return dueBefore(a.DueDate, b.DueDate)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out
}

// dueBefore compares two due-date strings as calendar dates. Malformed or
// empty dates sort after every valid one.
func dueBefore(a, b string) bool {
	ta, errA := ParseDueDate(a, time.UTC)
	tb, errB := ParseDueDate(b, time.UTC)
	if errA != nil || errB != nil {
		return errA == nil && errB != nil
	}
	return ta.Before(tb)
}
