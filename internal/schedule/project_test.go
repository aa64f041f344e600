package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

func scheduledTask(id string, at time.Time) model.Task {
	t := task(id)
	t.ReminderTime = &at
	t.ScheduledDate = &at
	return t
}

func TestProjectMonthGridShape(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantLead  int
		wantDays  int
		wantTitle string
	}{
		{
			// September 2024 starts on a Sunday.
			"no leading cells",
			time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC),
			0, 30, "September 2024",
		},
		{
			// October 2024 starts on a Tuesday.
			"two leading cells",
			time.Date(2024, time.October, 31, 0, 0, 0, 0, time.UTC),
			2, 31, "October 2024",
		},
		{
			// March 2024 starts on a Friday.
			"five leading cells",
			time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			5, 31, "March 2024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Project(nil, tt.ref, ViewMonth, time.Time{})
			require.Len(t, g.Cells, tt.wantLead+tt.wantDays)
			assert.Equal(t, tt.wantTitle, g.Title)

			for i := 0; i < tt.wantLead; i++ {
				assert.True(t, g.Cells[i].Empty, "cell %d should be a placeholder", i)
			}
			for day := 1; day <= tt.wantDays; day++ {
				cell := g.Cells[tt.wantLead+day-1]
				assert.False(t, cell.Empty)
				assert.Equal(t, day, cell.Day)
				assert.False(t, cell.OtherMonth)
			}
		})
	}
}

func TestProjectMonthAssignsTasksToDays(t *testing.T) {
	ref := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		scheduledTask("mid", time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)),
		scheduledTask("same-day", time.Date(2024, time.March, 15, 22, 0, 0, 0, time.UTC)),
		scheduledTask("other-month", time.Date(2024, time.April, 2, 9, 0, 0, 0, time.UTC)),
		task("unscheduled"),
	}

	g := Project(tasks, ref, ViewMonth, time.Time{})

	assigned := g.TasksAt(CellKey{Year: 2024, Month: time.March, Day: 15, Hour: -1})
	assert.Equal(t, []string{"mid", "same-day"}, ids(assigned))

	total := 0
	for _, c := range g.Cells {
		total += len(c.Tasks)
	}
	assert.Equal(t, 2, total, "unscheduled and out-of-month tasks are never placed")
}

func TestProjectMonthTodayFlag(t *testing.T) {
	now := time.Date(2024, time.March, 15, 13, 0, 0, 0, time.UTC)
	g := Project(nil, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), ViewMonth, now)

	for _, c := range g.Cells {
		assert.Equal(t, c.Day == 15 && !c.Empty, c.Today, "day %d", c.Day)
	}
}

func TestProjectWeek(t *testing.T) {
	// Wednesday 2024-05-01; its Sunday-anchored week is Apr 28 - May 4.
	ref := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		scheduledTask("sun", time.Date(2024, time.April, 28, 8, 0, 0, 0, time.UTC)),
		scheduledTask("sat", time.Date(2024, time.May, 4, 20, 0, 0, 0, time.UTC)),
		scheduledTask("outside", time.Date(2024, time.May, 5, 8, 0, 0, 0, time.UTC)),
	}

	g := Project(tasks, ref, ViewWeek, time.Time{})
	require.Len(t, g.Cells, 7)
	assert.Equal(t, "Apr 28 - May 4, 2024", g.Title)

	first, last := g.Cells[0], g.Cells[6]
	assert.Equal(t, 28, first.Day)
	assert.True(t, first.OtherMonth, "April cell in a May-anchored week")
	assert.Equal(t, []string{"sun"}, ids(first.Tasks))

	assert.Equal(t, 4, last.Day)
	assert.False(t, last.OtherMonth)
	assert.Equal(t, []string{"sat"}, ids(last.Tasks))

	total := 0
	for _, c := range g.Cells {
		total += len(c.Tasks)
	}
	assert.Equal(t, 2, total)
}

func TestProjectDay(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		scheduledTask("afternoon", time.Date(2024, time.March, 15, 14, 45, 0, 0, time.UTC)),
		scheduledTask("midnight", time.Date(2024, time.March, 15, 0, 10, 0, 0, time.UTC)),
		scheduledTask("other-day", time.Date(2024, time.March, 16, 14, 0, 0, 0, time.UTC)),
	}

	g := Project(tasks, ref, ViewDay, time.Time{})
	require.Len(t, g.Cells, 24)
	assert.Equal(t, "March 15, 2024", g.Title)

	// 14:45 floors to the hour-14 cell, never 15.
	assert.Equal(t, []string{"afternoon"}, ids(g.TasksAt(CellKey{Year: 2024, Month: time.March, Day: 15, Hour: 14})))
	assert.Empty(t, g.TasksAt(CellKey{Year: 2024, Month: time.March, Day: 15, Hour: 15}))
	assert.Equal(t, []string{"midnight"}, ids(g.TasksAt(CellKey{Year: 2024, Month: time.March, Day: 15, Hour: 0})))

	assert.Equal(t, "12 AM", g.Cells[0].Label)
	assert.Equal(t, "11 PM", g.Cells[23].Label)
}

func TestProjectReminderTimeWins(t *testing.T) {
	ref := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	reminder := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	legacy := time.Date(2024, time.March, 20, 9, 0, 0, 0, time.UTC)
	conflicted := task("conflicted")
	conflicted.ReminderTime = &reminder
	conflicted.ScheduledDate = &legacy

	// Older records carry only the deprecated scheduledDate field.
	migrated := task("migrated")
	migrated.ScheduledDate = &reminder

	g := Project([]model.Task{conflicted, migrated}, ref, ViewMonth, time.Time{})
	assigned := g.TasksAt(CellKey{Year: 2024, Month: time.March, Day: 15, Hour: -1})
	assert.Equal(t, []string{"conflicted", "migrated"}, ids(assigned))
	assert.Empty(t, g.TasksAt(CellKey{Year: 2024, Month: time.March, Day: 20, Hour: -1}))
}

// Projecting tasks scheduled on distinct days recovers each task exactly
// once across the whole grid.
func TestProjectRoundTrip(t *testing.T) {
	ref := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	var tasks []model.Task
	for day := 1; day <= 30; day++ {
		tasks = append(tasks, scheduledTask(
			FormatDueDate(2024, time.June, day),
			time.Date(2024, time.June, day, 10, 0, 0, 0, time.UTC),
		))
	}

	g := Project(tasks, ref, ViewMonth, time.Time{})

	seen := make(map[string]int)
	for _, c := range g.Cells {
		for _, task := range c.Tasks {
			seen[task.ID]++
		}
	}
	require.Len(t, seen, len(tasks))
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %s placed %d times", id, n)
	}
}

func TestParseView(t *testing.T) {
	for in, want := range map[string]View{
		"":      ViewMonth,
		"month": ViewMonth,
		"week":  ViewWeek,
		"day":   ViewDay,
	} {
		got, err := ParseView(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseView("year")
	assert.Error(t, err)
}
