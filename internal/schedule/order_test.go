package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

func task(id string, opts ...func(*model.Task)) model.Task {
	t := model.Task{
		ID:       id,
		Title:    "task " + id,
		DueDate:  "2024-06-01",
		Priority: model.PriorityMedium,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withDue(d string) func(*model.Task) { return func(t *model.Task) { t.DueDate = d } }
func withCompleted() func(*model.Task)   { return func(t *model.Task) { t.Completed = true } }

func withPriority(p model.Priority) func(*model.Task) {
	return func(t *model.Task) { t.Priority = p }
}

func withCreated(at time.Time) func(*model.Task) {
	return func(t *model.Task) { t.CreatedAt = at }
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestOrderCreation(t *testing.T) {
	day := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	in := []model.Task{
		task("b", withCreated(day.Add(2*time.Hour))),
		task("c"), // zero CreatedAt sorts first
		task("a", withCreated(day)),
	}

	got := Order(in, SortNone)
	assert.Equal(t, []string{"c", "a", "b"}, ids(got))
	// input untouched
	assert.Equal(t, []string{"b", "c", "a"}, ids(in))
}

func TestOrderPriority(t *testing.T) {
	in := []model.Task{
		task("done-high", withPriority(model.PriorityHigh), withCompleted()),
		task("low", withPriority(model.PriorityLow)),
		task("high", withPriority(model.PriorityHigh)),
		task("unsure", withPriority(model.PriorityUnsure)),
		task("medium", withPriority(model.PriorityMedium)),
		task("done-low", withPriority(model.PriorityLow), withCompleted()),
	}

	got := Order(in, SortPriority)
	assert.Equal(t, []string{"high", "medium", "low", "unsure", "done-high", "done-low"}, ids(got))
}

func TestOrderPriorityTiesByDueDate(t *testing.T) {
	in := []model.Task{
		task("later", withPriority(model.PriorityHigh), withDue("2024-06-20")),
		task("sooner", withPriority(model.PriorityHigh), withDue("2024-06-05")),
		task("malformed", withPriority(model.PriorityHigh), withDue("soon")),
	}

	got := Order(in, SortPriority)
	assert.Equal(t, []string{"sooner", "later", "malformed"}, ids(got))
}

func TestOrderDeadline(t *testing.T) {
	in := []model.Task{
		task("done-early", withDue("2024-01-01"), withCompleted()),
		task("c", withDue("2024-07-01")),
		task("a", withDue("2024-05-01")),
		task("b", withDue("2024-06-15")),
	}

	got := Order(in, SortDeadline)
	assert.Equal(t, []string{"a", "b", "c", "done-early"}, ids(got))
}

func TestOrderStableOnTies(t *testing.T) {
	in := []model.Task{
		task("first", withPriority(model.PriorityHigh)),
		task("second", withPriority(model.PriorityHigh)),
		task("third", withPriority(model.PriorityHigh)),
	}

	got := Order(in, SortPriority)
	assert.Equal(t, []string{"first", "second", "third"}, ids(got))
}

// Every completed task sorts after every incomplete one, and within each
// partition priority rank never increases.
func TestOrderPriorityPartitionProperty(t *testing.T) {
	in := []model.Task{
		task("1", withPriority(model.PriorityLow), withCompleted()),
		task("2", withPriority(model.PriorityHigh)),
		task("3", withPriority("Bogus")),
		task("4", withPriority(model.PriorityUnsure), withCompleted()),
		task("5", withPriority(model.PriorityMedium)),
		task("6", withPriority(model.PriorityHigh), withCompleted()),
	}

	got := Order(in, SortPriority)
	require.Len(t, got, len(in))

	sawCompleted := false
	lastRank := 5
	for _, task := range got {
		if task.Completed && !sawCompleted {
			sawCompleted = true
			lastRank = 5
		}
		if sawCompleted {
			assert.True(t, task.Completed, "incomplete task after a completed one")
		}
		rank := task.Priority.Rank()
		assert.LessOrEqual(t, rank, lastRank)
		lastRank = rank
	}
}

func TestOrderEveryModeKeepsAllTasks(t *testing.T) {
	in := []model.Task{
		task("a"), task("b", withCompleted()), task("c", withDue("bad")),
	}

	for _, mode := range []SortMode{SortNone, SortPriority, SortDeadline} {
		got := Order(in, mode)
		assert.ElementsMatch(t, ids(in), ids(got), "mode %s", mode)
	}
}

func TestParseSortMode(t *testing.T) {
	for in, want := range map[string]SortMode{
		"":         SortNone,
		"none":     SortNone,
		"priority": SortPriority,
		"ddl":      SortDeadline,
	} {
		got, err := ParseSortMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseSortMode("deadline")
	assert.Error(t, err)
}
