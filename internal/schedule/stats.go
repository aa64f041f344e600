package schedule

import (
	"math"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

// Stats are the aggregate counts shown on the profile page.
type Stats struct {
	Total          int `json:"totalTasks"`
	Completed      int `json:"completedTasks"`
	Pending        int `json:"pendingTasks"`
	CompletionRate int `json:"completionRate"` // rounded percent, 0 when empty
	HighPriority   int `json:"highPriorityCount"`
	MediumPriority int `json:"mediumPriorityCount"`
	LowPriority    int `json:"lowPriorityCount"`
	UnsurePriority int `json:"unsurePriorityCount"`
}

// Summarize computes profile statistics from a task snapshot.
func Summarize(tasks []model.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		switch t.Priority {
		case model.PriorityHigh:
			s.HighPriority++
		case model.PriorityMedium:
			s.MediumPriority++
		case model.PriorityLow:
			s.LowPriority++
		case model.PriorityUnsure:
			s.UnsurePriority++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
