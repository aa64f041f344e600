package schedule

import (
	"fmt"
	"time"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

// View is the calendar granularity.
type View string

const (
	ViewMonth View = "month"
	ViewWeek  View = "week"
	ViewDay   View = "day"
)

// ParseView accepts the wire value of a view; empty means ViewMonth.
func ParseView(s string) (View, error) {
	switch View(s) {
	case "", ViewMonth:
		return ViewMonth, nil
	case ViewWeek:
		return ViewWeek, nil
	case ViewDay:
		return ViewDay, nil
	}
	return "", fmt.Errorf("unknown calendar view %q", s)
}

// CellKey identifies a grid cell. Hour is -1 for whole-day cells
// (month and week views) and 0-23 for day-view hour slots.
type CellKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
	Hour  int        `json:"hour"`
}

// Cell is one unit of the calendar grid with its assigned tasks.
// Empty cells are the placeholders padding the month grid before day 1;
// they carry no date and no tasks.
type Cell struct {
	CellKey
	Empty      bool         `json:"empty,omitempty"`
	Today      bool         `json:"today,omitempty"`
	OtherMonth bool         `json:"otherMonth,omitempty"`
	Label      string       `json:"label,omitempty"`
	Tasks      []model.Task `json:"tasks"`
}

// Grid is a fully derived calendar projection: cells in render order plus
// a structural index so the rendering layer never re-derives dates.
type Grid struct {
	View  View   `json:"view"`
	Title string `json:"title"`
	Cells []Cell `json:"cells"`

	index map[CellKey]int
}

// TasksAt returns the tasks assigned to the cell with the given key.
func (g *Grid) TasksAt(key CellKey) []model.Task {
	i, ok := g.index[key]
	if !ok {
		return nil
	}
	return g.Cells[i].Tasks
}

// Project derives the calendar grid for a task collection. ref anchors the
// month, week or day shown; now drives the today flag. The projection is a
// pure function of its inputs: a fresh snapshot simply produces a fresh
// grid.
func Project(tasks []model.Task, ref time.Time, view View, now time.Time) Grid {
	var g Grid
	switch view {
	case ViewWeek:
		g = projectWeek(tasks, ref, now)
	case ViewDay:
		g = projectDay(tasks, ref)
	default:
		g = projectMonth(tasks, ref, now)
	}

	g.index = make(map[CellKey]int, len(g.Cells))
	for i, c := range g.Cells {
		if c.Empty {
			continue
		}
		g.index[c.CellKey] = i
	}
	return g
}

func projectMonth(tasks []model.Task, ref, now time.Time) Grid {
	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, ref.Location()).Day()

	cells := make([]Cell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Cell{CellKey: CellKey{Hour: -1}, Empty: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, dayCell(tasks, year, month, day, ref, now))
	}

	return Grid{
		View:  ViewMonth,
		Title: first.Format("January 2006"),
		Cells: cells,
	}
}

func projectWeek(tasks []model.Task, ref, now time.Time) Grid {
	start := StartOfWeek(ref)
	end := start.AddDate(0, 0, 6)

	cells := make([]Cell, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		y, m, day := d.Date()
		cells = append(cells, dayCell(tasks, y, m, day, ref, now))
	}

	return Grid{
		View:  ViewWeek,
		Title: start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006"),
		Cells: cells,
	}
}

func projectDay(tasks []model.Task, ref time.Time) Grid {
	year, month, day := ref.Date()

	cells := make([]Cell, 0, 24)
	for hour := 0; hour < 24; hour++ {
		cells = append(cells, Cell{
			CellKey: CellKey{Year: year, Month: month, Day: day, Hour: hour},
			Label:   FormatHour(hour),
			Tasks:   tasksAtHour(tasks, year, month, day, hour),
		})
	}

	return Grid{
		View:  ViewDay,
		Title: ref.Format("January 2, 2006"),
		Cells: cells,
	}
}

func dayCell(tasks []model.Task, year int, month time.Month, day int, ref, now time.Time) Cell {
	date := time.Date(year, month, day, 0, 0, 0, 0, ref.Location())
	return Cell{
		CellKey:    CellKey{Year: year, Month: month, Day: day, Hour: -1},
		Today:      SameDay(date, now),
		OtherMonth: date.Month() != ref.Month(),
		Tasks:      tasksOnDay(tasks, year, month, day),
	}
}

// tasksOnDay assigns a task to a day cell when its scheduled instant falls
// on that calendar day, read through the instant's own calendar fields.
// Tasks that have never been scheduled are never placed.
func tasksOnDay(tasks []model.Task, year int, month time.Month, day int) []model.Task {
	var assigned []model.Task
	for _, t := range tasks {
		at, ok := t.ScheduledInstant()
		if !ok {
			continue
		}
		y, m, d := at.Date()
		if y == year && m == month && d == day {
			assigned = append(assigned, t)
		}
	}
	return assigned
}

// tasksAtHour narrows tasksOnDay to a single hour slot. Minutes are
// discarded, never rounded up, and the hour is clamped to [0,23].
func tasksAtHour(tasks []model.Task, year int, month time.Month, day, hour int) []model.Task {
	var assigned []model.Task
	for _, t := range tasksOnDay(tasks, year, month, day) {
		h := clampHour(taskInstantHour(t))
		if h == hour {
			assigned = append(assigned, t)
		}
	}
	return assigned
}

func taskInstantHour(t model.Task) int {
	at, _ := t.ScheduledInstant()
	return at.Hour()
}

func clampHour(h int) int {
	if h < 0 {
		return 0
	}
	if h > 23 {
		return 23
	}
	return h
}
