package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
	"github.com/BuzzLyutic/task-calendar-api/internal/repo"
	"github.com/BuzzLyutic/task-calendar-api/internal/schedule"
	"github.com/BuzzLyutic/task-calendar-api/internal/watch"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidDueDate  = errors.New("due date must be a valid YYYY-MM-DD date")
	ErrInvalidPriority = errors.New("priority must be High, Medium, Low or Unsure")
	ErrInvalidTime     = errors.New("time must be a valid HH:MM value")
)

// TaskService owns task validation and every schedule-affecting mutation.
// Writes go to the store and, on success, the user's full collection is
// re-read and pushed to subscribers; the service keeps no derived state of
// its own.
type TaskService struct {
	repo repo.TaskRepository
	hub  *watch.Hub
	loc  *time.Location
}

// NewTaskService wires the service. hub may be nil when no snapshot push
// is wanted (tests); loc is the calendar timezone for schedule arithmetic.
func NewTaskService(r repo.TaskRepository, hub *watch.Hub, loc *time.Location) *TaskService {
	if loc == nil {
		loc = time.Local
	}
	return &TaskService{repo: r, hub: hub, loc: loc}
}

// CreateInput is the task creation form. Time is an optional HH:MM
// time-of-day; when present the task is scheduled at DueDate+Time,
// otherwise it starts unscheduled and appears only in the list view.
type CreateInput struct {
	Title       string
	Description string
	DueDate     string
	Time        string
	Priority    model.Priority
	Tag         string
}

func (s *TaskService) Create(ctx context.Context, userID string, in CreateInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Task{}, ErrTitleRequired
	}
	if _, err := schedule.ParseDueDate(in.DueDate, s.loc); err != nil {
		return model.Task{}, ErrInvalidDueDate
	}
	if !in.Priority.Valid() {
		return model.Task{}, ErrInvalidPriority
	}

	t := model.Task{
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Tag:         strings.TrimSpace(in.Tag),
	}

	if in.Time != "" {
		tod, err := time.Parse("15:04", in.Time)
		if err != nil {
			return model.Task{}, ErrInvalidTime
		}
		day, _ := schedule.ParseDueDate(in.DueDate, s.loc)
		at := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, s.loc)
		t.ScheduledDate = &at
		t.ReminderTime = &at
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return created, err
	}
	s.publish(ctx, userID)
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, userID, id string) (model.Task, error) {
	return s.repo.Get(ctx, userID, id)
}

// List returns the user's tasks in the requested sort order.
func (s *TaskService) List(ctx context.Context, userID string, mode schedule.SortMode) ([]model.Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return schedule.Order(tasks, mode), nil
}

// UpdatePatch carries the editable non-schedule fields; nil means keep.
type UpdatePatch struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Tag         *string
	Completed   *bool
}

func (s *TaskService) Update(ctx context.Context, userID, id string, patch UpdatePatch) (model.Task, error) {
	t, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return t, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return t, ErrTitleRequired
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return t, ErrInvalidPriority
		}
		t.Priority = *patch.Priority
	}
	if patch.Tag != nil {
		t.Tag = strings.TrimSpace(*patch.Tag)
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return updated, err
	}
	s.publish(ctx, userID)
	return updated, nil
}

// Reschedule applies a calendar drop: the scheduled instant moves to the
// target cell and the due date is recomputed from the same day. Pass an
// hour outside [0,23] for month/week cells; it defaults to noon.
func (s *TaskService) Reschedule(ctx context.Context, userID, id string, year int, month time.Month, day, hour int) (model.Task, error) {
	t, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return t, err
	}

	schedule.PlaceOnCell(year, month, day, hour, s.loc).Apply(&t)

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return updated, err
	}
	s.publish(ctx, userID)
	return updated, nil
}

// RetargetDueDate edits only the due date, keeping the scheduled
// time-of-day when one exists.
func (s *TaskService) RetargetDueDate(ctx context.Context, userID, id, newDate string) (model.Task, error) {
	t, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return t, err
	}

	placement, err := schedule.RetargetDueDate(t, newDate, s.loc)
	if err != nil {
		return t, ErrInvalidDueDate
	}
	placement.Apply(&t)

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return updated, err
	}
	s.publish(ctx, userID)
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.publish(ctx, userID)
	return nil
}

// Calendar projects the user's current collection onto a grid.
func (s *TaskService) Calendar(ctx context.Context, userID string, ref time.Time, view schedule.View) (schedule.Grid, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return schedule.Grid{}, err
	}
	return schedule.Project(tasks, ref, view, time.Now().In(s.loc)), nil
}

// Stats summarizes the user's collection for the profile page.
func (s *TaskService) Stats(ctx context.Context, userID string) (schedule.Stats, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return schedule.Stats{}, err
	}
	return schedule.Summarize(tasks), nil
}

// Subscribe opens a snapshot feed for the user's collection.
func (s *TaskService) Subscribe(userID string) (<-chan []model.Task, func()) {
	if s.hub == nil {
		return nil, func() {}
	}
	return s.hub.Subscribe(userID)
}

// publish pushes the latest full snapshot to subscribers. Best effort: a
// failed re-read only means subscribers wait for the next write.
func (s *TaskService) publish(ctx context.Context, userID string) {
	if s.hub == nil {
		return
	}
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return
	}
	s.hub.Publish(userID, tasks)
}
