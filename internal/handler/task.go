package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-calendar-api/internal/auth"
	"github.com/BuzzLyutic/task-calendar-api/internal/model"
	"github.com/BuzzLyutic/task-calendar-api/internal/schedule"
	"github.com/BuzzLyutic/task-calendar-api/internal/service"
	"github.com/BuzzLyutic/task-calendar-api/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{service: srv, logger: logger}
}

type createTaskRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     string         `json:"dueDate"`
	Time        string         `json:"time"`
	Priority    model.Priority `json:"priority"`
	Tag         string         `json:"tag"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	user, _ := auth.CurrentUser(r.Context())
	task, err := h.service.Create(r.Context(), user.ID, service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Time:        req.Time,
		Priority:    req.Priority,
		Tag:         req.Tag,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%s", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	task, err := h.service.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	mode, err := schedule.ParseSortMode(r.URL.Query().Get("sort"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, _ := auth.CurrentUser(r.Context())
	tasks, err := h.service.List(r.Context(), user.ID, mode)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

type updateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Priority    *model.Priority `json:"priority"`
	Tag         *string         `json:"tag"`
	Completed   *bool           `json:"completed"`
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	user, _ := auth.CurrentUser(r.Context())
	task, err := h.service.Update(r.Context(), user.ID, chi.URLParam(r, "id"), service.UpdatePatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Tag:         req.Tag,
		Completed:   req.Completed,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

type scheduleRequest struct {
	Year  int  `json:"year"`
	Month int  `json:"month"` // 1-12
	Day   int  `json:"day"`
	Hour  *int `json:"hour"` // day-view slot; omitted for month/week drops
}

// Schedule handles a calendar drop: the request names the target cell and
// the task takes its scheduled instant and due date from it.
func (h *TaskHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Month < 1 || req.Month > 12 || req.Day < 1 || req.Day > 31 {
		respond.Error(w, r, http.StatusBadRequest, "invalid target cell")
		return
	}

	hour := -1
	if req.Hour != nil {
		if *req.Hour < 0 || *req.Hour > 23 {
			respond.Error(w, r, http.StatusBadRequest, "hour must be between 0 and 23")
			return
		}
		hour = *req.Hour
	}

	user, _ := auth.CurrentUser(r.Context())
	task, err := h.service.Reschedule(r.Context(), user.ID, chi.URLParam(r, "id"),
		req.Year, time.Month(req.Month), req.Day, hour)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

type dueDateRequest struct {
	DueDate string `json:"dueDate"`
}

func (h *TaskHandler) DueDate(w http.ResponseWriter, r *http.Request) {
	var req dueDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	user, _ := auth.CurrentUser(r.Context())
	task, err := h.service.RetargetDueDate(r.Context(), user.ID, chi.URLParam(r, "id"), req.DueDate)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	if err := h.service.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Calendar serves the grid projection for a view and reference date.
func (h *TaskHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	view, err := schedule.ParseView(r.URL.Query().Get("view"))
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ref := time.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		ref, err = schedule.ParseDueDate(d, time.Local)
		if err != nil {
			respond.Error(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	user, _ := auth.CurrentUser(r.Context())
	grid, err := h.service.Calendar(r.Context(), user.ID, ref, view)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, grid)
}

// Stream pushes full task-collection snapshots over SSE. The first event
// is the current collection; every subsequent write to it produces a new
// event.
func (h *TaskHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respond.Error(w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	user, _ := auth.CurrentUser(r.Context())
	snapshots, cancel := h.service.Subscribe(user.ID)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	initial, err := h.service.List(r.Context(), user.ID, schedule.SortNone)
	if err == nil {
		h.writeSnapshot(w, initial)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, open := <-snapshots:
			if !open {
				return
			}
			h.writeSnapshot(w, snap)
			flusher.Flush()
		}
	}
}

func (h *TaskHandler) writeSnapshot(w http.ResponseWriter, tasks []model.Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		h.logger.Error("failed to encode snapshot", zap.Error(err))
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
}
