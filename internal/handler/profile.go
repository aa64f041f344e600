package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-calendar-api/internal/auth"
	"github.com/BuzzLyutic/task-calendar-api/internal/service"
	"github.com/BuzzLyutic/task-calendar-api/pkg/respond"
)

type ProfileHandler struct {
	tasks  *service.TaskService
	auth   *auth.Service
	logger *zap.Logger
}

func NewProfileHandler(tasks *service.TaskService, authSrv *auth.Service, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{tasks: tasks, auth: authSrv, logger: logger}
}

func (h *ProfileHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r.Context())

	stats, err := h.tasks.Stats(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, stats)
}

type displayNameRequest struct {
	DisplayName string `json:"displayName"`
}

func (h *ProfileHandler) UpdateDisplayName(w http.ResponseWriter, r *http.Request) {
	var req displayNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	user, _ := auth.CurrentUser(r.Context())
	updated, err := h.auth.UpdateDisplayName(r.Context(), user, req.DisplayName)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, updated)
}
