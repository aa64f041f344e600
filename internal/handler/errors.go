package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-calendar-api/internal/auth"
	"github.com/BuzzLyutic/task-calendar-api/internal/repo"
	"github.com/BuzzLyutic/task-calendar-api/internal/service"
	"github.com/BuzzLyutic/task-calendar-api/pkg/respond"
)

// writeError maps domain errors to HTTP statuses. Validation errors carry
// their specific user-facing message; anything unexpected is logged and
// hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, repo.ErrorNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrorConflict):
		respond.Error(w, r, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrInvalidDueDate),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrInvalidTime),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrDisplayNameBlank),
		errors.Is(err, auth.ErrDisplayNameTooLong):
		respond.Error(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrEmailInUse):
		respond.Error(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUnauthenticated):
		respond.Error(w, r, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrAnonymousProfile):
		respond.Error(w, r, http.StatusForbidden, err.Error())
	default:
		logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
