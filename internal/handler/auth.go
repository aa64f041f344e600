package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-calendar-api/internal/auth"
	"github.com/BuzzLyutic/task-calendar-api/internal/model"
	"github.com/BuzzLyutic/task-calendar-api/pkg/respond"
)

type AuthHandler struct {
	service *auth.Service
	logger  *zap.Logger
}

func NewAuthHandler(srv *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: srv, logger: logger}
}

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	DisplayName     string `json:"displayName"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	user, sess, err := h.service.SignUp(r.Context(), req.Email, req.Password, req.ConfirmPassword, req.DisplayName)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, sessionResponse{Token: sess.Token, User: user})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	user, sess, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, sessionResponse{Token: sess.Token, User: user})
}

func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	user, sess, err := h.service.Guest(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, sessionResponse{Token: sess.Token, User: user})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SignOut(r.Context(), auth.BearerToken(r)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current user; it sits behind the auth middleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "not authenticated")
		return
	}
	respond.JSON(w, r, http.StatusOK, user)
}
