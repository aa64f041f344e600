package handler

import (
	"github.com/go-chi/chi/v5"

	"github.com/BuzzLyutic/task-calendar-api/internal/auth"
)

// Register mounts the API surface. Everything except sign-up, sign-in and
// guest login sits behind the session middleware.
func Register(r chi.Router, authSrv *auth.Service, a *AuthHandler, t *TaskHandler, p *ProfileHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", a.SignUp)
		r.Post("/auth/login", a.SignIn)
		r.Post("/auth/guest", a.Guest)

		r.Group(func(r chi.Router) {
			r.Use(authSrv.Middleware)

			r.Post("/auth/logout", a.SignOut)
			r.Get("/auth/me", a.Me)

			r.Get("/tasks", t.List)
			r.Post("/tasks", t.Create)
			r.Get("/tasks/stream", t.Stream)
			r.Get("/tasks/{id}", t.Get)
			r.Patch("/tasks/{id}", t.Update)
			r.Put("/tasks/{id}/schedule", t.Schedule)
			r.Put("/tasks/{id}/due-date", t.DueDate)
			r.Delete("/tasks/{id}", t.Delete)

			r.Get("/calendar", t.Calendar)

			r.Get("/profile/stats", p.Stats)
			r.Put("/profile/display-name", p.UpdateDisplayName)
		})
	})
}
