package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
	"github.com/BuzzLyutic/task-calendar-api/pkg/respond"
)

type ctxKey struct{}

// Middleware resolves the Authorization bearer token and injects the
// current user into the request context. Requests without a valid session
// never reach the wrapped handler.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.UserFromToken(r.Context(), BearerToken(r))
		if err != nil {
			respond.Error(w, r, http.StatusUnauthorized, "not authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// BearerToken extracts the session token from the Authorization header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// WithUser stores the authenticated user on a context.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// CurrentUser reads the authenticated user off a request context.
func CurrentUser(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(model.User)
	return user, ok
}
