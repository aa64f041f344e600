package repo

import (
	"context"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

// TaskRepository is the store contract for a user's task collection.
// Every read and write is scoped to the owning user.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, userID, id string) (model.Task, error)
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

// UserRepository stores accounts and their bearer sessions.
type UserRepository interface {
	CreateUser(ctx context.Context, u model.User, passwordHash string) (model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, string, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) (model.User, error)

	CreateSession(ctx context.Context, s model.Session) error
	GetSession(ctx context.Context, token string) (model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
