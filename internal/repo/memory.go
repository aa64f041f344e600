package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

// Memory is an in-memory implementation of TaskRepository and
// UserRepository. It backs handler and service tests and local runs
// without a database.
type Memory struct {
	mu       sync.RWMutex
	tasks    map[string]model.Task
	users    map[string]model.User
	hashes   map[string]string // user id -> password hash
	byEmail  map[string]string // email -> user id
	sessions map[string]model.Session
}

func NewMemory() *Memory {
	return &Memory{
		tasks:    make(map[string]model.Task),
		users:    make(map[string]model.User),
		hashes:   make(map[string]string),
		byEmail:  make(map[string]string),
		sessions: make(map[string]model.Session),
	}
}

func (m *Memory) Create(ctx context.Context, t model.Task) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if _, exists := m.tasks[t.ID]; exists {
		return t, ErrorConflict
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	m.tasks[t.ID] = t
	return t, nil
}

func (m *Memory) Get(ctx context.Context, userID, id string) (model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return model.Task{}, ErrorNotFound
	}
	return t, nil
}

func (m *Memory) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]model.Task, 0)
	for _, t := range m.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

func (m *Memory) Update(ctx context.Context, t model.Task) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[t.ID]
	if !ok || existing.UserID != t.UserID {
		return model.Task{}, ErrorNotFound
	}
	t.CreatedAt = existing.CreatedAt
	m.tasks[t.ID] = t
	return t, nil
}

func (m *Memory) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return ErrorNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *Memory) CreateUser(ctx context.Context, u model.User, passwordHash string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u.Email != "" {
		if _, exists := m.byEmail[u.Email]; exists {
			return u, ErrorConflict
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = u
	m.hashes[u.ID] = passwordHash
	if u.Email != "" {
		m.byEmail[u.Email] = u.ID
	}
	return u, nil
}

func (m *Memory) GetUser(ctx context.Context, id string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return model.User{}, ErrorNotFound
	}
	return u, nil
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (model.User, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return model.User{}, "", ErrorNotFound
	}
	return m.users[id], m.hashes[id], nil
}

func (m *Memory) UpdateDisplayName(ctx context.Context, id, displayName string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return model.User{}, ErrorNotFound
	}
	u.DisplayName = displayName
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return u, nil
}

func (m *Memory) CreateSession(ctx context.Context, s model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *Memory) GetSession(ctx context.Context, token string) (model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[token]
	if !ok {
		return model.Session{}, ErrorNotFound
	}
	return s, nil
}

func (m *Memory) DeleteSession(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}
