package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = `id, user_id, title, description, due_date, priority, tag,
	scheduled_date, reminder_time, completed, reminder_sent, created_at`

// TaskRepo persists tasks in PostgreSQL. due_date is a text column: the
// calendar date is stored exactly as written and never round-trips through
// a timestamp.
type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, user_id, title, description, due_date, priority, tag,
			scheduled_date, reminder_time, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, now())
		RETURNING `+taskColumns,
		t.ID, t.UserID, t.Title, t.Description, t.DueDate, t.Priority, t.Tag,
		t.ScheduledDate, t.ReminderTime,
	).Scan(scanTargets(&t)...)
	return t, r.mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, userID, id string) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(scanTargets(&t)...)

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(scanTargets(&t)...); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	err := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $3, description = $4, due_date = $5, priority = $6, tag = $7,
			scheduled_date = $8, reminder_time = $9, completed = $10, reminder_sent = $11
		WHERE id = $1 AND user_id = $2
		RETURNING `+taskColumns,
		t.ID, t.UserID, t.Title, t.Description, t.DueDate, t.Priority, t.Tag,
		t.ScheduledDate, t.ReminderTime, t.Completed, t.ReminderSent,
	).Scan(scanTargets(&t)...)

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) Delete(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// scanTargets keeps the column order in one place for every task query.
func scanTargets(t *model.Task) []any {
	return []any{
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Priority, &t.Tag,
		&t.ScheduledDate, &t.ReminderTime, &t.Completed, &t.ReminderSent, &t.CreatedAt,
	}
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}
