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

// UserRepo persists accounts and sessions in PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) CreateUser(ctx context.Context, u model.User, passwordHash string) (model.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	var email *string
	if u.Email != "" {
		email = &u.Email
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, is_anonymous, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING created_at, updated_at
	`, u.ID, email, u.DisplayName, passwordHash, u.IsAnonymous).Scan(&u.CreatedAt, &u.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return u, ErrorConflict
	}
	return u, err
}

func (r *UserRepo) GetUser(ctx context.Context, id string) (model.User, error) {
	var (
		u     model.User
		email *string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, display_name, is_anonymous, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &email, &u.DisplayName, &u.IsAnonymous, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return u, ErrorNotFound
	}
	if email != nil {
		u.Email = *email
	}
	return u, err
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (model.User, string, error) {
	var (
		u    model.User
		hash string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, display_name, password_hash, is_anonymous, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.DisplayName, &hash, &u.IsAnonymous, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return u, "", ErrorNotFound
	}
	return u, hash, err
}

func (r *UserRepo) UpdateDisplayName(ctx context.Context, id, displayName string) (model.User, error) {
	var (
		u     model.User
		email *string
	)
	err := r.pool.QueryRow(ctx, `
		UPDATE users
		SET display_name = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, email, display_name, is_anonymous, created_at, updated_at
	`, id, displayName).Scan(&u.ID, &email, &u.DisplayName, &u.IsAnonymous, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return u, ErrorNotFound
	}
	if email != nil {
		u.Email = *email
	}
	return u, err
}

func (r *UserRepo) CreateSession(ctx context.Context, s model.Session) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`, s.Token, s.UserID, s.CreatedAt, s.ExpiresAt)
	return err
}

func (r *UserRepo) GetSession(ctx context.Context, token string) (model.Session, error) {
	var s model.Session
	err := r.pool.QueryRow(ctx, `
		SELECT token, user_id, created_at, expires_at
		FROM sessions
		WHERE token = $1
	`, token).Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return s, ErrorNotFound
	}
	return s, err
}

func (r *UserRepo) DeleteSession(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}
