package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/task-calendar-api/internal/model"
	"github.com/BuzzLyutic/task-calendar-api/internal/repo"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailInUse         = errors.New("this email is already in use")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrAnonymousProfile   = errors.New("anonymous users cannot modify their display names")
	ErrDisplayNameBlank   = errors.New("display name cannot be left blank")
	ErrDisplayNameTooLong = errors.New("display names cannot exceed 50 characters")
)

const (
	minPasswordLen    = 6
	maxDisplayNameLen = 50
	DefaultSessionTTL = 30 * 24 * time.Hour
)

// Service implements the identity provider contract: sign-up, sign-in,
// guest accounts, sign-out and session resolution. Validation happens
// before any store call.
type Service struct {
	users      repo.UserRepository
	sessionTTL time.Duration
}

func NewService(users repo.UserRepository, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &Service{users: users, sessionTTL: sessionTTL}
}

// SignUp creates an account and an initial session.
func (s *Service) SignUp(ctx context.Context, email, password, confirm, displayName string) (model.User, model.Session, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return model.User{}, model.Session{}, ErrInvalidEmail
	}
	if password != confirm {
		return model.User{}, model.Session{}, ErrPasswordMismatch
	}
	if len(password) < minPasswordLen {
		return model.User{}, model.Session{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, model.Session{}, err
	}

	user, err := s.users.CreateUser(ctx, model.User{
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
	}, string(hash))
	if err != nil {
		if errors.Is(err, repo.ErrorConflict) {
			return model.User{}, model.Session{}, ErrEmailInUse
		}
		return model.User{}, model.Session{}, err
	}

	sess, err := s.newSession(ctx, user.ID)
	return user, sess, err
}

// SignIn verifies credentials and opens a session. Unknown emails and bad
// passwords produce the same error.
func (s *Service) SignIn(ctx context.Context, email, password string) (model.User, model.Session, error) {
	user, hash, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.User{}, model.Session{}, ErrInvalidCredentials
		}
		return model.User{}, model.Session{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return model.User{}, model.Session{}, ErrInvalidCredentials
	}

	sess, err := s.newSession(ctx, user.ID)
	return user, sess, err
}

// Guest creates an anonymous account with a session. Guests own tasks like
// any other user but cannot edit their profile.
func (s *Service) Guest(ctx context.Context) (model.User, model.Session, error) {
	user, err := s.users.CreateUser(ctx, model.User{IsAnonymous: true}, "")
	if err != nil {
		return model.User{}, model.Session{}, err
	}
	sess, err := s.newSession(ctx, user.ID)
	return user, sess, err
}

// SignOut invalidates a session token. Signing out an unknown token is not
// an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.users.DeleteSession(ctx, token)
}

// UserFromToken resolves a bearer token to its user, rejecting expired
// sessions.
func (s *Service) UserFromToken(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrUnauthenticated
	}
	sess, err := s.users.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.User{}, ErrUnauthenticated
		}
		return model.User{}, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.users.DeleteSession(ctx, token)
		return model.User{}, ErrUnauthenticated
	}
	return s.users.GetUser(ctx, sess.UserID)
}

// UpdateDisplayName edits the profile display name with the original
// validation rules: non-blank, at most 50 characters, not for guests.
func (s *Service) UpdateDisplayName(ctx context.Context, user model.User, displayName string) (model.User, error) {
	if user.IsAnonymous {
		return model.User{}, ErrAnonymousProfile
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return model.User{}, ErrDisplayNameBlank
	}
	if len([]rune(displayName)) > maxDisplayNameLen {
		return model.User{}, ErrDisplayNameTooLong
	}
	return s.users.UpdateDisplayName(ctx, user.ID, displayName)
}

func (s *Service) newSession(ctx context.Context, userID string) (model.Session, error) {
	now := time.Now()
	sess := model.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.users.CreateSession(ctx, sess); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}
