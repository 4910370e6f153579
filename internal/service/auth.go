package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mpetrenko/online_store/internal/events"
	"github.com/mpetrenko/online_store/internal/hash"
	"github.com/mpetrenko/online_store/internal/logging"
	"github.com/mpetrenko/online_store/internal/models"
	"github.com/mpetrenko/online_store/internal/repo"
	"github.com/mpetrenko/online_store/internal/session"
)

const minPasswordLength = 8

type AuthService struct {
	Repo     *repo.GormRepo
	Sessions session.Store
	Events   events.Publisher
}

func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("signup_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			return nil, fmt.Errorf("username or email already taken: %w", ErrConflict)
		}
		l.Error("signup_failed", "error", err)
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("signup_success", "user_id", user.ID)
	return &user, nil
}

// Login deliberately returns the same error for an unknown username and
// a wrong password, so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, "", err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.Repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		l.Error("login_failed", "reason", "cannot update last login", "error", err)
		return nil, "", err
	}
	user.LastLoginAt = &now

	sid, err := s.Sessions.Create(ctx, session.Session{UserID: user.ID, Username: user.Username})
	if err != nil {
		l.Error("login_failed", "reason", "cannot create session", "error", err)
		return nil, "", err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID, map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	l.Info("login_success", "user_id", user.ID)
	return user, sid, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionID)
}

// Me resolves the session back to a user row. ErrNotFound means the row
// vanished since login; the caller is expected to tear the session down.
func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("user no longer exists: %w", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) publish(ctx context.Context, topic string, key uint, event map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, topic, strconv.FormatUint(uint64(key), 10), event); err != nil {
		logging.FromContext(ctx).Warn("event publish failed", "topic", topic, "error", err)
	}
}
