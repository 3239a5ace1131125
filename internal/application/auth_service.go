package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
	"github.com/grainworks/portfolio-api/pkg/helpers"
	"github.com/grainworks/portfolio-api/pkg/mailer"
)

// AuthService owns login, logout and session resolution.
type AuthService struct {
	Users      repository.UserRepository
	Sessions   repository.SessionRepository
	SessionTTL time.Duration
	Publisher  *helpers.RabbitPublisher // optional, login notifications
	Logger     *logrus.Logger
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, ttl time.Duration, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, SessionTTL: ttl, Publisher: pub, Logger: logger}
}

// Login checks credentials and opens a session. Unknown email and wrong
// password return the identical ErrInvalidLogin so the response cannot be
// used to probe which address the owner registered.
func (s *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*entity.User, *entity.Session, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidLogin
		}
		if errors.Is(err, repository.ErrUnavailable) {
			return nil, nil, ErrStoreUnavailable
		}
		return nil, nil, err
	}
	if !helpers.CompareHashAndPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidLogin
	}

	token, err := helpers.NewSessionToken()
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	sess := &entity.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.SessionTTL),
		CreatedAt: now,
	}
	if err := s.Sessions.Create(ctx, sess); err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			return nil, nil, ErrStoreUnavailable
		}
		return nil, nil, err
	}

	s.notifyLogin(ctx, user, ip, userAgent)
	return user, sess, nil
}

// notifyLogin queues a login-notification mail. Best effort: the worker and
// broker are optional and a publish failure never fails the login.
func (s *AuthService) notifyLogin(ctx context.Context, user *entity.User, ip, userAgent string) {
	if s.Publisher == nil {
		return
	}
	job := mailer.LoginNotification{
		To:      user.Email,
		Email:   user.Email,
		IP:      ip,
		Agent:   userAgent,
		LoginAt: time.Now().UTC(),
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("login notification publish failed")
	}
}

// Logout deletes the session row for the given token. A missing or empty
// token is a no-op, logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.Sessions.DeleteByToken(ctx, token); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return mapRepoErr(err)
	}
	return nil
}

// Resolve maps a cookie token to the logged-in user. Expired sessions are
// deleted on sight and treated the same as missing ones.
func (s *AuthService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	sess, err := s.Sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, mapRepoErr(err)
	}
	if sess.Expired(time.Now()) {
		if err := s.Sessions.DeleteByToken(ctx, token); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("expired session cleanup failed")
		}
		return nil, ErrUnauthenticated
	}
	user, err := s.Users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, mapRepoErr(err)
	}
	return user, nil
}

// PurgeExpiredSessions removes sessions past their expiry. Called
// periodically from the server loop.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return s.Sessions.DeleteExpired(ctx, time.Now())
}
