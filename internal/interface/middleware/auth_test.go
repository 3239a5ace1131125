package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/grainworks/portfolio-api/internal/application"
	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
	"github.com/grainworks/portfolio-api/pkg/helpers"
)

type stubUsers struct{ user *entity.User }

func (s *stubUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, repository.ErrNotFound
}

type stubSessions struct{ byToken map[string]*entity.Session }

func (s *stubSessions) Create(_ context.Context, sess *entity.Session) error {
	s.byToken[sess.Token] = sess
	return nil
}

func (s *stubSessions) GetByToken(_ context.Context, token string) (*entity.Session, error) {
	if sess, ok := s.byToken[token]; ok {
		return sess, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubSessions) DeleteByToken(_ context.Context, token string) error {
	if _, ok := s.byToken[token]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byToken, token)
	return nil
}

func (s *stubSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for token, sess := range s.byToken {
		if sess.Expired(now) {
			delete(s.byToken, token)
			n++
		}
	}
	return n, nil
}

func newAuthRouter(auth *application.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(auth), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID"))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	owner := &entity.User{ID: "u1", Email: "owner@example.com"}
	sessions := &stubSessions{byToken: map[string]*entity.Session{
		"good-token":    {Token: "good-token", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)},
		"expired-token": {Token: "expired-token", UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour)},
	}}
	auth := application.NewAuthService(&stubUsers{user: owner}, sessions, time.Hour, nil, nil)
	r := newAuthRouter(auth)

	t.Run("no cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: "forged"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: "expired-token"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		// the stale row was deleted on sight
		assert.NotContains(t, sessions.byToken, "expired-token")
	})

	t.Run("valid session", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: helpers.SessionCookie, Value: "good-token"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", w.Body.String())
	})
}
