package repository

import (
	"context"
	"time"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

// UserRepository defines owner-account database operations.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// SessionRepository persists opaque session tokens.
type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	GetByToken(ctx context.Context, token string) (*entity.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
