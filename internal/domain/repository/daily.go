package repository

import (
	"context"
	"time"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

// DailyPlanRepository defines daily-plan database operations. Plans are
// unique per (owner, date) and upserted rather than created.
type DailyPlanRepository interface {
	// Upsert inserts the plan or, on (owner, date) conflict, updates
	// reflection and mood. The entity's ID is populated either way.
	Upsert(ctx context.Context, p *entity.DailyPlan) error
	GetOwned(ctx context.Context, id, ownerID string) (*entity.DailyPlan, error)
	GetByOwnerAndDate(ctx context.Context, ownerID string, date time.Time) (*entity.DailyPlan, error)
}

// DailyGoalRepository defines daily-goal database operations. Ownership is
// transitive through the parent plan.
type DailyGoalRepository interface {
	Create(ctx context.Context, g *entity.DailyGoal) error
	Update(ctx context.Context, g *entity.DailyGoal) error
	Delete(ctx context.Context, id, ownerID string) error
	GetOwned(ctx context.Context, id, ownerID string) (*entity.DailyGoal, error)
	CountByPlan(ctx context.Context, planID string) (int, error)
	ListByPlan(ctx context.Context, planID string) ([]entity.DailyGoal, error)
	FilterOwnedIDs(ctx context.Context, ids []string, ownerID string) ([]string, error)
}
