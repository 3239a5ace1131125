package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
)

type DailyPlanRepository struct {
	pool *pgxpool.Pool
}

func NewDailyPlanRepository(pool *pgxpool.Pool) *DailyPlanRepository {
	return &DailyPlanRepository{pool: pool}
}

// Upsert inserts the plan or, when one already exists for (owner, date),
// updates its reflection and mood. The stored row's identifiers and
// timestamps are read back into the entity.
func (r *DailyPlanRepository) Upsert(ctx context.Context, p *entity.DailyPlan) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO daily_plans (id, owner_id, date, reflection, mood, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (owner_id, date)
		DO UPDATE SET reflection = EXCLUDED.reflection, mood = EXCLUDED.mood, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`, p.ID, p.OwnerID, p.Date, p.Reflection, p.Mood, p.CreatedAt, p.UpdatedAt)
	return wrapErr(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *DailyPlanRepository) GetOwned(ctx context.Context, id, ownerID string) (*entity.DailyPlan, error) {
	p := &entity.DailyPlan{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, date, reflection, mood, created_at, updated_at
		FROM daily_plans
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Date, &p.Reflection, &p.Mood,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, wrapErr(err)
	}
	return p, nil
}

func (r *DailyPlanRepository) GetByOwnerAndDate(ctx context.Context, ownerID string, date time.Time) (*entity.DailyPlan, error) {
	p := &entity.DailyPlan{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, date, reflection, mood, created_at, updated_at
		FROM daily_plans
		WHERE owner_id = $1 AND date = $2
	`, ownerID, date)
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Date, &p.Reflection, &p.Mood,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, wrapErr(err)
	}
	return p, nil
}

type DailyGoalRepository struct {
	pool *pgxpool.Pool
}

func NewDailyGoalRepository(pool *pgxpool.Pool) *DailyGoalRepository {
	return &DailyGoalRepository{pool: pool}
}

func (r *DailyGoalRepository) Create(ctx context.Context, g *entity.DailyGoal) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO daily_goals (id, daily_plan_id, title, category, is_done, done_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, g.ID, g.DailyPlanID, g.Title, g.Category, g.IsDone, g.DoneAt, g.CreatedAt)
	return wrapErr(err)
}

func (r *DailyGoalRepository) Update(ctx context.Context, g *entity.DailyGoal) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE daily_goals
		SET title = $1, category = $2, is_done = $3, done_at = $4
		WHERE id = $5
	`, g.Title, g.Category, g.IsDone, g.DoneAt, g.ID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DailyGoalRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM daily_goals g
		USING daily_plans p
		WHERE g.id = $1 AND g.daily_plan_id = p.id AND p.owner_id = $2
	`, id, ownerID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *DailyGoalRepository) GetOwned(ctx context.Context, id, ownerID string) (*entity.DailyGoal, error) {
	g := &entity.DailyGoal{}
	row := r.pool.QueryRow(ctx, `
		SELECT g.id, g.daily_plan_id, g.title, g.category, g.is_done, g.done_at, g.created_at
		FROM daily_goals g
		JOIN daily_plans p ON p.id = g.daily_plan_id
		WHERE g.id = $1 AND p.owner_id = $2
	`, id, ownerID)
	if err := row.Scan(&g.ID, &g.DailyPlanID, &g.Title, &g.Category, &g.IsDone,
		&g.DoneAt, &g.CreatedAt); err != nil {
		return nil, wrapErr(err)
	}
	return g, nil
}

func (r *DailyGoalRepository) CountByPlan(ctx context.Context, planID string) (int, error) {
	var n int
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM daily_goals WHERE daily_plan_id = $1`, planID)
	if err := row.Scan(&n); err != nil {
		return 0, wrapErr(err)
	}
	return n, nil
}

func (r *DailyGoalRepository) ListByPlan(ctx context.Context, planID string) ([]entity.DailyGoal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, daily_plan_id, title, category, is_done, done_at, created_at
		FROM daily_goals
		WHERE daily_plan_id = $1
		ORDER BY created_at ASC
	`, planID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var out []entity.DailyGoal
	for rows.Next() {
		var g entity.DailyGoal
		if err := rows.Scan(&g.ID, &g.DailyPlanID, &g.Title, &g.Category, &g.IsDone,
			&g.DoneAt, &g.CreatedAt); err != nil {
			return nil, wrapErr(err)
		}
		out = append(out, g)
	}
	return out, wrapErr(rows.Err())
}

func (r *DailyGoalRepository) FilterOwnedIDs(ctx context.Context, ids []string, ownerID string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT g.id
		FROM daily_goals g
		JOIN daily_plans p ON p.id = g.daily_plan_id
		WHERE g.id = ANY($1) AND p.owner_id = $2
	`, ids, ownerID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	owned := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr(err)
		}
		owned[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}

	var out []string
	for _, id := range ids {
		if owned[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

var (
	_ repository.DailyPlanRepository = (*DailyPlanRepository)(nil)
	_ repository.DailyGoalRepository = (*DailyGoalRepository)(nil)
)
