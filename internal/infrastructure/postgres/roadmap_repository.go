package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
)

type RoadmapRepository struct {
	pool *pgxpool.Pool
}

func NewRoadmapRepository(pool *pgxpool.Pool) *RoadmapRepository {
	return &RoadmapRepository{pool: pool}
}

func (r *RoadmapRepository) Create(ctx context.Context, rm *entity.Roadmap) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO roadmaps (id, owner_id, title, target_role, target_industry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rm.ID, rm.OwnerID, rm.Title, rm.TargetRole, rm.TargetIndustry, rm.CreatedAt, rm.UpdatedAt)
	return wrapErr(err)
}

func (r *RoadmapRepository) Update(ctx context.Context, rm *entity.Roadmap) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE roadmaps
		SET title = $1, target_role = $2, target_industry = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6
	`, rm.Title, rm.TargetRole, rm.TargetIndustry, rm.UpdatedAt, rm.ID, rm.OwnerID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoadmapRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM roadmaps WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RoadmapRepository) GetOwned(ctx context.Context, id, ownerID string) (*entity.Roadmap, error) {
	rm := &entity.Roadmap{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, target_role, target_industry, created_at, updated_at
		FROM roadmaps
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err := row.Scan(&rm.ID, &rm.OwnerID, &rm.Title, &rm.TargetRole, &rm.TargetIndustry,
		&rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return nil, wrapErr(err)
	}
	return rm, nil
}

func (r *RoadmapRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Roadmap, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, title, target_role, target_industry, created_at, updated_at
		FROM roadmaps
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var out []entity.Roadmap
	for rows.Next() {
		var rm entity.Roadmap
		if err := rows.Scan(&rm.ID, &rm.OwnerID, &rm.Title, &rm.TargetRole, &rm.TargetIndustry,
			&rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, wrapErr(err)
		}
		out = append(out, rm)
	}
	return out, wrapErr(rows.Err())
}

type MilestoneRepository struct {
	pool *pgxpool.Pool
}

func NewMilestoneRepository(pool *pgxpool.Pool) *MilestoneRepository {
	return &MilestoneRepository{pool: pool}
}

const milestoneCols = `id, roadmap_id, title, description, due_date, status, sort_order, competency_tags, created_at, updated_at`

func scanMilestone(row pgx.Row) (*entity.Milestone, error) {
	m := &entity.Milestone{}
	if err := row.Scan(&m.ID, &m.RoadmapID, &m.Title, &m.Description, &m.DueDate,
		&m.Status, &m.SortOrder, &m.CompetencyTags, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MilestoneRepository) Create(ctx context.Context, m *entity.Milestone) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO milestones (id, roadmap_id, title, description, due_date, status, sort_order, competency_tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, m.ID, m.RoadmapID, m.Title, m.Description, m.DueDate, m.Status, m.SortOrder,
		m.CompetencyTags, m.CreatedAt, m.UpdatedAt)
	return wrapErr(err)
}

func (r *MilestoneRepository) Update(ctx context.Context, m *entity.Milestone) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE milestones
		SET title = $1, description = $2, due_date = $3, status = $4, sort_order = $5,
		    competency_tags = $6, updated_at = $7
		WHERE id = $8
	`, m.Title, m.Description, m.DueDate, m.Status, m.SortOrder, m.CompetencyTags,
		m.UpdatedAt, m.ID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MilestoneRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM milestones m
		USING roadmaps rm
		WHERE m.id = $1 AND m.roadmap_id = rm.id AND rm.owner_id = $2
	`, id, ownerID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MilestoneRepository) GetOwned(ctx context.Context, id, ownerID string) (*entity.Milestone, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT m.id, m.roadmap_id, m.title, m.description, m.due_date, m.status,
		       m.sort_order, m.competency_tags, m.created_at, m.updated_at
		FROM milestones m
		JOIN roadmaps rm ON rm.id = m.roadmap_id
		WHERE m.id = $1 AND rm.owner_id = $2
	`, id, ownerID)
	m, err := scanMilestone(row)
	if err != nil {
		return nil, wrapErr(err)
	}
	return m, nil
}

func (r *MilestoneRepository) ListByRoadmap(ctx context.Context, roadmapID string) ([]entity.Milestone, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+milestoneCols+`
		FROM milestones
		WHERE roadmap_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`, roadmapID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var out []entity.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		out = append(out, *m)
	}
	return out, wrapErr(rows.Err())
}

func (r *MilestoneRepository) ListIDsByRoadmap(ctx context.Context, roadmapID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM milestones WHERE roadmap_id = $1
	`, roadmapID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr(err)
		}
		ids = append(ids, id)
	}
	return ids, wrapErr(rows.Err())
}

// Reorder rewrites sort_order = slice index for every id inside one
// transaction, batched into a single round trip. Any failure rolls the whole
// ordering back.
func (r *MilestoneRepository) Reorder(ctx context.Context, orderedIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	batch := &pgx.Batch{}
	for i, id := range orderedIDs {
		batch.Queue(`UPDATE milestones SET sort_order = $1, updated_at = $2 WHERE id = $3`, i, now, id)
	}
	br := tx.SendBatch(ctx, batch)
	for range orderedIDs {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return wrapErr(err)
		}
	}
	if err := br.Close(); err != nil {
		return wrapErr(err)
	}
	return wrapErr(tx.Commit(ctx))
}

func (r *MilestoneRepository) FilterOwnedIDs(ctx context.Context, ids []string, ownerID string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT m.id
		FROM milestones m
		JOIN roadmaps rm ON rm.id = m.roadmap_id
		WHERE m.id = ANY($1) AND rm.owner_id = $2
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
	_ repository.RoadmapRepository   = (*RoadmapRepository)(nil)
	_ repository.MilestoneRepository = (*MilestoneRepository)(nil)
)
