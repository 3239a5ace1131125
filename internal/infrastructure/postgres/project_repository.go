package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

const projectCols = `id, owner_id, title, category, topic, description, image_url, work_date,
	published_at, sns_promo_text, role, period_start, period_end, tech_stack,
	repo_url, demo_url, visibility, created_at, updated_at`

func scanProject(row pgx.Row) (*entity.Project, error) {
	p := &entity.Project{}
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Category, &p.Topic, &p.Description,
		&p.ImageURL, &p.WorkDate, &p.PublishedAt, &p.SnsPromoText, &p.Role,
		&p.PeriodStart, &p.PeriodEnd, &p.TechStack, &p.RepoURL, &p.DemoURL,
		&p.Visibility, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO projects (id, owner_id, title, category, topic, description, image_url,
			work_date, published_at, sns_promo_text, role, period_start, period_end,
			tech_stack, repo_url, demo_url, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, p.ID, p.OwnerID, p.Title, p.Category, p.Topic, p.Description, p.ImageURL,
		p.WorkDate, p.PublishedAt, p.SnsPromoText, p.Role, p.PeriodStart, p.PeriodEnd,
		p.TechStack, p.RepoURL, p.DemoURL, p.Visibility, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return wrapErr(err)
	}
	if err := insertProjectLinks(ctx, tx, p); err != nil {
		return wrapErr(err)
	}
	return wrapErr(tx.Commit(ctx))
}

func (r *ProjectRepository) Update(ctx context.Context, p *entity.Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `
		UPDATE projects
		SET title = $1, category = $2, topic = $3, description = $4, image_url = $5,
		    work_date = $6, published_at = $7, sns_promo_text = $8, role = $9,
		    period_start = $10, period_end = $11, tech_stack = $12, repo_url = $13,
		    demo_url = $14, visibility = $15, updated_at = $16
		WHERE id = $17 AND owner_id = $18
	`, p.Title, p.Category, p.Topic, p.Description, p.ImageURL, p.WorkDate,
		p.PublishedAt, p.SnsPromoText, p.Role, p.PeriodStart, p.PeriodEnd,
		p.TechStack, p.RepoURL, p.DemoURL, p.Visibility, p.UpdatedAt, p.ID, p.OwnerID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM project_artifacts WHERE project_id = $1`, p.ID); err != nil {
		return wrapErr(err)
	}
	if err := insertProjectLinks(ctx, tx, p); err != nil {
		return wrapErr(err)
	}
	return wrapErr(tx.Commit(ctx))
}

func insertProjectLinks(ctx context.Context, tx pgx.Tx, p *entity.Project) error {
	for _, aid := range p.ArtifactIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO project_artifacts (project_id, artifact_id) VALUES ($1, $2)
		`, p.ID, aid); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM projects WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProjectRepository) GetOwned(ctx context.Context, id, ownerID string) (*entity.Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+projectCols+`
		FROM projects
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	p, err := scanProject(row)
	if err != nil {
		return nil, wrapErr(err)
	}
	if err := r.loadLinks(ctx, p); err != nil {
		return nil, wrapErr(err)
	}
	return p, nil
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Project, error) {
	return r.queryProjects(ctx, `
		SELECT `+projectCols+`
		FROM projects
		WHERE owner_id = $1
		ORDER BY updated_at DESC
	`, ownerID)
}

func (r *ProjectRepository) ListPublic(ctx context.Context) ([]entity.Project, error) {
	return r.queryProjects(ctx, `
		SELECT `+projectCols+`
		FROM projects
		WHERE visibility = 'PUBLIC'
		ORDER BY published_at DESC, created_at DESC
	`)
}

func (r *ProjectRepository) GetPublicByID(ctx context.Context, id string) (*entity.Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+projectCols+`
		FROM projects
		WHERE id = $1 AND visibility = 'PUBLIC'
	`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, wrapErr(err)
	}
	if err := r.loadLinks(ctx, p); err != nil {
		return nil, wrapErr(err)
	}
	return p, nil
}

func (r *ProjectRepository) queryProjects(ctx context.Context, query string, args ...any) ([]entity.Project, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var out []entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	for i := range out {
		if err := r.loadLinks(ctx, &out[i]); err != nil {
			return nil, wrapErr(err)
		}
	}
	return out, nil
}

func (r *ProjectRepository) loadLinks(ctx context.Context, p *entity.Project) error {
	rows, err := r.pool.Query(ctx, `
		SELECT artifact_id FROM project_artifacts WHERE project_id = $1
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		p.ArtifactIDs = append(p.ArtifactIDs, id)
	}
	return rows.Err()
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
