package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type ArtifactRepository struct {
	pool *pgxpool.Pool
}

func NewArtifactRepository(pool *pgxpool.Pool) *ArtifactRepository {
	return &ArtifactRepository{pool: pool}
}

const artifactCols = `id, owner_id, type, title, summary, content_md, date, tags, link_url, visibility, created_at, updated_at`

func scanArtifact(row pgx.Row) (*entity.Artifact, error) {
	a := &entity.Artifact{}
	if err := row.Scan(&a.ID, &a.OwnerID, &a.Type, &a.Title, &a.Summary, &a.ContentMd,
		&a.Date, &a.Tags, &a.LinkURL, &a.Visibility, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

// Create writes the artifact row, its cross-links and its attachments in one
// transaction.
func (r *ArtifactRepository) Create(ctx context.Context, a *entity.Artifact) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO artifacts (id, owner_id, type, title, summary, content_md, date, tags, link_url, visibility, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, a.ID, a.OwnerID, a.Type, a.Title, a.Summary, a.ContentMd, a.Date, a.Tags,
		a.LinkURL, a.Visibility, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return wrapErr(err)
	}
	if err := insertArtifactLinks(ctx, tx, a); err != nil {
		return wrapErr(err)
	}
	if err := insertAttachments(ctx, tx, a.Attachments); err != nil {
		return wrapErr(err)
	}
	return wrapErr(tx.Commit(ctx))
}

// Update rewrites the artifact row and replaces every cross-link row.
// Attachments are untouched, appends go through AppendAttachments.
func (r *ArtifactRepository) Update(ctx context.Context, a *entity.Artifact) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `
		UPDATE artifacts
		SET type = $1, title = $2, summary = $3, content_md = $4, date = $5, tags = $6,
		    link_url = $7, visibility = $8, updated_at = $9
		WHERE id = $10 AND owner_id = $11
	`, a.Type, a.Title, a.Summary, a.ContentMd, a.Date, a.Tags, a.LinkURL,
		a.Visibility, a.UpdatedAt, a.ID, a.OwnerID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM artifact_milestones WHERE artifact_id = $1`, a.ID); err != nil {
		return wrapErr(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM artifact_daily_goals WHERE artifact_id = $1`, a.ID); err != nil {
		return wrapErr(err)
	}
	if err := insertArtifactLinks(ctx, tx, a); err != nil {
		return wrapErr(err)
	}
	return wrapErr(tx.Commit(ctx))
}

func insertArtifactLinks(ctx context.Context, tx pgx.Tx, a *entity.Artifact) error {
	for _, mid := range a.MilestoneIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO artifact_milestones (artifact_id, milestone_id) VALUES ($1, $2)
		`, a.ID, mid); err != nil {
			return err
		}
	}
	for _, gid := range a.DailyGoalIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO artifact_daily_goals (artifact_id, daily_goal_id) VALUES ($1, $2)
		`, a.ID, gid); err != nil {
			return err
		}
	}
	return nil
}

func insertAttachments(ctx context.Context, tx pgx.Tx, atts []entity.ArtifactAttachment) error {
	for _, at := range atts {
		if _, err := tx.Exec(ctx, `
			INSERT INTO artifact_attachments (id, artifact_id, kind, path_or_url, mime_type, size, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, at.ID, at.ArtifactID, at.Kind, at.PathOrURL, at.MimeType, at.Size, at.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *ArtifactRepository) AppendAttachments(ctx context.Context, artifactID string, atts []entity.ArtifactAttachment) error {
	if len(atts) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr(err)
	}
	defer tx.Rollback(ctx)
	if err := insertAttachments(ctx, tx, atts); err != nil {
		return wrapErr(err)
	}
	return wrapErr(tx.Commit(ctx))
}

func (r *ArtifactRepository) SetVisibility(ctx context.Context, id, ownerID string, v entity.Visibility) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE artifacts SET visibility = $1, updated_at = now()
		WHERE id = $2 AND owner_id = $3
	`, v, id, ownerID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArtifactRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM artifacts WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return wrapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArtifactRepository) GetOwned(ctx context.Context, id, ownerID string) (*entity.Artifact, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+artifactCols+`
		FROM artifacts
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	a, err := scanArtifact(row)
	if err != nil {
		return nil, wrapErr(err)
	}
	if err := r.loadLinks(ctx, a); err != nil {
		return nil, wrapErr(err)
	}
	atts, err := r.loadAttachments(ctx, []string{a.ID})
	if err != nil {
		return nil, wrapErr(err)
	}
	a.Attachments = atts[a.ID]
	return a, nil
}

// listFilter applies ArtifactFilter to a squirrel builder.
func listFilter(b sq.SelectBuilder, ownerID string, f repository.ArtifactFilter) sq.SelectBuilder {
	b = b.Where(sq.Eq{"owner_id": ownerID})
	if f.Type != "" {
		b = b.Where(sq.Eq{"type": f.Type})
	}
	if f.Visibility != "" {
		b = b.Where(sq.Eq{"visibility": f.Visibility})
	}
	return b
}

func (r *ArtifactRepository) ListByOwner(ctx context.Context, ownerID string, f repository.ArtifactFilter) ([]entity.Artifact, error) {
	b := listFilter(psql.Select(artifactCols).From("artifacts"), ownerID, f).
		OrderBy("date DESC", "created_at DESC")
	if f.Limit > 0 {
		b = b.Offset(uint64(f.Offset)).Limit(uint64(f.Limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryArtifacts(ctx, query, args...)
}

func (r *ArtifactRepository) CountByOwner(ctx context.Context, ownerID string, f repository.ArtifactFilter) (int, error) {
	query, args, err := listFilter(psql.Select("COUNT(*)").From("artifacts"), ownerID, f).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, wrapErr(err)
	}
	return n, nil
}

func (r *ArtifactRepository) ListPublic(ctx context.Context) ([]entity.Artifact, error) {
	return r.queryArtifacts(ctx, `
		SELECT `+artifactCols+`
		FROM artifacts
		WHERE visibility = 'PUBLIC'
		ORDER BY date DESC, created_at DESC
	`)
}

func (r *ArtifactRepository) ListByIDs(ctx context.Context, ids []string) ([]entity.Artifact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryArtifacts(ctx, `
		SELECT `+artifactCols+`
		FROM artifacts
		WHERE id = ANY($1)
		ORDER BY date DESC, created_at DESC
	`, ids)
}

func (r *ArtifactRepository) FilterOwnedIDs(ctx context.Context, ids []string, ownerID string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id FROM artifacts WHERE id = ANY($1) AND owner_id = $2
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

func (r *ArtifactRepository) LinkedProjectIDs(ctx context.Context, artifactID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT project_id FROM project_artifacts WHERE artifact_id = $1
	`, artifactID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr(err)
		}
		out = append(out, id)
	}
	return out, wrapErr(rows.Err())
}

func (r *ArtifactRepository) queryArtifacts(ctx context.Context, query string, args ...any) ([]entity.Artifact, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var out []entity.Artifact
	var ids []string
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		out = append(out, *a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}

	atts, err := r.loadAttachments(ctx, ids)
	if err != nil {
		return nil, wrapErr(err)
	}
	for i := range out {
		out[i].Attachments = atts[out[i].ID]
	}
	return out, nil
}

func (r *ArtifactRepository) loadLinks(ctx context.Context, a *entity.Artifact) error {
	rows, err := r.pool.Query(ctx, `
		SELECT milestone_id FROM artifact_milestones WHERE artifact_id = $1
	`, a.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		a.MilestoneIDs = append(a.MilestoneIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.pool.Query(ctx, `
		SELECT daily_goal_id FROM artifact_daily_goals WHERE artifact_id = $1
	`, a.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		a.DailyGoalIDs = append(a.DailyGoalIDs, id)
	}
	return rows.Err()
}

func (r *ArtifactRepository) loadAttachments(ctx context.Context, artifactIDs []string) (map[string][]entity.ArtifactAttachment, error) {
	out := make(map[string][]entity.ArtifactAttachment)
	if len(artifactIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, artifact_id, kind, path_or_url, mime_type, size, created_at
		FROM artifact_attachments
		WHERE artifact_id = ANY($1)
		ORDER BY created_at ASC
	`, artifactIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var at entity.ArtifactAttachment
		if err := rows.Scan(&at.ID, &at.ArtifactID, &at.Kind, &at.PathOrURL,
			&at.MimeType, &at.Size, &at.CreatedAt); err != nil {
			return nil, err
		}
		out[at.ArtifactID] = append(out[at.ArtifactID], at)
	}
	return out, rows.Err()
}

var _ repository.ArtifactRepository = (*ArtifactRepository)(nil)
