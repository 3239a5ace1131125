package repository

import (
	"context"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

// ProjectRepository defines project database operations. Create and Update
// write the row and its artifact links in one transaction; Update replaces
// all link rows.
type ProjectRepository interface {
	Create(ctx context.Context, p *entity.Project) error
	Update(ctx context.Context, p *entity.Project) error
	Delete(ctx context.Context, id, ownerID string) error
	GetOwned(ctx context.Context, id, ownerID string) (*entity.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Project, error)
	ListPublic(ctx context.Context) ([]entity.Project, error)
	GetPublicByID(ctx context.Context, id string) (*entity.Project, error)
}
