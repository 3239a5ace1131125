package repository

import (
	"context"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

// ArtifactFilter narrows owner-scoped artifact listings. Zero values mean
// "no filter"; Limit <= 0 means no pagination.
type ArtifactFilter struct {
	Type       entity.ArtifactType
	Visibility entity.Visibility
	Offset     int
	Limit      int
}

// ArtifactRepository defines artifact database operations. Create and Update
// write the row, its cross-links, and attachments in one transaction; Update
// replaces all link rows rather than diffing.
type ArtifactRepository interface {
	Create(ctx context.Context, a *entity.Artifact) error
	Update(ctx context.Context, a *entity.Artifact) error
	AppendAttachments(ctx context.Context, artifactID string, atts []entity.ArtifactAttachment) error
	SetVisibility(ctx context.Context, id, ownerID string, v entity.Visibility) error
	Delete(ctx context.Context, id, ownerID string) error
	GetOwned(ctx context.Context, id, ownerID string) (*entity.Artifact, error)
	ListByOwner(ctx context.Context, ownerID string, f ArtifactFilter) ([]entity.Artifact, error)
	CountByOwner(ctx context.Context, ownerID string, f ArtifactFilter) (int, error)
	ListPublic(ctx context.Context) ([]entity.Artifact, error)
	ListByIDs(ctx context.Context, ids []string) ([]entity.Artifact, error)
	FilterOwnedIDs(ctx context.Context, ids []string, ownerID string) ([]string, error)
	// LinkedProjectIDs returns the ids of projects that link the artifact,
	// for invalidating their cached detail views.
	LinkedProjectIDs(ctx context.Context, artifactID string) ([]string, error)
}
