package repository

import (
	"context"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

// RoadmapRepository defines roadmap database operations. All single-row
// lookups and mutations are scoped by owner id; a missing or foreign row
// yields ErrNotFound.
type RoadmapRepository interface {
	Create(ctx context.Context, r *entity.Roadmap) error
	Update(ctx context.Context, r *entity.Roadmap) error
	Delete(ctx context.Context, id, ownerID string) error
	GetOwned(ctx context.Context, id, ownerID string) (*entity.Roadmap, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Roadmap, error)
}

// MilestoneRepository defines milestone database operations. Ownership is
// transitive through the parent roadmap: scoped methods join on the roadmap
// owner rather than carrying an owner column.
type MilestoneRepository interface {
	Create(ctx context.Context, m *entity.Milestone) error
	Update(ctx context.Context, m *entity.Milestone) error
	Delete(ctx context.Context, id, ownerID string) error
	GetOwned(ctx context.Context, id, ownerID string) (*entity.Milestone, error)
	// ListByRoadmap returns milestones ordered by sort order ascending,
	// creation time breaking ties.
	ListByRoadmap(ctx context.Context, roadmapID string) ([]entity.Milestone, error)
	ListIDsByRoadmap(ctx context.Context, roadmapID string) ([]string, error)
	// Reorder persists sort_order = index for each id in one transaction.
	Reorder(ctx context.Context, orderedIDs []string) error
	// FilterOwnedIDs intersects the requested ids with those owned (via the
	// parent roadmap) by ownerID, preserving input order.
	FilterOwnedIDs(ctx context.Context, ids []string, ownerID string) ([]string, error)
}
