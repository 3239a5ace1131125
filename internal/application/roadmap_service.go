package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
	"github.com/grainworks/portfolio-api/pkg/helpers"
)

// RoadmapService owns roadmap and milestone CRUD plus the reorder protocol.
type RoadmapService struct {
	Roadmaps   repository.RoadmapRepository
	Milestones repository.MilestoneRepository
	Logger     *logrus.Logger
}

func NewRoadmapService(roadmaps repository.RoadmapRepository, milestones repository.MilestoneRepository, logger *logrus.Logger) *RoadmapService {
	return &RoadmapService{Roadmaps: roadmaps, Milestones: milestones, Logger: logger}
}

// RoadmapInput carries validated roadmap fields from the HTTP layer.
type RoadmapInput struct {
	Title          string
	TargetRole     string
	TargetIndustry string
}

// MilestoneInput carries validated milestone fields. CompetencyTags is the
// raw comma-separated form value; normalization happens here.
type MilestoneInput struct {
	Title          string
	Description    string
	DueDate        *time.Time
	Status         entity.MilestoneStatus
	SortOrder      int
	CompetencyTags string
}

func (s *RoadmapService) CreateRoadmap(ctx context.Context, ownerID string, in RoadmapInput) (*entity.Roadmap, error) {
	now := time.Now()
	r := &entity.Roadmap{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Title:          in.Title,
		TargetRole:     in.TargetRole,
		TargetIndustry: in.TargetIndustry,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Roadmaps.Create(ctx, r); err != nil {
		return nil, mapRepoErr(err)
	}
	return r, nil
}

func (s *RoadmapService) UpdateRoadmap(ctx context.Context, ownerID, id string, in RoadmapInput) (*entity.Roadmap, error) {
	r, err := s.Roadmaps.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	r.Title = in.Title
	r.TargetRole = in.TargetRole
	r.TargetIndustry = in.TargetIndustry
	r.UpdatedAt = time.Now()
	if err := s.Roadmaps.Update(ctx, r); err != nil {
		return nil, mapRepoErr(err)
	}
	return r, nil
}

// DeleteRoadmap removes the roadmap and, through the schema's cascade, its
// milestones. Deleting a missing or foreign roadmap yields ErrNotOwned.
func (s *RoadmapService) DeleteRoadmap(ctx context.Context, ownerID, id string) error {
	return mapRepoErr(s.Roadmaps.Delete(ctx, id, ownerID))
}

func (s *RoadmapService) ListRoadmaps(ctx context.Context, ownerID string) ([]entity.Roadmap, error) {
	out, err := s.Roadmaps.ListByOwner(ctx, ownerID)
	return out, mapRepoErr(err)
}

// ListMilestones returns the roadmap's milestones in display order after
// checking the roadmap belongs to the caller.
func (s *RoadmapService) ListMilestones(ctx context.Context, ownerID, roadmapID string) ([]entity.Milestone, error) {
	if _, err := s.Roadmaps.GetOwned(ctx, roadmapID, ownerID); err != nil {
		return nil, mapRepoErr(err)
	}
	out, err := s.Milestones.ListByRoadmap(ctx, roadmapID)
	return out, mapRepoErr(err)
}

func (s *RoadmapService) CreateMilestone(ctx context.Context, ownerID, roadmapID string, in MilestoneInput) (*entity.Milestone, error) {
	if _, err := s.Roadmaps.GetOwned(ctx, roadmapID, ownerID); err != nil {
		return nil, mapRepoErr(err)
	}
	now := time.Now()
	m := &entity.Milestone{
		ID:             uuid.NewString(),
		RoadmapID:      roadmapID,
		Title:          in.Title,
		Description:    in.Description,
		DueDate:        in.DueDate,
		Status:         in.Status,
		SortOrder:      in.SortOrder,
		CompetencyTags: helpers.NormalizeList(in.CompetencyTags),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Milestones.Create(ctx, m); err != nil {
		return nil, mapRepoErr(err)
	}
	return m, nil
}

// UpdateMilestone rewrites the milestone's fields. It never moves a milestone
// between roadmaps.
func (s *RoadmapService) UpdateMilestone(ctx context.Context, ownerID, id string, in MilestoneInput) (*entity.Milestone, error) {
	m, err := s.Milestones.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	m.Title = in.Title
	m.Description = in.Description
	m.DueDate = in.DueDate
	m.Status = in.Status
	m.SortOrder = in.SortOrder
	m.CompetencyTags = helpers.NormalizeList(in.CompetencyTags)
	m.UpdatedAt = time.Now()
	if err := s.Milestones.Update(ctx, m); err != nil {
		return nil, mapRepoErr(err)
	}
	return m, nil
}

func (s *RoadmapService) DeleteMilestone(ctx context.Context, ownerID, id string) error {
	return mapRepoErr(s.Milestones.Delete(ctx, id, ownerID))
}

// ReorderMilestones validates that orderedIDs is exactly the set of
// milestones under the caller's roadmap, then rewrites every sort order in
// one transaction. A stale or tampered id list fails whole with
// ErrOrderSetMismatch and the stored order stays untouched.
func (s *RoadmapService) ReorderMilestones(ctx context.Context, ownerID, roadmapID string, orderedIDs []string) error {
	if _, err := s.Roadmaps.GetOwned(ctx, roadmapID, ownerID); err != nil {
		return mapRepoErr(err)
	}
	existing, err := s.Milestones.ListIDsByRoadmap(ctx, roadmapID)
	if err != nil {
		return mapRepoErr(err)
	}
	if !sameIDSet(existing, orderedIDs) {
		return ErrOrderSetMismatch
	}
	return mapRepoErr(s.Milestones.Reorder(ctx, orderedIDs))
}

// sameIDSet compares two id lists as sets by sorted equality. Duplicates in
// the request make the lists unequal because stored ids are unique.
func sameIDSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
