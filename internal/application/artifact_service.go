package application

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
	"github.com/grainworks/portfolio-api/internal/storage"
	"github.com/grainworks/portfolio-api/pkg/helpers"
)

// PageSize is the fixed page length for dashboard artifact listings.
const PageSize = 8

// ArtifactService owns artifact CRUD, cross-link filtering, attachment
// uploads, visibility toggling and search-index upkeep.
type ArtifactService struct {
	Artifacts  repository.ArtifactRepository
	Milestones repository.MilestoneRepository
	Goals      repository.DailyGoalRepository
	Store      storage.ObjectStorage
	Cache      *ViewCache
	Search     *ArtifactIndex
	Logger     *logrus.Logger
}

func NewArtifactService(
	artifacts repository.ArtifactRepository,
	milestones repository.MilestoneRepository,
	goals repository.DailyGoalRepository,
	store storage.ObjectStorage,
	cache *ViewCache,
	search *ArtifactIndex,
	logger *logrus.Logger,
) *ArtifactService {
	return &ArtifactService{
		Artifacts:  artifacts,
		Milestones: milestones,
		Goals:      goals,
		Store:      store,
		Cache:      cache,
		Search:     search,
		Logger:     logger,
	}
}

// ArtifactInput carries validated artifact fields. Tags is the raw
// comma-separated form value; MilestoneIDs and DailyGoalIDs are requested
// cross-links, silently intersected with what the caller owns.
type ArtifactInput struct {
	Type         entity.ArtifactType
	Title        string
	Summary      string
	ContentMd    string
	Date         time.Time
	Tags         string
	LinkURL      string
	Visibility   entity.Visibility
	MilestoneIDs []string
	DailyGoalIDs []string
}

// ListArtifactsQuery narrows the dashboard listing. Tag filtering applies to
// the fetched page, after pagination.
type ListArtifactsQuery struct {
	Type       entity.ArtifactType
	Visibility entity.Visibility
	Tag        string
	Page       int
}

// ArtifactPage is one page of the dashboard listing.
type ArtifactPage struct {
	Items      []entity.Artifact `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

func (s *ArtifactService) Create(ctx context.Context, ownerID string, in ArtifactInput, images []ImageUpload) (*entity.Artifact, error) {
	milestoneIDs, goalIDs, err := s.filterLinks(ctx, ownerID, in.MilestoneIDs, in.DailyGoalIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	a := &entity.Artifact{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Type:         in.Type,
		Title:        in.Title,
		Summary:      in.Summary,
		ContentMd:    in.ContentMd,
		Date:         in.Date,
		Tags:         helpers.NormalizeList(in.Tags),
		LinkURL:      in.LinkURL,
		Visibility:   in.Visibility,
		MilestoneIDs: milestoneIDs,
		DailyGoalIDs: goalIDs,
		Attachments:  saveArtifactImages(ctx, s.Store, s.Logger, images),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i := range a.Attachments {
		a.Attachments[i].ArtifactID = a.ID
	}
	if err := s.Artifacts.Create(ctx, a); err != nil {
		return nil, mapRepoErr(err)
	}
	s.afterMutation(ctx, a)
	return a, nil
}

func (s *ArtifactService) Update(ctx context.Context, ownerID, id string, in ArtifactInput, images []ImageUpload) (*entity.Artifact, error) {
	a, err := s.Artifacts.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	milestoneIDs, goalIDs, err := s.filterLinks(ctx, ownerID, in.MilestoneIDs, in.DailyGoalIDs)
	if err != nil {
		return nil, err
	}

	a.Type = in.Type
	a.Title = in.Title
	a.Summary = in.Summary
	a.ContentMd = in.ContentMd
	a.Date = in.Date
	a.Tags = helpers.NormalizeList(in.Tags)
	a.LinkURL = in.LinkURL
	a.Visibility = in.Visibility
	a.MilestoneIDs = milestoneIDs
	a.DailyGoalIDs = goalIDs
	a.UpdatedAt = time.Now()
	if err := s.Artifacts.Update(ctx, a); err != nil {
		return nil, mapRepoErr(err)
	}

	if atts := saveArtifactImages(ctx, s.Store, s.Logger, images); len(atts) > 0 {
		for i := range atts {
			atts[i].ArtifactID = a.ID
		}
		if err := s.Artifacts.AppendAttachments(ctx, a.ID, atts); err != nil {
			return nil, mapRepoErr(err)
		}
		a.Attachments = append(a.Attachments, atts...)
	}
	s.afterMutation(ctx, a)
	return a, nil
}

// ToggleVisibility flips PUBLIC/PRIVATE and keeps the public views and the
// search index in step.
func (s *ArtifactService) ToggleVisibility(ctx context.Context, ownerID, id string) (*entity.Artifact, error) {
	a, err := s.Artifacts.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	a.Visibility = a.Visibility.Toggle()
	if err := s.Artifacts.SetVisibility(ctx, id, ownerID, a.Visibility); err != nil {
		return nil, mapRepoErr(err)
	}
	s.afterMutation(ctx, a)
	return a, nil
}

func (s *ArtifactService) Delete(ctx context.Context, ownerID, id string) error {
	// Capture the linking projects before the row and its links go away.
	keys := s.viewKeys(ctx, id)
	if err := s.Artifacts.Delete(ctx, id, ownerID); err != nil {
		return mapRepoErr(err)
	}
	s.Cache.Invalidate(ctx, keys...)
	s.Search.Remove(ctx, id)
	return nil
}

func (s *ArtifactService) Get(ctx context.Context, ownerID, id string) (*entity.Artifact, error) {
	a, err := s.Artifacts.GetOwned(ctx, id, ownerID)
	return a, mapRepoErr(err)
}

// List returns one dashboard page. The requested page is clamped into
// [1, totalPages] so an out-of-range request lands on a real page instead of
// an empty one.
func (s *ArtifactService) List(ctx context.Context, ownerID string, q ListArtifactsQuery) (*ArtifactPage, error) {
	f := repository.ArtifactFilter{Type: q.Type, Visibility: q.Visibility}
	total, err := s.Artifacts.CountByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	f.Offset = (page - 1) * PageSize
	f.Limit = PageSize
	items, err := s.Artifacts.ListByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if q.Tag != "" {
		filtered := items[:0]
		for _, a := range items {
			if slices.Contains(a.Tags, q.Tag) {
				filtered = append(filtered, a)
			}
		}
		items = filtered
	}
	if items == nil {
		items = []entity.Artifact{}
	}
	return &ArtifactPage{Items: items, Total: total, Page: page, TotalPages: totalPages}, nil
}

// filterLinks intersects requested cross-link ids with the ones the caller
// actually owns. Foreign ids are dropped silently, the write still succeeds.
func (s *ArtifactService) filterLinks(ctx context.Context, ownerID string, milestoneIDs, goalIDs []string) ([]string, []string, error) {
	ms, err := s.Milestones.FilterOwnedIDs(ctx, milestoneIDs, ownerID)
	if err != nil {
		return nil, nil, mapRepoErr(err)
	}
	gs, err := s.Goals.FilterOwnedIDs(ctx, goalIDs, ownerID)
	if err != nil {
		return nil, nil, mapRepoErr(err)
	}
	return ms, gs, nil
}

func (s *ArtifactService) afterMutation(ctx context.Context, a *entity.Artifact) {
	s.Cache.Invalidate(ctx, s.viewKeys(ctx, a.ID)...)
	s.Search.Put(ctx, a)
}

// viewKeys lists every cached public view an artifact mutation can go stale
// in: the landing page, the project list, and the detail page of each project
// linking the artifact.
func (s *ArtifactService) viewKeys(ctx context.Context, artifactID string) []string {
	keys := []string{CacheKeyPortfolio, CacheKeyProjects}
	if !s.Cache.Enabled() {
		return keys
	}
	projectIDs, err := s.Artifacts.LinkedProjectIDs(ctx, artifactID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("linked project lookup failed, detail caches kept")
		}
		return keys
	}
	for _, id := range projectIDs {
		keys = append(keys, CacheKeyProject(id))
	}
	return keys
}
