package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
	"github.com/grainworks/portfolio-api/internal/storage"
	"github.com/grainworks/portfolio-api/pkg/helpers"
)

// ProjectService owns project CRUD. Every project carries exactly one
// representative image, uploaded or given as a URL.
type ProjectService struct {
	Projects  repository.ProjectRepository
	Artifacts repository.ArtifactRepository
	Store     storage.ObjectStorage
	Cache     *ViewCache
	Logger    *logrus.Logger
}

func NewProjectService(projects repository.ProjectRepository, artifacts repository.ArtifactRepository, store storage.ObjectStorage, cache *ViewCache, logger *logrus.Logger) *ProjectService {
	return &ProjectService{Projects: projects, Artifacts: artifacts, Store: store, Cache: cache, Logger: logger}
}

// ProjectInput carries validated project fields. TechStack is the raw
// comma-separated form value. ImageURL is used when no file is uploaded.
type ProjectInput struct {
	Title        string
	Category     string
	Topic        string
	Description  string
	ImageURL     string
	WorkDate     time.Time
	PublishedAt  time.Time
	SnsPromoText string
	Role         string
	PeriodStart  *time.Time
	PeriodEnd    *time.Time
	TechStack    string
	RepoURL      string
	DemoURL      string
	Visibility   entity.Visibility
	ArtifactIDs  []string
}

// resolveImage prefers an uploaded file over the URL field. A non-image file
// fails with ErrInvalidImage; ending up with neither fails with
// ErrImageRequired.
func (s *ProjectService) resolveImage(ctx context.Context, image *ImageUpload, urlFallback string) (string, error) {
	uploaded, err := saveProjectImage(ctx, s.Store, image)
	if err != nil {
		return "", err
	}
	if uploaded != "" {
		return uploaded, nil
	}
	if urlFallback == "" {
		return "", ErrImageRequired
	}
	return urlFallback, nil
}

func (s *ProjectService) Create(ctx context.Context, ownerID string, in ProjectInput, image *ImageUpload) (*entity.Project, error) {
	imageURL, err := s.resolveImage(ctx, image, in.ImageURL)
	if err != nil {
		return nil, err
	}
	artifactIDs, err := s.Artifacts.FilterOwnedIDs(ctx, in.ArtifactIDs, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	now := time.Now()
	p := &entity.Project{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Title:        in.Title,
		Category:     in.Category,
		Topic:        in.Topic,
		Description:  in.Description,
		ImageURL:     imageURL,
		WorkDate:     in.WorkDate,
		PublishedAt:  in.PublishedAt,
		SnsPromoText: in.SnsPromoText,
		Role:         in.Role,
		PeriodStart:  in.PeriodStart,
		PeriodEnd:    in.PeriodEnd,
		TechStack:    helpers.NormalizeList(in.TechStack),
		RepoURL:      in.RepoURL,
		DemoURL:      in.DemoURL,
		Visibility:   in.Visibility,
		ArtifactIDs:  artifactIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Projects.Create(ctx, p); err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate(ctx, p.ID)
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, ownerID, id string, in ProjectInput, image *ImageUpload) (*entity.Project, error) {
	p, err := s.Projects.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	// An edit may keep the stored image: fall back to it when the form
	// carries neither a file nor a URL.
	urlFallback := in.ImageURL
	if urlFallback == "" {
		urlFallback = p.ImageURL
	}
	imageURL, err := s.resolveImage(ctx, image, urlFallback)
	if err != nil {
		return nil, err
	}
	artifactIDs, err := s.Artifacts.FilterOwnedIDs(ctx, in.ArtifactIDs, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	p.Title = in.Title
	p.Category = in.Category
	p.Topic = in.Topic
	p.Description = in.Description
	p.ImageURL = imageURL
	p.WorkDate = in.WorkDate
	p.PublishedAt = in.PublishedAt
	p.SnsPromoText = in.SnsPromoText
	p.Role = in.Role
	p.PeriodStart = in.PeriodStart
	p.PeriodEnd = in.PeriodEnd
	p.TechStack = helpers.NormalizeList(in.TechStack)
	p.RepoURL = in.RepoURL
	p.DemoURL = in.DemoURL
	p.Visibility = in.Visibility
	p.ArtifactIDs = artifactIDs
	p.UpdatedAt = time.Now()
	if err := s.Projects.Update(ctx, p); err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate(ctx, p.ID)
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.Projects.Delete(ctx, id, ownerID); err != nil {
		return mapRepoErr(err)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ProjectService) Get(ctx context.Context, ownerID, id string) (*entity.Project, error) {
	p, err := s.Projects.GetOwned(ctx, id, ownerID)
	return p, mapRepoErr(err)
}

func (s *ProjectService) List(ctx context.Context, ownerID string) ([]entity.Project, error) {
	out, err := s.Projects.ListByOwner(ctx, ownerID)
	return out, mapRepoErr(err)
}

func (s *ProjectService) invalidate(ctx context.Context, id string) {
	s.Cache.Invalidate(ctx, CacheKeyPortfolio, CacheKeyProjects, CacheKeyProject(id))
}
