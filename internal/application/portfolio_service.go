package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/guard"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
)

// PortfolioService serves the unauthenticated read side. Everything it
// returns has been filtered to PUBLIC before leaving the service, so handlers
// and caches never hold private rows.
type PortfolioService struct {
	Artifacts repository.ArtifactRepository
	Projects  repository.ProjectRepository
	Cache     *ViewCache
	Search    *ArtifactIndex
	Logger    *logrus.Logger
}

func NewPortfolioService(artifacts repository.ArtifactRepository, projects repository.ProjectRepository, cache *ViewCache, search *ArtifactIndex, logger *logrus.Logger) *PortfolioService {
	return &PortfolioService{Artifacts: artifacts, Projects: projects, Cache: cache, Search: search, Logger: logger}
}

// PortfolioView is the landing-page payload: public projects and artifacts.
type PortfolioView struct {
	Projects  []entity.Project  `json:"projects"`
	Artifacts []entity.Artifact `json:"artifacts"`
}

// ProjectDetailView is one public project with its public linked artifacts.
type ProjectDetailView struct {
	Project   entity.Project    `json:"project"`
	Artifacts []entity.Artifact `json:"artifacts"`
}

// Portfolio returns the cached landing page, rebuilding it from the database
// on a miss.
func (s *PortfolioService) Portfolio(ctx context.Context) (*PortfolioView, error) {
	var view PortfolioView
	if s.Cache.Get(ctx, CacheKeyPortfolio, &view) {
		return &view, nil
	}
	projects, err := s.Projects.ListPublic(ctx)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	artifacts, err := s.Artifacts.ListPublic(ctx)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if projects == nil {
		projects = []entity.Project{}
	}
	if artifacts == nil {
		artifacts = []entity.Artifact{}
	}
	view = PortfolioView{Projects: projects, Artifacts: artifacts}
	s.Cache.Set(ctx, CacheKeyPortfolio, view)
	return &view, nil
}

// PublicProjects returns the cached public project list.
func (s *PortfolioService) PublicProjects(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	if s.Cache.Get(ctx, CacheKeyProjects, &projects) {
		return projects, nil
	}
	projects, err := s.Projects.ListPublic(ctx)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if projects == nil {
		projects = []entity.Project{}
	}
	s.Cache.Set(ctx, CacheKeyProjects, projects)
	return projects, nil
}

// PublicProject returns one public project with its linked artifacts. Linked
// artifacts are filtered again at read time: a link to an artifact that has
// since gone private simply drops off the page.
func (s *PortfolioService) PublicProject(ctx context.Context, id string) (*ProjectDetailView, error) {
	var view ProjectDetailView
	if s.Cache.Get(ctx, CacheKeyProject(id), &view) {
		return &view, nil
	}
	p, err := s.Projects.GetPublicByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	linked, err := s.Artifacts.ListByIDs(ctx, p.ArtifactIDs)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	visible := make([]entity.Artifact, 0, len(linked))
	for _, a := range linked {
		if a.Visibility == guard.PublicOnly() {
			visible = append(visible, a)
		}
	}
	view = ProjectDetailView{Project: *p, Artifacts: visible}
	s.Cache.Set(ctx, CacheKeyProject(id), view)
	return &view, nil
}

// SearchArtifacts runs the visitor search over public artifacts.
func (s *PortfolioService) SearchArtifacts(ctx context.Context, query string, size int) ([]ArtifactHit, error) {
	hits, err := s.Search.Search(ctx, query, size)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("artifact search failed")
		}
		return []ArtifactHit{}, nil
	}
	if hits == nil {
		hits = []ArtifactHit{}
	}
	return hits, nil
}
