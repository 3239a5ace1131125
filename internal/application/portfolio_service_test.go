package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

func newPortfolioFixture() (*PortfolioService, *fakeArtifacts, *fakeProjects) {
	artifacts := newFakeArtifacts(
		&entity.Artifact{ID: "pub-a", OwnerID: "u1", Title: "Public cert", Visibility: entity.VisibilityPublic,
			Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		&entity.Artifact{ID: "priv-a", OwnerID: "u1", Title: "Private draft", Visibility: entity.VisibilityPrivate,
			Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
	)
	projects := newFakeProjects(
		&entity.Project{ID: "pub-p", OwnerID: "u1", Title: "Public project", Visibility: entity.VisibilityPublic,
			ArtifactIDs: []string{"pub-a", "priv-a"}},
		&entity.Project{ID: "priv-p", OwnerID: "u1", Title: "Private project", Visibility: entity.VisibilityPrivate},
	)
	return NewPortfolioService(artifacts, projects, nil, nil, nil), artifacts, projects
}

func TestPortfolioExcludesPrivate(t *testing.T) {
	svc, _, _ := newPortfolioFixture()

	view, err := svc.Portfolio(context.Background())
	require.NoError(t, err)

	require.Len(t, view.Projects, 1)
	assert.Equal(t, "pub-p", view.Projects[0].ID)
	require.Len(t, view.Artifacts, 1)
	assert.Equal(t, "pub-a", view.Artifacts[0].ID)
}

func TestPublicProjectFiltersLinkedArtifacts(t *testing.T) {
	svc, _, _ := newPortfolioFixture()

	view, err := svc.PublicProject(context.Background(), "pub-p")
	require.NoError(t, err)

	assert.Equal(t, "pub-p", view.Project.ID)
	// the private linked artifact drops off the page
	require.Len(t, view.Artifacts, 1)
	assert.Equal(t, "pub-a", view.Artifacts[0].ID)
}

func TestPublicProjectHidesPrivateProject(t *testing.T) {
	svc, _, _ := newPortfolioFixture()
	ctx := context.Background()

	_, err := svc.PublicProject(ctx, "priv-p")
	assert.ErrorIs(t, err, ErrNotOwned)
	_, err = svc.PublicProject(ctx, "no-such")
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestVisibilityToggleReachesPublicViews(t *testing.T) {
	artifacts := newFakeArtifacts(
		&entity.Artifact{ID: "a1", OwnerID: "u1", Title: "Contest entry", Visibility: entity.VisibilityPrivate},
	)
	projects := newFakeProjects()
	portfolio := NewPortfolioService(artifacts, projects, nil, nil, nil)
	artifactSvc := NewArtifactService(artifacts, newFakeMilestones(newFakeRoadmaps()), newFakeGoals(newFakePlans()), nil, nil, nil, nil)
	ctx := context.Background()

	view, err := portfolio.Portfolio(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Artifacts)

	_, err = artifactSvc.ToggleVisibility(ctx, "u1", "a1")
	require.NoError(t, err)

	view, err = portfolio.Portfolio(ctx)
	require.NoError(t, err)
	require.Len(t, view.Artifacts, 1)
	assert.Equal(t, "a1", view.Artifacts[0].ID)
}

func TestSearchArtifactsWithoutIndex(t *testing.T) {
	svc, _, _ := newPortfolioFixture()

	hits, err := svc.SearchArtifacts(context.Background(), "cert", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
