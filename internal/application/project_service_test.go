package application

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/storage"
)

// fakeStore records uploads and hands back deterministic public paths.
type fakeStore struct {
	keys []string
}

func (f *fakeStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	f.keys = append(f.keys, key)
	return "/uploads/" + key, nil
}

func (f *fakeStore) Delete(context.Context, string) error { return nil }

var _ storage.ObjectStorage = (*fakeStore)(nil)

func newProjectFixture() (*ProjectService, *fakeProjects, *fakeArtifacts, *fakeStore) {
	projects := newFakeProjects()
	artifacts := newFakeArtifacts(
		&entity.Artifact{ID: "a1", OwnerID: "u1", Visibility: entity.VisibilityPublic},
		&entity.Artifact{ID: "foreign-a", OwnerID: "intruder"},
	)
	store := &fakeStore{}
	return NewProjectService(projects, artifacts, store, nil, nil), projects, artifacts, store
}

func projectInput(title string) ProjectInput {
	return ProjectInput{
		Title:       title,
		Description: "what was built and why",
		Role:        "backend developer",
		WorkDate:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		PublishedAt: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Visibility:  entity.VisibilityPublic,
	}
}

func pngUpload() *ImageUpload {
	return &ImageUpload{
		Filename:    "cover.png",
		ContentType: "image/png",
		Size:        4,
		Reader:      strings.NewReader("fake"),
	}
}

func TestCreateProjectWithUploadedImage(t *testing.T) {
	svc, projects, _, store := newProjectFixture()

	in := projectInput("Portfolio site")
	in.ArtifactIDs = []string{"a1", "foreign-a"}
	in.TechStack = "Go, Postgres, Go"

	p, err := svc.Create(context.Background(), "u1", in, pngUpload())
	require.NoError(t, err)

	require.Len(t, store.keys, 1)
	assert.Equal(t, "/uploads/"+store.keys[0], p.ImageURL)
	assert.Equal(t, []string{"a1"}, p.ArtifactIDs)
	assert.Equal(t, []string{"Go", "Postgres"}, p.TechStack)
	assert.Contains(t, projects.byID, p.ID)
}

func TestCreateProjectImageRequired(t *testing.T) {
	svc, projects, _, _ := newProjectFixture()

	_, err := svc.Create(context.Background(), "u1", projectInput("no image"), nil)
	assert.ErrorIs(t, err, ErrImageRequired)
	assert.Empty(t, projects.byID)
}

func TestCreateProjectRejectsNonImage(t *testing.T) {
	svc, projects, _, _ := newProjectFixture()

	upload := &ImageUpload{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Size:        4,
		Reader:      strings.NewReader("fake"),
	}
	_, err := svc.Create(context.Background(), "u1", projectInput("bad upload"), upload)
	assert.ErrorIs(t, err, ErrInvalidImage)
	assert.Empty(t, projects.byID)
}

func TestCreateProjectImageURLFallback(t *testing.T) {
	svc, _, _, store := newProjectFixture()

	in := projectInput("linked image")
	in.ImageURL = "https://cdn.example.com/cover.png"

	p, err := svc.Create(context.Background(), "u1", in, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cover.png", p.ImageURL)
	assert.Empty(t, store.keys)
}

func TestUpdateProjectKeepsStoredImage(t *testing.T) {
	svc, _, _, _ := newProjectFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", projectInput("v1"), pngUpload())
	require.NoError(t, err)

	// edit without a new file or URL keeps the existing image
	updated, err := svc.Update(ctx, "u1", created.ID, projectInput("v2"), nil)
	require.NoError(t, err)
	assert.Equal(t, created.ImageURL, updated.ImageURL)
	assert.Equal(t, "v2", updated.Title)
}

func TestUpdateProjectCrossOwner(t *testing.T) {
	svc, _, _, _ := newProjectFixture()
	ctx := context.Background()

	created, err := svc.Create(ctx, "u1", projectInput("mine"), pngUpload())
	require.NoError(t, err)

	_, err = svc.Update(ctx, "intruder", created.ID, projectInput("hijack"), pngUpload())
	assert.ErrorIs(t, err, ErrNotOwned)
}
