package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
)

func newRoadmapFixture() (*RoadmapService, *fakeRoadmaps, *fakeMilestones) {
	roadmaps := newFakeRoadmaps(
		&entity.Roadmap{ID: "r1", OwnerID: "u1", Title: "Backend developer"},
		&entity.Roadmap{ID: "r2", OwnerID: "intruder", Title: "Someone else's"},
	)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	milestones := newFakeMilestones(roadmaps,
		&entity.Milestone{ID: "mA", RoadmapID: "r1", Title: "Learn SQL", SortOrder: 0, CreatedAt: base},
		&entity.Milestone{ID: "mB", RoadmapID: "r1", Title: "Build an API", SortOrder: 1, CreatedAt: base.Add(time.Minute)},
		&entity.Milestone{ID: "mC", RoadmapID: "r1", Title: "Ship a project", SortOrder: 2, CreatedAt: base.Add(2 * time.Minute)},
	)
	return NewRoadmapService(roadmaps, milestones, nil), roadmaps, milestones
}

func TestCreateMilestoneChecksRoadmapOwnership(t *testing.T) {
	svc, _, _ := newRoadmapFixture()
	ctx := context.Background()

	_, err := svc.CreateMilestone(ctx, "u1", "r2", MilestoneInput{Title: "sneaky", Status: entity.MilestoneTodo})
	assert.ErrorIs(t, err, ErrNotOwned)

	m, err := svc.CreateMilestone(ctx, "u1", "r1", MilestoneInput{
		Title:          "Read docs",
		Status:         entity.MilestoneTodo,
		CompetencyTags: "Go, SQL, Go",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, m.CompetencyTags)
}

func TestUpdateMilestoneCrossOwner(t *testing.T) {
	svc, _, _ := newRoadmapFixture()

	_, err := svc.UpdateMilestone(context.Background(), "intruder", "mA", MilestoneInput{Title: "hijack", Status: entity.MilestoneDone})
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestReorderMilestones(t *testing.T) {
	svc, _, milestones := newRoadmapFixture()
	ctx := context.Background()

	require.NoError(t, svc.ReorderMilestones(ctx, "u1", "r1", []string{"mC", "mA", "mB"}))
	require.Len(t, milestones.reordered, 1)
	assert.Equal(t, []string{"mC", "mA", "mB"}, milestones.reordered[0])

	got, err := svc.ListMilestones(ctx, "u1", "r1")
	require.NoError(t, err)
	ids := make([]string, len(got))
	orders := make([]int, len(got))
	for i, m := range got {
		ids[i] = m.ID
		orders[i] = m.SortOrder
	}
	assert.Equal(t, []string{"mC", "mA", "mB"}, ids)
	assert.Equal(t, []int{0, 1, 2}, orders)
}

func TestReorderMilestonesIdempotent(t *testing.T) {
	svc, _, milestones := newRoadmapFixture()
	ctx := context.Background()

	order := []string{"mB", "mC", "mA"}
	require.NoError(t, svc.ReorderMilestones(ctx, "u1", "r1", order))
	require.NoError(t, svc.ReorderMilestones(ctx, "u1", "r1", order))

	got, err := svc.ListMilestones(ctx, "u1", "r1")
	require.NoError(t, err)
	ids := make([]string, len(got))
	for i, m := range got {
		ids[i] = m.ID
	}
	assert.Equal(t, order, ids)
	assert.Len(t, milestones.reordered, 2)
}

func TestReorderMilestonesSetMismatch(t *testing.T) {
	svc, _, milestones := newRoadmapFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		ids  []string
	}{
		{"missing id", []string{"mA", "mB"}},
		{"extra id", []string{"mA", "mB", "mC", "mD"}},
		{"foreign id swapped in", []string{"mA", "mB", "mX"}},
		{"duplicate id", []string{"mA", "mB", "mB"}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ReorderMilestones(ctx, "u1", "r1", tt.ids)
			assert.ErrorIs(t, err, ErrOrderSetMismatch)
		})
	}
	// nothing was written on any rejected attempt
	assert.Empty(t, milestones.reordered)
}

func TestReorderMilestonesForeignRoadmap(t *testing.T) {
	svc, _, milestones := newRoadmapFixture()

	err := svc.ReorderMilestones(context.Background(), "intruder", "r1", []string{"mA", "mB", "mC"})
	assert.ErrorIs(t, err, ErrNotOwned)
	assert.Empty(t, milestones.reordered)
}

func TestDeleteRoadmapCrossOwner(t *testing.T) {
	svc, roadmaps, _ := newRoadmapFixture()

	err := svc.DeleteRoadmap(context.Background(), "intruder", "r1")
	assert.ErrorIs(t, err, ErrNotOwned)
	assert.Contains(t, roadmaps.byID, "r1")
}
