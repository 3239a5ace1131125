package application

import (
	"context"
	"sort"
	"time"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
)

// In-memory repository fakes. Lookups mirror the SQL implementations:
// owner-scoped reads return repository.ErrNotFound for both missing and
// foreign rows.

type fakeUsers struct {
	byID map[string]*entity.User
	err  error
}

func newFakeUsers(users ...*entity.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*entity.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeSessions struct {
	byToken map[string]*entity.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byToken: map[string]*entity.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, s *entity.Session) error {
	cp := *s
	f.byToken[s.Token] = &cp
	return nil
}

func (f *fakeSessions) GetByToken(_ context.Context, token string) (*entity.Session, error) {
	if s, ok := f.byToken[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSessions) DeleteByToken(_ context.Context, token string) error {
	if _, ok := f.byToken[token]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byToken, token)
	return nil
}

func (f *fakeSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for token, s := range f.byToken {
		if s.Expired(now) {
			delete(f.byToken, token)
			n++
		}
	}
	return n, nil
}

type fakeRoadmaps struct {
	byID map[string]*entity.Roadmap
}

func newFakeRoadmaps(items ...*entity.Roadmap) *fakeRoadmaps {
	f := &fakeRoadmaps{byID: map[string]*entity.Roadmap{}}
	for _, r := range items {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeRoadmaps) Create(_ context.Context, r *entity.Roadmap) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRoadmaps) Update(_ context.Context, r *entity.Roadmap) error {
	existing, ok := f.byID[r.ID]
	if !ok || existing.OwnerID != r.OwnerID {
		return repository.ErrNotFound
	}
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRoadmaps) Delete(_ context.Context, id, ownerID string) error {
	r, ok := f.byID[id]
	if !ok || r.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRoadmaps) GetOwned(_ context.Context, id, ownerID string) (*entity.Roadmap, error) {
	r, ok := f.byID[id]
	if !ok || r.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoadmaps) ListByOwner(_ context.Context, ownerID string) ([]entity.Roadmap, error) {
	var out []entity.Roadmap
	for _, r := range f.byID {
		if r.OwnerID == ownerID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeMilestones struct {
	byID     map[string]*entity.Milestone
	roadmaps *fakeRoadmaps

	reordered  [][]string
	reorderErr error
}

func newFakeMilestones(roadmaps *fakeRoadmaps, items ...*entity.Milestone) *fakeMilestones {
	f := &fakeMilestones{byID: map[string]*entity.Milestone{}, roadmaps: roadmaps}
	for _, m := range items {
		f.byID[m.ID] = m
	}
	return f
}

func (f *fakeMilestones) ownerOf(m *entity.Milestone) string {
	if r, ok := f.roadmaps.byID[m.RoadmapID]; ok {
		return r.OwnerID
	}
	return ""
}

func (f *fakeMilestones) Create(_ context.Context, m *entity.Milestone) error {
	cp := *m
	f.byID[m.ID] = &cp
	return nil
}

func (f *fakeMilestones) Update(_ context.Context, m *entity.Milestone) error {
	if _, ok := f.byID[m.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *m
	f.byID[m.ID] = &cp
	return nil
}

func (f *fakeMilestones) Delete(_ context.Context, id, ownerID string) error {
	m, ok := f.byID[id]
	if !ok || f.ownerOf(m) != ownerID {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeMilestones) GetOwned(_ context.Context, id, ownerID string) (*entity.Milestone, error) {
	m, ok := f.byID[id]
	if !ok || f.ownerOf(m) != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMilestones) ListByRoadmap(_ context.Context, roadmapID string) ([]entity.Milestone, error) {
	var out []entity.Milestone
	for _, m := range f.byID {
		if m.RoadmapID == roadmapID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeMilestones) ListIDsByRoadmap(ctx context.Context, roadmapID string) ([]string, error) {
	items, _ := f.ListByRoadmap(ctx, roadmapID)
	ids := make([]string, len(items))
	for i, m := range items {
		ids[i] = m.ID
	}
	return ids, nil
}

func (f *fakeMilestones) Reorder(_ context.Context, orderedIDs []string) error {
	if f.reorderErr != nil {
		return f.reorderErr
	}
	f.reordered = append(f.reordered, append([]string(nil), orderedIDs...))
	for i, id := range orderedIDs {
		if m, ok := f.byID[id]; ok {
			m.SortOrder = i
		}
	}
	return nil
}

func (f *fakeMilestones) FilterOwnedIDs(_ context.Context, ids []string, ownerID string) ([]string, error) {
	var out []string
	for _, id := range ids {
		if m, ok := f.byID[id]; ok && f.ownerOf(m) == ownerID {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakePlans struct {
	byID map[string]*entity.DailyPlan
}

func newFakePlans(items ...*entity.DailyPlan) *fakePlans {
	f := &fakePlans{byID: map[string]*entity.DailyPlan{}}
	for _, p := range items {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePlans) Upsert(_ context.Context, p *entity.DailyPlan) error {
	for _, existing := range f.byID {
		if existing.OwnerID == p.OwnerID && existing.Date.Equal(p.Date) {
			existing.Reflection = p.Reflection
			existing.Mood = p.Mood
			existing.UpdatedAt = p.UpdatedAt
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			return nil
		}
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePlans) GetOwned(_ context.Context, id, ownerID string) (*entity.DailyPlan, error) {
	p, ok := f.byID[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlans) GetByOwnerAndDate(_ context.Context, ownerID string, date time.Time) (*entity.DailyPlan, error) {
	for _, p := range f.byID {
		if p.OwnerID == ownerID && p.Date.Equal(date) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeGoals struct {
	byID  map[string]*entity.DailyGoal
	plans *fakePlans
}

func newFakeGoals(plans *fakePlans, items ...*entity.DailyGoal) *fakeGoals {
	f := &fakeGoals{byID: map[string]*entity.DailyGoal{}, plans: plans}
	for _, g := range items {
		f.byID[g.ID] = g
	}
	return f
}

func (f *fakeGoals) ownerOf(g *entity.DailyGoal) string {
	if p, ok := f.plans.byID[g.DailyPlanID]; ok {
		return p.OwnerID
	}
	return ""
}

func (f *fakeGoals) Create(_ context.Context, g *entity.DailyGoal) error {
	cp := *g
	f.byID[g.ID] = &cp
	return nil
}

func (f *fakeGoals) Update(_ context.Context, g *entity.DailyGoal) error {
	if _, ok := f.byID[g.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *g
	f.byID[g.ID] = &cp
	return nil
}

func (f *fakeGoals) Delete(_ context.Context, id, ownerID string) error {
	g, ok := f.byID[id]
	if !ok || f.ownerOf(g) != ownerID {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeGoals) GetOwned(_ context.Context, id, ownerID string) (*entity.DailyGoal, error) {
	g, ok := f.byID[id]
	if !ok || f.ownerOf(g) != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGoals) CountByPlan(_ context.Context, planID string) (int, error) {
	n := 0
	for _, g := range f.byID {
		if g.DailyPlanID == planID {
			n++
		}
	}
	return n, nil
}

func (f *fakeGoals) ListByPlan(_ context.Context, planID string) ([]entity.DailyGoal, error) {
	var out []entity.DailyGoal
	for _, g := range f.byID {
		if g.DailyPlanID == planID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeGoals) FilterOwnedIDs(_ context.Context, ids []string, ownerID string) ([]string, error) {
	var out []string
	for _, id := range ids {
		if g, ok := f.byID[id]; ok && f.ownerOf(g) == ownerID {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeArtifacts struct {
	byID map[string]*entity.Artifact

	// projects, when set, backs LinkedProjectIDs the way the join table does.
	projects *fakeProjects
}

func newFakeArtifacts(items ...*entity.Artifact) *fakeArtifacts {
	f := &fakeArtifacts{byID: map[string]*entity.Artifact{}}
	for _, a := range items {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeArtifacts) Create(_ context.Context, a *entity.Artifact) error {
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeArtifacts) Update(_ context.Context, a *entity.Artifact) error {
	existing, ok := f.byID[a.ID]
	if !ok || existing.OwnerID != a.OwnerID {
		return repository.ErrNotFound
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeArtifacts) AppendAttachments(_ context.Context, artifactID string, atts []entity.ArtifactAttachment) error {
	a, ok := f.byID[artifactID]
	if !ok {
		return repository.ErrNotFound
	}
	a.Attachments = append(a.Attachments, atts...)
	return nil
}

func (f *fakeArtifacts) SetVisibility(_ context.Context, id, ownerID string, v entity.Visibility) error {
	a, ok := f.byID[id]
	if !ok || a.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	a.Visibility = v
	return nil
}

func (f *fakeArtifacts) Delete(_ context.Context, id, ownerID string) error {
	a, ok := f.byID[id]
	if !ok || a.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeArtifacts) GetOwned(_ context.Context, id, ownerID string) (*entity.Artifact, error) {
	a, ok := f.byID[id]
	if !ok || a.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeArtifacts) matches(a *entity.Artifact, ownerID string, flt repository.ArtifactFilter) bool {
	if a.OwnerID != ownerID {
		return false
	}
	if flt.Type != "" && a.Type != flt.Type {
		return false
	}
	if flt.Visibility != "" && a.Visibility != flt.Visibility {
		return false
	}
	return true
}

func (f *fakeArtifacts) sorted(items []entity.Artifact) []entity.Artifact {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func (f *fakeArtifacts) ListByOwner(_ context.Context, ownerID string, flt repository.ArtifactFilter) ([]entity.Artifact, error) {
	var out []entity.Artifact
	for _, a := range f.byID {
		if f.matches(a, ownerID, flt) {
			out = append(out, *a)
		}
	}
	out = f.sorted(out)
	if flt.Limit > 0 {
		if flt.Offset >= len(out) {
			return nil, nil
		}
		end := flt.Offset + flt.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[flt.Offset:end]
	}
	return out, nil
}

func (f *fakeArtifacts) CountByOwner(_ context.Context, ownerID string, flt repository.ArtifactFilter) (int, error) {
	n := 0
	for _, a := range f.byID {
		if f.matches(a, ownerID, flt) {
			n++
		}
	}
	return n, nil
}

func (f *fakeArtifacts) ListPublic(_ context.Context) ([]entity.Artifact, error) {
	var out []entity.Artifact
	for _, a := range f.byID {
		if a.Visibility == entity.VisibilityPublic {
			out = append(out, *a)
		}
	}
	return f.sorted(out), nil
}

func (f *fakeArtifacts) ListByIDs(_ context.Context, ids []string) ([]entity.Artifact, error) {
	var out []entity.Artifact
	for _, id := range ids {
		if a, ok := f.byID[id]; ok {
			out = append(out, *a)
		}
	}
	return f.sorted(out), nil
}

func (f *fakeArtifacts) FilterOwnedIDs(_ context.Context, ids []string, ownerID string) ([]string, error) {
	var out []string
	for _, id := range ids {
		if a, ok := f.byID[id]; ok && a.OwnerID == ownerID {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeArtifacts) LinkedProjectIDs(_ context.Context, artifactID string) ([]string, error) {
	if f.projects == nil {
		return nil, nil
	}
	var out []string
	for _, p := range f.projects.byID {
		for _, id := range p.ArtifactIDs {
			if id == artifactID {
				out = append(out, p.ID)
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

type fakeProjects struct {
	byID map[string]*entity.Project
}

func newFakeProjects(items ...*entity.Project) *fakeProjects {
	f := &fakeProjects{byID: map[string]*entity.Project{}}
	for _, p := range items {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProjects) Create(_ context.Context, p *entity.Project) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProjects) Update(_ context.Context, p *entity.Project) error {
	existing, ok := f.byID[p.ID]
	if !ok || existing.OwnerID != p.OwnerID {
		return repository.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProjects) Delete(_ context.Context, id, ownerID string) error {
	p, ok := f.byID[id]
	if !ok || p.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProjects) GetOwned(_ context.Context, id, ownerID string) (*entity.Project, error) {
	p, ok := f.byID[id]
	if !ok || p.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjects) ListByOwner(_ context.Context, ownerID string) ([]entity.Project, error) {
	var out []entity.Project
	for _, p := range f.byID {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjects) ListPublic(_ context.Context) ([]entity.Project, error) {
	var out []entity.Project
	for _, p := range f.byID {
		if p.Visibility == entity.VisibilityPublic {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProjects) GetPublicByID(_ context.Context, id string) (*entity.Project, error) {
	p, ok := f.byID[id]
	if !ok || p.Visibility != entity.VisibilityPublic {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// Interface checks keep the fakes honest.
var (
	_ repository.UserRepository      = (*fakeUsers)(nil)
	_ repository.SessionRepository   = (*fakeSessions)(nil)
	_ repository.RoadmapRepository   = (*fakeRoadmaps)(nil)
	_ repository.MilestoneRepository = (*fakeMilestones)(nil)
	_ repository.DailyPlanRepository = (*fakePlans)(nil)
	_ repository.DailyGoalRepository = (*fakeGoals)(nil)
	_ repository.ArtifactRepository  = (*fakeArtifacts)(nil)
	_ repository.ProjectRepository   = (*fakeProjects)(nil)
)
