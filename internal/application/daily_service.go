package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grainworks/portfolio-api/internal/domain/entity"
	"github.com/grainworks/portfolio-api/internal/domain/repository"
)

// DailyService owns daily plans and their goals.
type DailyService struct {
	Plans  repository.DailyPlanRepository
	Goals  repository.DailyGoalRepository
	Logger *logrus.Logger
}

func NewDailyService(plans repository.DailyPlanRepository, goals repository.DailyGoalRepository, logger *logrus.Logger) *DailyService {
	return &DailyService{Plans: plans, Goals: goals, Logger: logger}
}

// DailyPlanInput carries validated plan fields. Date is local midnight.
type DailyPlanInput struct {
	Date       time.Time
	Reflection string
	Mood       *int
}

// DailyGoalInput carries validated goal fields.
type DailyGoalInput struct {
	DailyPlanID string
	Title       string
	Category    string
}

// UpsertPlan creates or updates the plan for the given date. There is at most
// one plan per (owner, date); repeated submits edit the same row.
func (s *DailyService) UpsertPlan(ctx context.Context, ownerID string, in DailyPlanInput) (*entity.DailyPlan, error) {
	now := time.Now()
	p := &entity.DailyPlan{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Date:       in.Date,
		Reflection: in.Reflection,
		Mood:       in.Mood,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Plans.Upsert(ctx, p); err != nil {
		return nil, mapRepoErr(err)
	}
	return p, nil
}

// PlanForDate returns the plan and its goals for one day, or (nil, nil, nil)
// when no plan exists yet.
func (s *DailyService) PlanForDate(ctx context.Context, ownerID string, date time.Time) (*entity.DailyPlan, []entity.DailyGoal, error) {
	p, err := s.Plans.GetByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, mapRepoErr(err)
	}
	goals, err := s.Goals.ListByPlan(ctx, p.ID)
	if err != nil {
		return nil, nil, mapRepoErr(err)
	}
	return p, goals, nil
}

// CreateGoal adds a goal under the caller's plan, enforcing the per-plan cap.
func (s *DailyService) CreateGoal(ctx context.Context, ownerID string, in DailyGoalInput) (*entity.DailyGoal, error) {
	if _, err := s.Plans.GetOwned(ctx, in.DailyPlanID, ownerID); err != nil {
		return nil, mapRepoErr(err)
	}
	count, err := s.Goals.CountByPlan(ctx, in.DailyPlanID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if count >= entity.MaxGoalsPerPlan {
		return nil, ErrGoalLimit
	}
	g := &entity.DailyGoal{
		ID:          uuid.NewString(),
		DailyPlanID: in.DailyPlanID,
		Title:       in.Title,
		Category:    in.Category,
		CreatedAt:   time.Now(),
	}
	if err := s.Goals.Create(ctx, g); err != nil {
		return nil, mapRepoErr(err)
	}
	return g, nil
}

// ToggleGoal flips a goal's done flag, stamping or clearing the completion
// time alongside.
func (s *DailyService) ToggleGoal(ctx context.Context, ownerID, id string) (*entity.DailyGoal, error) {
	g, err := s.Goals.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	g.IsDone = !g.IsDone
	if g.IsDone {
		now := time.Now()
		g.DoneAt = &now
	} else {
		g.DoneAt = nil
	}
	if err := s.Goals.Update(ctx, g); err != nil {
		return nil, mapRepoErr(err)
	}
	return g, nil
}

func (s *DailyService) DeleteGoal(ctx context.Context, ownerID, id string) error {
	return mapRepoErr(s.Goals.Delete(ctx, id, ownerID))
}
