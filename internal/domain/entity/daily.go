package entity

import "time"

// MaxGoalsPerPlan is the soft cap on goals attached to one daily plan.
const MaxGoalsPerPlan = 5

// DailyPlan is one day's reflection, unique per (owner, date).
type DailyPlan struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Date       time.Time `json:"date"` // local midnight, day granularity
	Reflection string    `json:"reflection"`
	Mood       *int      `json:"mood,omitempty"` // 1..5 when set
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DailyGoal is a checkbox-style goal under a daily plan.
type DailyGoal struct {
	ID          string     `json:"id"`
	DailyPlanID string     `json:"daily_plan_id"`
	Title       string     `json:"title"`
	Category    string     `json:"category,omitempty"`
	IsDone      bool       `json:"is_done"`
	DoneAt      *time.Time `json:"done_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
