package entity

import "time"

// Roadmap groups ordered milestones toward a named career goal.
type Roadmap struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	Title          string    `json:"title"`
	TargetRole     string    `json:"target_role"`
	TargetIndustry string    `json:"target_industry"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Milestone is a step within a roadmap. SortOrder drives display ordering;
// values need not be contiguous except right after a reorder, which rewrites
// them to 0..n-1.
type Milestone struct {
	ID             string          `json:"id"`
	RoadmapID      string          `json:"roadmap_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	Status         MilestoneStatus `json:"status"`
	SortOrder      int             `json:"sort_order"`
	CompetencyTags []string        `json:"competency_tags"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Key implements orderedlist.Keyed.
func (m Milestone) Key() string { return m.ID }
