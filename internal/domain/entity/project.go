package entity

import "time"

// Project is a portfolio project with an optional set of linked artifacts.
type Project struct {
	ID           string     `json:"id"`
	OwnerID      string     `json:"owner_id"`
	Title        string     `json:"title"`
	Category     string     `json:"category"`
	Topic        string     `json:"topic"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"image_url"`
	WorkDate     time.Time  `json:"work_date"`
	PublishedAt  time.Time  `json:"published_at"`
	SnsPromoText string     `json:"sns_promo_text,omitempty"`
	Role         string     `json:"role"`
	PeriodStart  *time.Time `json:"period_start,omitempty"`
	PeriodEnd    *time.Time `json:"period_end,omitempty"`
	TechStack    []string   `json:"tech_stack"`
	RepoURL      string     `json:"repo_url,omitempty"`
	DemoURL      string     `json:"demo_url,omitempty"`
	Visibility   Visibility `json:"visibility"`
	ArtifactIDs  []string   `json:"artifact_ids"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
