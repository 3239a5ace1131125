package entity

import "time"

// Artifact is a single piece of career evidence tied to a date, with optional
// links into roadmap milestones and daily goals.
type Artifact struct {
	ID           string               `json:"id"`
	OwnerID      string               `json:"owner_id"`
	Type         ArtifactType         `json:"type"`
	Title        string               `json:"title"`
	Summary      string               `json:"summary"`
	ContentMd    string               `json:"content_md"`
	Date         time.Time            `json:"date"`
	Tags         []string             `json:"tags"`
	LinkURL      string               `json:"link_url,omitempty"`
	Visibility   Visibility           `json:"visibility"`
	Attachments  []ArtifactAttachment `json:"attachments"`
	MilestoneIDs []string             `json:"milestone_ids"`
	DailyGoalIDs []string             `json:"daily_goal_ids"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ArtifactAttachment is a stored upload belonging to an artifact. Attachments
// are created with the artifact or appended later, never edited in place.
type ArtifactAttachment struct {
	ID         string         `json:"id"`
	ArtifactID string         `json:"artifact_id"`
	Kind       AttachmentKind `json:"kind"`
	PathOrURL  string         `json:"path_or_url"`
	MimeType   string         `json:"mime_type"`
	Size       int64          `json:"size"`
	CreatedAt  time.Time      `json:"created_at"`
}
