package entity

// Visibility controls whether a resource is exposed on the public portfolio.
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityPublic  Visibility = "PUBLIC"
)

// Toggle returns the opposite visibility.
func (v Visibility) Toggle() Visibility {
	if v == VisibilityPublic {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

// MilestoneStatus is the progress state of a roadmap milestone.
type MilestoneStatus string

const (
	MilestoneTodo  MilestoneStatus = "TODO"
	MilestoneDoing MilestoneStatus = "DOING"
	MilestoneDone  MilestoneStatus = "DONE"
)

// ArtifactType classifies a piece of career evidence.
type ArtifactType string

const (
	ArtifactStudy      ArtifactType = "STUDY"
	ArtifactProject    ArtifactType = "PROJECT"
	ArtifactCert       ArtifactType = "CERT"
	ArtifactContest    ArtifactType = "CONTEST"
	ArtifactInternship ArtifactType = "INTERNSHIP"
	ArtifactClub       ArtifactType = "CLUB"
	ArtifactVolunteer  ArtifactType = "VOLUNTEER"
	ArtifactOther      ArtifactType = "OTHER"
)

// AttachmentKind describes the stored attachment payload.
type AttachmentKind string

const AttachmentImage AttachmentKind = "IMAGE"
