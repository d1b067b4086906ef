// Package types provides type definitions for structured data used throughout the skillsense system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// EvidenceSource identifies where a piece of skill evidence came from
type EvidenceSource string

const (
	// SourceResume is evidence found by scanning free-form resume text
	SourceResume EvidenceSource = "resume"
	// SourceStructured is evidence from structured resume fields (pre-segmented skill strings)
	SourceStructured EvidenceSource = "structured"
	// SourceCodeHost is evidence derived from a pre-fetched code hosting profile
	SourceCodeHost EvidenceSource = "code_host"
)

// ManualStatus is the user-facing acceptance state of a detected skill
type ManualStatus string

const (
	StatusSuggested ManualStatus = "suggested"
	StatusAccepted  ManualStatus = "accepted"
	StatusRejected  ManualStatus = "rejected"
	StatusEdited    ManualStatus = "edited"
)

// EvidenceItem is one textual snippet supporting a detected skill.
// Items are append-only once attached to a skill; they are never mutated.
type EvidenceItem struct {
	Source  EvidenceSource `json:"source"`
	Snippet string         `json:"snippet"`
	Score   float64        `json:"score"` // relevance in [0,1]
	Offset  *int           `json:"offset,omitempty"`
	Href    string         `json:"href,omitempty"` // link to the original source, e.g. a hosted project
}

// SkillItem is a single skill in a profile with its evidence trail.
// Confidence is always the aggregator output over the current evidence list.
type SkillItem struct {
	SkillID          string         `json:"skill_id"`
	Name             string         `json:"name"`
	Category         string         `json:"category"` // technical, soft, domain
	Confidence       float64        `json:"confidence"`
	Evidence         []EvidenceItem `json:"evidence"`
	MappedTaxonomyID string         `json:"mapped_taxonomy_id,omitempty"` // e.g. an ESCO identifier
	ManualStatus     ManualStatus   `json:"manual_status"`
	EditedName       string         `json:"edited_name,omitempty"`
	Tags             []string       `json:"tags,omitempty"` // distinct literal terms that triggered a match
}

// SkillProfile is one resume's aggregated, deduplicated skill collection
type SkillProfile struct {
	ProfileID       string          `json:"profile_id"`
	ResumeID        string          `json:"resume_id"`
	Skills          []SkillItem     `json:"skills"`
	PrivacySettings map[string]bool `json:"privacy_settings"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// DefaultPrivacySettings returns the privacy flags applied to new profiles
func DefaultPrivacySettings() map[string]bool {
	return map[string]bool{
		"share_code_host": true,
		"share_social":    true,
		"mask_pii":        true,
	}
}

// ActionRequest asks to accept, reject, or edit a skill in a profile
type ActionRequest struct {
	ProfileID      string `json:"profile_id" validate:"required"`
	SkillName      string `json:"skill_name" validate:"required"`
	Action         string `json:"action" validate:"required,oneof=accept reject edit"`
	EditedName     string `json:"edited_name,omitempty"`
	EditedCategory string `json:"edited_category,omitempty"`
}

// ActionResult reports the outcome of a skill action. Not-found and invalid
// actions are routine outcomes on this path, so they are reported here
// rather than as errors.
type ActionResult struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	UpdatedSkill *SkillItem `json:"updated_skill,omitempty"`
}

// AuditRecord captures one lifecycle transition for audit history
type AuditRecord struct {
	ID        string     `json:"id"`
	ProfileID string     `json:"profile_id"`
	SkillName string     `json:"skill_name"`
	Action    string     `json:"action"`
	Previous  *SkillItem `json:"previous,omitempty"`
	New       *SkillItem `json:"new,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
