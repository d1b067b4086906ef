// Package types provides type definitions for structured data used throughout the skillsense system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MatchedSkill is a job-description mention covered by the profile
type MatchedSkill struct {
	Name       string  `json:"name"`
	Score      float64 `json:"score"` // similarity in [0,1]
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"` // confidence of the matching profile skill
}

// MissingSkill is a job-description mention absent from the profile
type MissingSkill struct {
	Name           string  `json:"name"`
	EstimatedGap   float64 `json:"estimated_gap"` // how critical the gap is, in [0,1]
	Category       string  `json:"category"`
	FromJobSection string  `json:"from_job_section,omitempty"`
}

// JobMatchResult is the outcome of matching a profile against a job description
type JobMatchResult struct {
	MatchScore      float64        `json:"match_score"` // matched mentions / total mentions
	MatchedSkills   []MatchedSkill `json:"matched_skills"`
	MissingSkills   []MissingSkill `json:"missing_skills"`
	Recommendations []string       `json:"recommendations"`
}
