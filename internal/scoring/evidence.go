// Package scoring rates individual evidence snippets and aggregates them
// into a calibrated per-skill confidence.
package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/skillsense/internal/matching"
	"github.com/jonathan/skillsense/internal/taxonomy"
	"github.com/jonathan/skillsense/internal/types"
)

// Base scores by evidence source. Structured fields and code-host data are
// already explicit, so they start high; free text starts low and earns
// bonuses from context.
const (
	baseScoreExplicit = 0.85
	baseScoreFreeText = 0.45
)

// Additive bonuses, each applied at most once
const (
	bonusPositiveContext = 0.20
	bonusYearsPattern    = 0.20
	bonusStrongContext   = 0.20
	bonusAchievement     = 0.12
	bonusListStyle       = 0.10
	bonusDisambiguated   = 0.05
	penaltyWeakContext   = 0.05
)

var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+\+?\s*years?`),
	regexp.MustCompile(`years?\s+of\s+experience`),
	regexp.MustCompile(`\d+\+?\s*yrs?`),
}

var strongContexts = []string{
	"experience with", "experience in", "proficient in", "expert in", "skilled in",
	"worked with", "developed using", "built with", "implemented", "implementing",
	"specialized in", "knowledge of", "familiar with", "strong knowledge",
	"hands-on experience", "extensive experience", "programming languages:",
	"technologies:", "skills:", "technical skills:",
}

var achievementWords = []string{
	"project", "developed", "built", "created", "designed",
	"architected", "implemented", "delivered", "launched",
}

var listIndicators = []string{"•", "·", ";", " - ", ", "}

var weakContexts = []string{"including", "such as", "like", "etc"}

// ScoreEvidence rates how strongly a snippet evidences a skill, in [0,1].
// The entry may be nil for skills that never went through the text matcher.
func ScoreEvidence(snippet, skillName string, source types.EvidenceSource, entry *taxonomy.Entry) float64 {
	snippetLower := strings.ToLower(snippet)
	targetLower := strings.ToLower(skillName)

	score := baseScoreExplicit
	if source == types.SourceResume {
		score = baseScoreFreeText
	}

	if source == types.SourceResume && matching.HasPositiveContext(snippet) {
		score += bonusPositiveContext
	}

	for _, pattern := range yearPatterns {
		if pattern.MatchString(snippetLower) && strings.Contains(snippetLower, targetLower) {
			score += bonusYearsPattern
			break
		}
	}

	for _, context := range strongContexts {
		if strings.Contains(snippetLower, context) {
			score += bonusStrongContext
			break
		}
	}

	for _, word := range achievementWords {
		if strings.Contains(snippetLower, word) {
			score += bonusAchievement
			break
		}
	}

	for _, indicator := range listIndicators {
		if strings.Contains(snippet, indicator) {
			score += bonusListStyle
			break
		}
	}

	for _, context := range weakContexts {
		if strings.Contains(snippetLower, context) {
			score -= penaltyWeakContext
			break
		}
	}

	// A free-text match that survived context disambiguation is a stronger
	// signal than the raw snippet suggests.
	if entry != nil && entry.RequiresContext && source == types.SourceResume {
		score += bonusDisambiguated
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
