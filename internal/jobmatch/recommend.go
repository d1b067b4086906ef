package jobmatch

import (
	"fmt"
	"strings"

	"github.com/jonathan/skillsense/internal/types"
)

// recommendations generates advice from simple thresholds on the number
// and category of missing skills. Deterministic rule list, no ML.
func recommendations(matched []types.MatchedSkill, missing []types.MissingSkill) []string {
	var recs []string

	switch {
	case len(missing) == 0:
		recs = append(recs, "Great match! You have all the key skills mentioned in the job.")
	case len(missing) <= 2:
		recs = append(recs, fmt.Sprintf(
			"Strong candidate! Consider highlighting: %s", joinNames(missing, len(missing))))
	default:
		recs = append(recs, fmt.Sprintf(
			"Focus on developing: %s", joinNames(missing, 3)))
	}

	var technical, soft []types.MissingSkill
	for _, skill := range missing {
		switch skill.Category {
		case "technical":
			technical = append(technical, skill)
		case "soft":
			soft = append(soft, skill)
		}
	}

	if len(technical) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Consider taking courses in: %s", joinNames(technical, 2)))
	}
	if len(soft) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Highlight your %s skills in your application", joinNames(soft, 2)))
	}

	return recs
}

func joinNames(skills []types.MissingSkill, limit int) string {
	if len(skills) > limit {
		skills = skills[:limit]
	}
	names := make([]string, len(skills))
	for i, skill := range skills {
		names[i] = skill.Name
	}
	return strings.Join(names, ", ")
}
