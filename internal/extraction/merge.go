package extraction

import (
	"sort"
	"strings"

	"github.com/jonathan/skillsense/internal/types"
)

// MergeSkills unifies two independently extracted skill lists into one.
// Base items keep their identity and order; incoming items either append
// (new canonical key) or fold in: evidence lists concatenate, confidence
// takes the maximum of the two independently computed values, the taxonomy
// id fills from whichever side has it, and tags union. Cross-source
// duplicate snippets are kept deliberately — they are independent
// corroboration, not duplicates.
func MergeSkills(base, incoming []types.SkillItem) []types.SkillItem {
	merged := make(map[string]types.SkillItem, len(base))
	order := make([]string, 0, len(base))

	for _, skill := range base {
		key := strings.ToLower(skill.Name)
		merged[key] = skill
		order = append(order, key)
	}

	for _, skill := range incoming {
		key := strings.ToLower(skill.Name)
		existing, exists := merged[key]
		if !exists {
			merged[key] = skill
			order = append(order, key)
			continue
		}

		existing.Evidence = append(existing.Evidence, skill.Evidence...)
		if skill.Confidence > existing.Confidence {
			existing.Confidence = skill.Confidence
		}
		if existing.MappedTaxonomyID == "" {
			existing.MappedTaxonomyID = skill.MappedTaxonomyID
		}
		existing.Tags = unionTags(existing.Tags, skill.Tags)
		merged[key] = existing
	}

	result := make([]types.SkillItem, 0, len(order))
	for _, key := range order {
		result = append(result, merged[key])
	}
	return result
}

func unionTags(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, tag := range a {
		seen[tag] = struct{}{}
	}
	for _, tag := range b {
		seen[tag] = struct{}{}
	}
	union := make([]string, 0, len(seen))
	for tag := range seen {
		union = append(union, tag)
	}
	sort.Strings(union)
	return union
}
