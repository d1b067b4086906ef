// Package matching scans text against the taxonomy index and resolves
// candidate matches into non-overlapping spans.
package matching

import (
	"regexp"
	"strings"

	"github.com/jonathan/skillsense/internal/taxonomy"
)

var listHeaderPattern = regexp.MustCompile(`\b(skills?|tools?|technologies?|stack):`)

// isListContext reports whether a snippet looks like a skills-list line:
// it starts with or contains a bullet glyph, or carries a list header such
// as "skills:" or "technologies:".
func isListContext(snippet, snippetLower string) bool {
	stripped := strings.TrimSpace(snippet)
	for _, symbol := range taxonomy.ListSymbols {
		if strings.HasPrefix(stripped, symbol) {
			return true
		}
	}
	for _, symbol := range taxonomy.ListSymbols {
		if strings.Contains(snippet, symbol) {
			return true
		}
	}
	return listHeaderPattern.MatchString(snippetLower)
}

// HasPositiveContext reports whether a snippet reads like a professional
// skills mention: it contains a general professional-context keyword or
// looks like a list item.
func HasPositiveContext(snippet string) bool {
	return hasPositiveContext(snippet, strings.ToLower(snippet))
}

func hasPositiveContext(snippet, snippetLower string) bool {
	for _, keyword := range taxonomy.GeneralContextKeywords {
		if strings.Contains(snippetLower, keyword) {
			return true
		}
	}
	return isListContext(snippet, snippetLower)
}

// contextValid is the policy layer deciding whether an ambiguous
// single-word match is contextually legitimate. Entries that do not
// require context are always valid.
func contextValid(entry *taxonomy.Entry, snippet string) bool {
	if !entry.RequiresContext {
		return true
	}

	snippetLower := strings.ToLower(snippet)
	token := entry.Tokens[0]

	rule, hasRule := taxonomy.StrictRuleFor(token)
	if hasRule {
		hasKeyword := false
		for _, keyword := range rule.Keywords {
			if strings.Contains(snippetLower, keyword) {
				hasKeyword = true
				break
			}
		}

		if !hasKeyword {
			if !rule.AllowList {
				return false
			}
			if !isListContext(snippet, snippetLower) {
				return false
			}
		}

		// Negative context vetoes even a keyword or list hit
		// ("excelled at" is never the spreadsheet).
		if rule.Negative != nil && rule.Negative.MatchString(snippetLower) {
			return false
		}

		return true
	}

	return hasPositiveContext(snippet, snippetLower)
}
