package extraction

import (
	"fmt"

	"github.com/jonathan/skillsense/internal/types"
)

// maxProjectHighlights caps how many top projects contribute evidence
const maxProjectHighlights = 5

// CodeHostLanguage is one programming language from a code hosting profile
type CodeHostLanguage struct {
	Language    string  `json:"language"`
	Proficiency string  `json:"proficiency,omitempty"`
	Percentage  float64 `json:"percentage,omitempty"`
}

// CodeHostProject is one notable repository from a code hosting profile
type CodeHostProject struct {
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
	URL      string `json:"url,omitempty"`
	Stars    int    `json:"stars,omitempty"`
}

// CodeHostProfile is a pre-fetched, pre-normalized skill extraction result
// from a code hosting platform. Fetching it is an external concern; this
// package only turns it into evidence.
type CodeHostProfile struct {
	ProfileURL   string             `json:"profile_url,omitempty"`
	Languages    []CodeHostLanguage `json:"languages,omitempty"`
	Technologies []string           `json:"technologies,omitempty"`
	Projects     []CodeHostProject  `json:"projects,omitempty"`
}

// collectCodeHostEvidence folds a code-host profile into the accumulator:
// languages with proficiency, free-form technology tags, and the top
// project highlights, each with a link back to the source.
func (e *Extractor) collectCodeHostEvidence(acc *accumulator, profile *CodeHostProfile) {
	for _, lang := range profile.Languages {
		if lang.Language == "" {
			continue
		}
		proficiency := lang.Proficiency
		if proficiency == "" {
			proficiency = "Intermediate"
		}
		snippet := fmt.Sprintf("Code host: %.1f%% of code, %s proficiency", lang.Percentage, proficiency)
		acc.add(lang.Language, nil, types.EvidenceItem{
			Source:  types.SourceCodeHost,
			Snippet: snippet,
			Href:    profile.ProfileURL,
		}, "")
	}

	for _, tech := range profile.Technologies {
		if tech == "" {
			continue
		}
		acc.add(tech, nil, types.EvidenceItem{
			Source:  types.SourceCodeHost,
			Snippet: "Used in hosted projects",
			Href:    profile.ProfileURL,
		}, "")
	}

	projects := profile.Projects
	if len(projects) > maxProjectHighlights {
		projects = projects[:maxProjectHighlights]
	}
	for _, project := range projects {
		if project.Language == "" {
			continue
		}
		snippet := fmt.Sprintf("Project: %s (%d stars)", project.Name, project.Stars)
		acc.add(project.Language, nil, types.EvidenceItem{
			Source:  types.SourceCodeHost,
			Snippet: snippet,
			Href:    project.URL,
		}, "")
	}
}
