// Package jobmatch extracts skill mentions from job descriptions and
// scores them against a computed skill profile via semantic similarity.
package jobmatch

import (
	"regexp"
	"strings"
)

// skillPatterns are category-specific expressions for skills that commonly
// appear in job descriptions: languages, frameworks, cloud/devops tooling,
// data stores, ML terms, and process terms.
var skillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(Python|JavaScript|TypeScript|Java|C\+\+|Ruby|Go|Rust|Swift|Kotlin)\b`),
	regexp.MustCompile(`(?i)\b(React|Angular|Vue\.?js|Next\.?js|Node\.?js|Express|Django|Flask|FastAPI)\b`),
	regexp.MustCompile(`(?i)\b(AWS|Azure|GCP|Docker|Kubernetes|Jenkins|GitLab|CircleCI)\b`),
	regexp.MustCompile(`(?i)\b(SQL|PostgreSQL|MySQL|MongoDB|Redis|Elasticsearch)\b`),
	regexp.MustCompile(`(?i)\b(Machine Learning|Deep Learning|NLP|Computer Vision|Data Science)\b`),
	regexp.MustCompile(`(?i)\b(TensorFlow|PyTorch|Scikit-learn|Keras|Pandas|NumPy)\b`),
	regexp.MustCompile(`(?i)\b(Git|Agile|Scrum|DevOps|CI/CD|Microservices|RESTful API)\b`),
}

var (
	requirementsHeader     = regexp.MustCompile(`(?i)(requirements?|qualifications?|skills?):`)
	responsibilitiesHeader = regexp.MustCompile(`(?i)(responsibilities?|duties?):`)
)

// Mention is one skill named by a job description, tagged with a coarse
// guess of the section it came from.
type Mention struct {
	Name    string
	Section string // requirements, responsibilities, or other
}

// ExtractMentions pulls skill mentions out of a job description,
// deduplicated case-insensitively in first-seen order.
func ExtractMentions(jobText string) []Mention {
	var all []Mention
	for _, section := range splitSections(jobText) {
		for _, pattern := range skillPatterns {
			for _, hit := range pattern.FindAllString(section.text, -1) {
				all = append(all, Mention{Name: hit, Section: section.name})
			}
		}
	}

	seen := make(map[string]struct{}, len(all))
	unique := make([]Mention, 0, len(all))
	for _, mention := range all {
		key := strings.ToLower(mention.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, mention)
	}
	return unique
}

type jobSection struct {
	name string
	text string
}

// splitSections carves the description into requirements and
// responsibilities around their header keywords. Text without recognizable
// headers lands in "other".
func splitSections(jobText string) []jobSection {
	reqLoc := requirementsHeader.FindStringIndex(jobText)
	respLoc := responsibilitiesHeader.FindStringIndex(jobText)

	if reqLoc == nil && respLoc == nil {
		return []jobSection{{name: "other", text: jobText}}
	}

	var sections []jobSection
	if reqLoc != nil {
		end := len(jobText)
		if respLoc != nil && respLoc[0] > reqLoc[0] {
			end = respLoc[0]
		}
		sections = append(sections, jobSection{name: "requirements", text: jobText[reqLoc[0]:end]})
	}
	if respLoc != nil {
		end := len(jobText)
		if reqLoc != nil && reqLoc[0] > respLoc[0] {
			end = reqLoc[0]
		}
		sections = append(sections, jobSection{name: "responsibilities", text: jobText[respLoc[0]:end]})
	}
	return sections
}
