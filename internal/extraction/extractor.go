// Package extraction turns raw resume text, structured field trees, and
// code-host profiles into scored, thresholded skill items.
package extraction

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skillsense/internal/matching"
	"github.com/jonathan/skillsense/internal/scoring"
	"github.com/jonathan/skillsense/internal/taxonomy"
	"github.com/jonathan/skillsense/internal/types"
)

// DefaultExcludedSkills are taxonomy names too noisy to ever report:
// single letters and generic words that match everywhere.
var DefaultExcludedSkills = []string{"r", "code"}

// Extractor runs the full per-resume skill extraction pipeline
type Extractor struct {
	mapper   *taxonomy.Mapper
	matcher  *matching.Matcher
	logger   *zap.Logger
	excluded map[string]struct{}
}

// New creates an extractor. The default exclusions are merged into the
// matcher so neither scanning nor phrase resolution reports them.
func New(mapper *taxonomy.Mapper, matcher *matching.Matcher, logger *zap.Logger) *Extractor {
	matcher.Exclude(DefaultExcludedSkills...)
	excluded := make(map[string]struct{}, len(DefaultExcludedSkills))
	for _, name := range DefaultExcludedSkills {
		excluded[strings.ToLower(name)] = struct{}{}
	}
	return &Extractor{
		mapper:   mapper,
		matcher:  matcher,
		logger:   logger,
		excluded: excluded,
	}
}

// Extract runs extraction over every available evidence source and returns
// the merged, confidence-sorted skill list. structured and codeHost may be
// nil; malformed or absent sources contribute no evidence but never fail
// the extraction.
func (e *Extractor) Extract(resumeText string, structured *FieldNode, codeHost *CodeHostProfile) []types.SkillItem {
	skills := e.extractResumeSkills(resumeText, structured)

	if codeHost != nil {
		hostSkills := e.CodeHostSkills(codeHost)
		skills = MergeSkills(skills, hostSkills)
		e.logger.Info("merged code-host skills into profile",
			zap.Int("code_host_skills", len(hostSkills)),
			zap.Int("total_skills", len(skills)))
	}

	return skills
}

// extractResumeSkills collects free-text matches and structured-field
// phrase resolutions into one evidence map before scoring.
func (e *Extractor) extractResumeSkills(resumeText string, structured *FieldNode) []types.SkillItem {
	acc := newAccumulator(e.excluded)

	for _, match := range e.matcher.Scan(resumeText) {
		offset := match.Start
		acc.add(match.Entry.CanonicalName, match.Entry, types.EvidenceItem{
			Source:  types.SourceResume,
			Snippet: strings.TrimSpace(match.Snippet),
			Offset:  &offset,
		}, match.MatchedText)
	}

	if structured != nil {
		for _, phrase := range SkillStrings(*structured) {
			entry := e.matcher.ResolvePhrase(phrase)
			if entry == nil {
				continue
			}
			acc.add(entry.CanonicalName, entry, types.EvidenceItem{
				Source:  types.SourceStructured,
				Snippet: phrase,
			}, phrase)
		}
	}

	return acc.finalize(e.mapper)
}

// CodeHostSkills converts a code-host profile into an independently scored
// skill list, ready to merge into a computed profile.
func (e *Extractor) CodeHostSkills(profile *CodeHostProfile) []types.SkillItem {
	acc := newAccumulator(e.excluded)
	e.collectCodeHostEvidence(acc, profile)
	return acc.finalize(e.mapper)
}

// draft accumulates evidence for one canonical skill during a pass
type draft struct {
	name         string
	category     string
	evidence     []types.EvidenceItem
	matchedTerms map[string]struct{}
}

// accumulator is the per-source evidence map keyed by lowercase canonical
// name. Key order is first-seen so finalize output is deterministic.
type accumulator struct {
	drafts   map[string]*draft
	order    []string
	excluded map[string]struct{}
}

func newAccumulator(excluded map[string]struct{}) *accumulator {
	return &accumulator{
		drafts:   make(map[string]*draft),
		excluded: excluded,
	}
}

// add scores and appends one evidence item for a skill. Exact duplicate
// snippets within the same pass are skipped; the matched term is recorded
// as a tag when present.
func (a *accumulator) add(name string, entry *taxonomy.Entry, item types.EvidenceItem, matchedTerm string) {
	canonical := strings.TrimSpace(name)
	if canonical == "" {
		return
	}

	key := strings.ToLower(canonical)
	if _, skip := a.excluded[key]; skip {
		return
	}

	if item.Snippet == "" {
		item.Snippet = canonical
	}
	item.Score = scoring.ScoreEvidence(item.Snippet, canonical, item.Source, entry)

	d, exists := a.drafts[key]
	if !exists {
		d = &draft{
			name:         canonical,
			matchedTerms: make(map[string]struct{}),
		}
		if entry != nil {
			d.category = entry.Category
		}
		a.drafts[key] = d
		a.order = append(a.order, key)
	}

	duplicate := false
	for _, existing := range d.evidence {
		if existing.Snippet == item.Snippet {
			duplicate = true
			break
		}
	}
	if !duplicate {
		d.evidence = append(d.evidence, item)
	}

	if matchedTerm != "" {
		d.matchedTerms[strings.TrimSpace(matchedTerm)] = struct{}{}
	}
	if entry != nil && d.category == "" {
		d.category = entry.Category
	}
}

// finalize aggregates each draft's evidence into a confidence, drops skills
// below the acceptance threshold, enriches from the taxonomy, and returns
// the surviving items sorted by confidence descending.
func (a *accumulator) finalize(mapper *taxonomy.Mapper) []types.SkillItem {
	var skills []types.SkillItem
	for _, key := range a.order {
		d := a.drafts[key]

		confidence := scoring.Confidence(d.evidence)
		if confidence < scoring.AcceptanceThreshold {
			continue
		}

		mapping := mapper.GetMapping(d.name)
		if mapping == nil {
			mapping = mapper.GetMapping(key)
		}

		name := d.name
		category := d.category
		taxonomyID := ""
		if mapping != nil {
			name = mapping.SkillName
			taxonomyID = mapping.ESCOID
			if mapping.Category != "" {
				category = mapping.Category
			}
		}
		if category == "" {
			category = "technical"
		}

		tags := make([]string, 0, len(d.matchedTerms))
		for term := range d.matchedTerms {
			tags = append(tags, term)
		}
		sort.Strings(tags)

		skills = append(skills, types.SkillItem{
			SkillID:          uuid.NewString(),
			Name:             name,
			Category:         category,
			Confidence:       confidence,
			Evidence:         d.evidence,
			MappedTaxonomyID: taxonomyID,
			ManualStatus:     types.StatusSuggested,
			Tags:             tags,
		})
	}

	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].Confidence > skills[j].Confidence
	})
	return skills
}
