package jobmatch

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillsense/internal/embedding"
	"github.com/jonathan/skillsense/internal/taxonomy"
	"github.com/jonathan/skillsense/internal/types"
)

const (
	// similarityThreshold is the minimum cosine similarity for an
	// embedding-based match.
	similarityThreshold = 0.7
	// exactMatchSimilarity is the forced similarity when a mention equals
	// or contains a profile skill name (or vice versa).
	exactMatchSimilarity = 0.95
	// missingSkillGap is the estimated severity of a wholly missing skill
	missingSkillGap = 0.8

	// embedWorkers bounds concurrent embedding calls
	embedWorkers = 4
	// snippetLimit truncates evidence snippets in embedding text
	snippetLimit = 100
	// maxEvidenceSnippets caps evidence snippets in embedding text
	maxEvidenceSnippets = 2

	// DefaultTopK caps matched skills when the caller does not set a limit
	DefaultTopK = 10
)

// Matcher scores a profile's skills against job descriptions
type Matcher struct {
	provider embedding.Provider
	mapper   *taxonomy.Mapper
	logger   *zap.Logger
}

// New creates a job matcher
func New(provider embedding.Provider, mapper *taxonomy.Mapper, logger *zap.Logger) *Matcher {
	return &Matcher{provider: provider, mapper: mapper, logger: logger}
}

// Match extracts skill mentions from jobText and partitions them into
// matched and missing relative to the profile. Rejected skills never
// count. Individual embedding failures skip that skill or mention with a
// warning; the overall result still completes.
func (m *Matcher) Match(ctx context.Context, profile *types.SkillProfile, jobText string, topK int) (*types.JobMatchResult, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	mentions := ExtractMentions(jobText)
	if len(mentions) == 0 {
		return &types.JobMatchResult{
			MatchScore:      0,
			MatchedSkills:   []types.MatchedSkill{},
			MissingSkills:   []types.MissingSkill{},
			Recommendations: recommendations(nil, nil),
		}, nil
	}

	var candidates []types.SkillItem
	for _, skill := range profile.Skills {
		if skill.ManualStatus == types.StatusRejected {
			continue
		}
		candidates = append(candidates, skill)
	}

	skillVectors := m.embedProfileSkills(ctx, candidates)
	mentionVectors := m.embedMentions(ctx, mentions)

	var matched []types.MatchedSkill
	var missing []types.MissingSkill
	for _, mention := range mentions {
		mentionKey := strings.ToLower(mention.Name)

		var best *types.SkillItem
		bestScore := similarityThreshold
		for i := range candidates {
			skill := &candidates[i]
			skillKey := strings.ToLower(skill.Name)

			similarity := 0.0
			if sv, ok := skillVectors[skillKey]; ok {
				if mv, ok := mentionVectors[mentionKey]; ok {
					similarity = cosineSimilarity(sv, mv)
				}
			}

			// Exact or substring name matches override the embedding score
			if skillKey == mentionKey ||
				strings.Contains(mentionKey, skillKey) ||
				strings.Contains(skillKey, mentionKey) {
				if similarity < exactMatchSimilarity {
					similarity = exactMatchSimilarity
				}
			}

			if similarity > bestScore {
				bestScore = similarity
				best = skill
			}
		}

		if best != nil {
			matched = append(matched, types.MatchedSkill{
				Name:       mention.Name,
				Score:      math.Round(bestScore*100) / 100,
				Category:   best.Category,
				Confidence: best.Confidence,
			})
		} else {
			missing = append(missing, types.MissingSkill{
				Name:           mention.Name,
				EstimatedGap:   missingSkillGap,
				Category:       m.mapper.GetCategory(mention.Name),
				FromJobSection: mention.Section,
			})
		}
	}

	matchScore := math.Round(float64(len(matched))/float64(len(mentions))*100) / 100

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})
	if len(matched) > topK {
		matched = matched[:topK]
	}

	return &types.JobMatchResult{
		MatchScore:      matchScore,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Recommendations: recommendations(matched, missing),
	}, nil
}

// embedProfileSkills embeds each skill's name enriched with its strongest
// evidence snippets. Failures are logged and the skill is skipped.
func (m *Matcher) embedProfileSkills(ctx context.Context, skills []types.SkillItem) map[string][]float32 {
	vectors := make(map[string][]float32, len(skills))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedWorkers)
	for _, skill := range skills {
		skill := skill
		g.Go(func() error {
			vector, err := m.provider.Embed(gctx, embeddingText(skill))
			if err != nil {
				m.logger.Warn("failed to embed profile skill",
					zap.String("skill", skill.Name), zap.Error(err))
				return nil
			}
			mu.Lock()
			vectors[strings.ToLower(skill.Name)] = vector
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return vectors
}

// embedMentions embeds each job mention by name. Failures are logged and
// the mention is skipped; name matching still applies to it.
func (m *Matcher) embedMentions(ctx context.Context, mentions []Mention) map[string][]float32 {
	vectors := make(map[string][]float32, len(mentions))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedWorkers)
	for _, mention := range mentions {
		mention := mention
		g.Go(func() error {
			vector, err := m.provider.Embed(gctx, mention.Name)
			if err != nil {
				m.logger.Warn("failed to embed job mention",
					zap.String("mention", mention.Name), zap.Error(err))
				return nil
			}
			mu.Lock()
			vectors[strings.ToLower(mention.Name)] = vector
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return vectors
}

// embeddingText combines a skill's name with its first evidence snippets
// for a richer embedding than the bare name.
func embeddingText(skill types.SkillItem) string {
	var snippets []string
	for i, item := range skill.Evidence {
		if i >= maxEvidenceSnippets {
			break
		}
		snippet := item.Snippet
		if len(snippet) > snippetLimit {
			snippet = snippet[:snippetLimit]
		}
		snippets = append(snippets, snippet)
	}
	return fmt.Sprintf("%s: %s", skill.Name, strings.Join(snippets, " "))
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either has zero norm or the lengths differ.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
