package jobmatch

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/skillsense/internal/taxonomy"
	"github.com/jonathan/skillsense/internal/types"
)

// stubProvider maps lowercase substrings of the embedding text to fixed
// vectors. Unmatched text embeds to nil unless failAll is set.
type stubProvider struct {
	vectors map[string][]float32
	failAll bool
}

func (s *stubProvider) Embed(_ context.Context, text string) ([]float32, error) {
	if s.failAll {
		return nil, fmt.Errorf("embedding backend unavailable")
	}
	lower := strings.ToLower(text)
	for key, vector := range s.vectors {
		if strings.Contains(lower, key) {
			return vector, nil
		}
	}
	return []float32{0, 0, 0}, nil
}

func (s *stubProvider) Close() error { return nil }

func testJobMatcher(provider *stubProvider, mappings ...taxonomy.Mapping) *Matcher {
	return New(provider, taxonomy.NewMapper(mappings), zap.NewNop())
}

func profileWith(skills ...types.SkillItem) *types.SkillProfile {
	return &types.SkillProfile{
		ProfileID: "profile-1",
		ResumeID:  "resume-1",
		Skills:    skills,
	}
}

func profileSkill(name string, confidence float64, status types.ManualStatus) types.SkillItem {
	return types.SkillItem{
		SkillID:      "id-" + name,
		Name:         name,
		Category:     "technical",
		Confidence:   confidence,
		ManualStatus: status,
		Evidence: []types.EvidenceItem{
			{Source: types.SourceResume, Snippet: "worked with " + name, Score: 0.8},
		},
	}
}

func TestMatch_NilProfile(t *testing.T) {
	m := testJobMatcher(&stubProvider{})

	result, err := m.Match(context.Background(), nil, "Python", 0)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestMatch_NoMentionsYieldsZeroScore(t *testing.T) {
	m := testJobMatcher(&stubProvider{})
	profile := profileWith(profileSkill("Python", 0.9, types.StatusAccepted))

	result, err := m.Match(context.Background(), profile, "We need a friendly team player.", 0)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.MatchScore)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
	assert.NotEmpty(t, result.Recommendations)
}

func TestMatch_ExactNameOverridesEmbeddings(t *testing.T) {
	// All embeddings fail; name identity alone must still match.
	m := testJobMatcher(&stubProvider{failAll: true})
	profile := profileWith(profileSkill("Python", 0.9, types.StatusAccepted))

	result, err := m.Match(context.Background(), profile, "Requirements: Python and Kubernetes", 0)
	require.NoError(t, err)

	require.Len(t, result.MatchedSkills, 1)
	assert.Equal(t, "Python", result.MatchedSkills[0].Name)
	assert.InDelta(t, 0.95, result.MatchedSkills[0].Score, 0.001)
	assert.InDelta(t, 0.9, result.MatchedSkills[0].Confidence, 0.001)

	require.Len(t, result.MissingSkills, 1)
	assert.Equal(t, "Kubernetes", result.MissingSkills[0].Name)
	assert.InDelta(t, 0.8, result.MissingSkills[0].EstimatedGap, 0.001)
	assert.Equal(t, "requirements", result.MissingSkills[0].FromJobSection)

	assert.InDelta(t, 0.5, result.MatchScore, 0.001)
}

func TestMatch_RejectedSkillsNeverCount(t *testing.T) {
	m := testJobMatcher(&stubProvider{failAll: true})
	profile := profileWith(profileSkill("Python", 0.9, types.StatusRejected))

	result, err := m.Match(context.Background(), profile, "Requirements: Python", 0)
	require.NoError(t, err)

	assert.Empty(t, result.MatchedSkills)
	require.Len(t, result.MissingSkills, 1)
	assert.Equal(t, "Python", result.MissingSkills[0].Name)
	assert.Equal(t, 0.0, result.MatchScore)
}

func TestMatch_EmbeddingSimilarityMatches(t *testing.T) {
	// Pandas and NumPy share a vector; the names have no substring overlap,
	// so only the embedding can connect them.
	shared := []float32{0.6, 0.8, 0}
	m := testJobMatcher(&stubProvider{vectors: map[string][]float32{
		"pandas": shared,
		"numpy":  shared,
	}})
	profile := profileWith(profileSkill("Pandas", 0.85, types.StatusAccepted))

	result, err := m.Match(context.Background(), profile, "Requirements: NumPy", 0)
	require.NoError(t, err)

	require.Len(t, result.MatchedSkills, 1)
	assert.Equal(t, "NumPy", result.MatchedSkills[0].Name)
	assert.InDelta(t, 1.0, result.MatchedSkills[0].Score, 0.001)
}

func TestMatch_DissimilarVectorsBelowThreshold(t *testing.T) {
	m := testJobMatcher(&stubProvider{vectors: map[string][]float32{
		"pandas": {1, 0, 0},
		"numpy":  {0, 1, 0},
	}})
	profile := profileWith(profileSkill("Pandas", 0.85, types.StatusAccepted))

	result, err := m.Match(context.Background(), profile, "Requirements: NumPy", 0)
	require.NoError(t, err)

	assert.Empty(t, result.MatchedSkills)
	require.Len(t, result.MissingSkills, 1)
	assert.Equal(t, "NumPy", result.MissingSkills[0].Name)
}

func TestMatch_TopKCapsMatchedNotScore(t *testing.T) {
	m := testJobMatcher(&stubProvider{failAll: true})
	profile := profileWith(
		profileSkill("Python", 0.9, types.StatusAccepted),
		profileSkill("Docker", 0.8, types.StatusAccepted),
		profileSkill("Kubernetes", 0.7, types.StatusAccepted),
	)

	result, err := m.Match(context.Background(), profile, "Requirements: Python, Docker, Kubernetes", 1)
	require.NoError(t, err)

	// The score reflects all three matches even though only one is listed
	assert.Len(t, result.MatchedSkills, 1)
	assert.InDelta(t, 1.0, result.MatchScore, 0.001)
}

func TestMatch_MissingCategoryFromTaxonomy(t *testing.T) {
	m := testJobMatcher(&stubProvider{failAll: true},
		taxonomy.Mapping{SkillName: "Scrum", Category: "soft"},
	)
	profile := profileWith(profileSkill("Python", 0.9, types.StatusAccepted))

	result, err := m.Match(context.Background(), profile, "Requirements: Scrum", 0)
	require.NoError(t, err)

	require.Len(t, result.MissingSkills, 1)
	assert.Equal(t, "soft", result.MissingSkills[0].Category)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 0.0001)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 0.0001)
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestEmbeddingText_IncludesEvidence(t *testing.T) {
	skill := profileSkill("Python", 0.9, types.StatusAccepted)
	text := embeddingText(skill)
	assert.Contains(t, text, "Python:")
	assert.Contains(t, text, "worked with Python")
}
