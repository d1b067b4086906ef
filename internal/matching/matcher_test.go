package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillsense/internal/taxonomy"
)

func testIndex(t *testing.T, mappings ...taxonomy.Mapping) *taxonomy.Index {
	t.Helper()
	return taxonomy.BuildIndex(taxonomy.NewMapper(mappings))
}

func matchedNames(matches []Match) []string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Entry.CanonicalName
	}
	return names
}

func TestScan_FindsPlainSkills(t *testing.T) {
	ix := testIndex(t,
		taxonomy.Mapping{SkillName: "Python"},
		taxonomy.Mapping{SkillName: "Docker"},
	)
	m := NewMatcher(ix)

	text := "Developed services in Python and deployed them with Docker containers"
	matches := m.Scan(text)
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"Python", "Docker"}, matchedNames(matches))

	// Offsets point at the literal occurrence in the original text
	first := matches[0]
	assert.Equal(t, "Python", first.MatchedText)
	assert.Equal(t, "Python", text[first.Start:first.End])
}

func TestScan_TrailingPunctuationDoesNotHideSkills(t *testing.T) {
	ix := testIndex(t,
		taxonomy.Mapping{SkillName: "Docker"},
		taxonomy.Mapping{SkillName: "Node.js"},
	)
	m := NewMatcher(ix)

	matches := m.Scan("Experience with Node.js. Shipped containers with Docker.")
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"Node.js", "Docker"}, matchedNames(matches))
	assert.Equal(t, "Node.js", matches[0].MatchedText)
	assert.Equal(t, "Docker", matches[1].MatchedText)
}

func TestScan_EmptyText(t *testing.T) {
	ix := testIndex(t, taxonomy.Mapping{SkillName: "Python"})
	m := NewMatcher(ix)

	assert.Empty(t, m.Scan(""))
	assert.Empty(t, m.Scan("   \n\t "))
}

func TestScan_NegativeContextNeverMatchesExcel(t *testing.T) {
	ix := testIndex(t, taxonomy.Mapping{SkillName: "Excel"})
	m := NewMatcher(ix)

	assert.Empty(t, m.Scan("I excel at sports and enjoy running."))
	assert.Empty(t, m.Scan("She excelled at math."))
}

func TestScan_ListContextMatchesOfficeSkills(t *testing.T) {
	ix := testIndex(t,
		taxonomy.Mapping{SkillName: "Excel"},
		taxonomy.Mapping{SkillName: "Word"},
	)
	m := NewMatcher(ix)

	matches := m.Scan("Skills: Excel, Word, PowerPoint")
	assert.ElementsMatch(t, []string{"Excel", "Word"}, matchedNames(matches))
}

func TestScan_KeywordContextMatchesExcel(t *testing.T) {
	ix := testIndex(t, taxonomy.Mapping{SkillName: "Excel"})
	m := NewMatcher(ix)

	matches := m.Scan("Built reporting dashboards in Microsoft Excel for finance teams")
	require.Len(t, matches, 1)
	assert.Equal(t, "Excel", matches[0].Entry.CanonicalName)
}

func TestScan_URLAndEmailSuppressed(t *testing.T) {
	ix := testIndex(t, taxonomy.Mapping{SkillName: "Java"})
	m := NewMatcher(ix)

	assert.Empty(t, m.Scan("Contact: java@example.com"))
	assert.Empty(t, m.Scan("See java.example.com for details"))
}

func TestScan_TwoLetterTokenNeedsContext(t *testing.T) {
	ix := testIndex(t, taxonomy.Mapping{SkillName: "Go"})
	m := NewMatcher(ix)

	matches := m.Scan("Experienced in Go development and systems programming")
	require.Len(t, matches, 1)
	assert.Equal(t, "Go", matches[0].Entry.CanonicalName)

	assert.Empty(t, m.Scan("Let us go to the park"))
}

func TestScan_OverlapLongerEntryWins(t *testing.T) {
	ix := testIndex(t,
		taxonomy.Mapping{SkillName: "Ruby"},
		taxonomy.Mapping{SkillName: "Ruby on Rails"},
	)
	m := NewMatcher(ix)

	matches := m.Scan("Built web apps with Ruby on Rails")
	require.Len(t, matches, 1)
	assert.Equal(t, "Ruby on Rails", matches[0].Entry.CanonicalName)
}

func TestScan_NonOverlappingOccurrencesBothKept(t *testing.T) {
	ix := testIndex(t,
		taxonomy.Mapping{SkillName: "Ruby"},
		taxonomy.Mapping{SkillName: "Ruby on Rails"},
	)
	m := NewMatcher(ix)

	matches := m.Scan("Ruby expert, shipped several Ruby on Rails products")
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"Ruby", "Ruby on Rails"}, matchedNames(matches))
	// Output is ordered by position
	assert.Less(t, matches[0].Start, matches[1].Start)
}

func TestScan_VariantFormsMatch(t *testing.T) {
	ix := testIndex(t, taxonomy.Mapping{SkillName: "Node.js"})
	m := NewMatcher(ix)

	matches := m.Scan("Backend services written in Node.js")
	require.Len(t, matches, 1)
	assert.Equal(t, "Node.js", matches[0].Entry.CanonicalName)

	matches = m.Scan("Backend services written in node js")
	require.Len(t, matches, 1)
	assert.Equal(t, "Node.js", matches[0].Entry.CanonicalName)
}

func TestScan_ExcludedSkillNeverReported(t *testing.T) {
	ix := testIndex(t,
		taxonomy.Mapping{SkillName: "Python"},
		taxonomy.Mapping{SkillName: "R"},
	)
	m := NewMatcher(ix, "r")

	matches := m.Scan("Analytics experience with Python and R toolchains")
	assert.Equal(t, []string{"Python"}, matchedNames(matches))
}

func TestScan_DuplicateSpanReportedOnce(t *testing.T) {
	// Canonical name and alias normalize to the same token sequence; the
	// span must still surface exactly once.
	ix := testIndex(t, taxonomy.Mapping{SkillName: "Python", Aliases: []string{"python"}})
	m := NewMatcher(ix)

	matches := m.Scan("Experience with Python development")
	assert.Len(t, matches, 1)
}

func TestResolvePhrase_ResolvesVariants(t *testing.T) {
	ix := testIndex(t,
		taxonomy.Mapping{SkillName: "Node.js"},
		taxonomy.Mapping{SkillName: "CI/CD"},
	)
	m := NewMatcher(ix)

	entry := m.ResolvePhrase("node js")
	require.NotNil(t, entry)
	assert.Equal(t, "Node.js", entry.CanonicalName)

	entry = m.ResolvePhrase("CI-CD")
	require.NotNil(t, entry)
	assert.Equal(t, "CI/CD", entry.CanonicalName)

	assert.Nil(t, m.ResolvePhrase("Haskell"))
	assert.Nil(t, m.ResolvePhrase(""))
}

func TestResolvePhrase_CanonicalNamesResolveToThemselves(t *testing.T) {
	mappings := []taxonomy.Mapping{
		{SkillName: "Python"},
		{SkillName: "Node.js"},
		{SkillName: "Machine Learning"},
		{SkillName: "CI/CD"},
	}
	m := NewMatcher(taxonomy.BuildIndex(taxonomy.NewMapper(mappings)))

	for _, mapping := range mappings {
		entry := m.ResolvePhrase(mapping.SkillName)
		require.NotNil(t, entry, "canonical name %q did not resolve", mapping.SkillName)
		assert.Equal(t, mapping.SkillName, entry.CanonicalName)
	}
}

func TestResolvePhrase_ExcludedReturnsNil(t *testing.T) {
	ix := testIndex(t, taxonomy.Mapping{SkillName: "Code"})
	m := NewMatcher(ix, "code")

	assert.Nil(t, m.ResolvePhrase("code"))
}

func TestExclude_SafeAfterConstruction(t *testing.T) {
	ix := testIndex(t, taxonomy.Mapping{SkillName: "Python"})
	m := NewMatcher(ix)

	matches := m.Scan("Python experience")
	require.Len(t, matches, 1)

	m.Exclude("python")
	assert.Empty(t, m.Scan("Python experience"))
}

func TestHasPositiveContext(t *testing.T) {
	assert.True(t, HasPositiveContext("5 years of experience with distributed systems"))
	assert.True(t, HasPositiveContext("• Python"))
	assert.True(t, HasPositiveContext("Skills: Python, Docker"))
	assert.False(t, HasPositiveContext("I went to the store yesterday."))
}
