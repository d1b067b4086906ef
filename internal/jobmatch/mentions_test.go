package jobmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mentionNames(mentions []Mention) []string {
	names := make([]string, len(mentions))
	for i, m := range mentions {
		names[i] = m.Name
	}
	return names
}

func TestExtractMentions_FindsKnownSkills(t *testing.T) {
	jobText := "We use Python, Docker and PostgreSQL to build our data platform."
	mentions := ExtractMentions(jobText)

	assert.ElementsMatch(t, []string{"Python", "Docker", "PostgreSQL"}, mentionNames(mentions))
	for _, mention := range mentions {
		assert.Equal(t, "other", mention.Section)
	}
}

func TestExtractMentions_SectionsTagged(t *testing.T) {
	jobText := "Requirements:\n- Python and AWS experience\n\nResponsibilities:\n- Maintain Kubernetes clusters"
	mentions := ExtractMentions(jobText)

	sections := make(map[string]string)
	for _, mention := range mentions {
		sections[mention.Name] = mention.Section
	}

	assert.Equal(t, "requirements", sections["Python"])
	assert.Equal(t, "requirements", sections["AWS"])
	assert.Equal(t, "responsibilities", sections["Kubernetes"])
}

func TestExtractMentions_DedupesCaseInsensitivelyFirstSeen(t *testing.T) {
	jobText := "Requirements: Python required. Responsibilities: write PYTHON services"
	mentions := ExtractMentions(jobText)

	require.Len(t, mentions, 1)
	assert.Equal(t, "Python", mentions[0].Name)
	assert.Equal(t, "requirements", mentions[0].Section)
}

func TestExtractMentions_NoMentions(t *testing.T) {
	assert.Empty(t, ExtractMentions("We are looking for a friendly barista."))
	assert.Empty(t, ExtractMentions(""))
}

func TestSplitSections_NoHeaders(t *testing.T) {
	sections := splitSections("just some text about Python")
	require.Len(t, sections, 1)
	assert.Equal(t, "other", sections[0].name)
}

func TestSplitSections_BothHeaders(t *testing.T) {
	sections := splitSections("Requirements: A\nResponsibilities: B")
	require.Len(t, sections, 2)
	assert.Equal(t, "requirements", sections[0].name)
	assert.Contains(t, sections[0].text, "A")
	assert.NotContains(t, sections[0].text, "B")
	assert.Equal(t, "responsibilities", sections[1].name)
	assert.Contains(t, sections[1].text, "B")
}
