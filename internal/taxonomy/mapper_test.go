package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMapper_ArrayForm(t *testing.T) {
	path := writeDataset(t, `[
		{"skill_name": "Python", "esco_id": "esco:123", "category": "technical"},
		{"skill_name": "JavaScript", "aliases": ["JS", "ECMAScript"]}
	]`)

	mapper := LoadMapper(path, zap.NewNop())
	require.NotNil(t, mapper)
	assert.Equal(t, 2, mapper.Len())

	mapping := mapper.GetMapping("python")
	require.NotNil(t, mapping)
	assert.Equal(t, "Python", mapping.SkillName)
	assert.Equal(t, "esco:123", mapping.ESCOID)
}

func TestLoadMapper_ObjectForm(t *testing.T) {
	path := writeDataset(t, `{"mappings": [
		{"skill_name": "Docker", "category": "technical"}
	]}`)

	mapper := LoadMapper(path, zap.NewNop())
	assert.Equal(t, 1, mapper.Len())
	assert.NotNil(t, mapper.GetMapping("Docker"))
}

func TestLoadMapper_MissingFile(t *testing.T) {
	mapper := LoadMapper("/nonexistent/taxonomy.json", zap.NewNop())
	require.NotNil(t, mapper)
	assert.Equal(t, 0, mapper.Len())
}

func TestLoadMapper_SchemaInvalid(t *testing.T) {
	// skill_name is required
	path := writeDataset(t, `[{"aliases": ["JS"]}]`)

	mapper := LoadMapper(path, zap.NewNop())
	require.NotNil(t, mapper)
	assert.Equal(t, 0, mapper.Len())
}

func TestLoadMapper_MalformedJSON(t *testing.T) {
	path := writeDataset(t, `{not json`)

	mapper := LoadMapper(path, zap.NewNop())
	require.NotNil(t, mapper)
	assert.Equal(t, 0, mapper.Len())
}

func TestGetMapping_AliasResolvesCaseInsensitively(t *testing.T) {
	mapper := NewMapper([]Mapping{
		{SkillName: "JavaScript", Aliases: []string{"JS"}},
	})

	mapping := mapper.GetMapping("js")
	require.NotNil(t, mapping)
	assert.Equal(t, "JavaScript", mapping.SkillName)
}

func TestGetCategory_DefaultsToTechnical(t *testing.T) {
	mapper := NewMapper([]Mapping{
		{SkillName: "Leadership", Category: "soft"},
		{SkillName: "Python"},
	})

	assert.Equal(t, "soft", mapper.GetCategory("leadership"))
	assert.Equal(t, "technical", mapper.GetCategory("python"))
	assert.Equal(t, "technical", mapper.GetCategory("unknown skill"))
}

func TestGetESCOID_UnknownSkill(t *testing.T) {
	mapper := NewMapper([]Mapping{{SkillName: "Python", ESCOID: "esco:123"}})

	assert.Equal(t, "esco:123", mapper.GetESCOID("Python"))
	assert.Equal(t, "", mapper.GetESCOID("Haskell"))
}

func TestFindSimilarSkills_SubstringBothWays(t *testing.T) {
	mapper := NewMapper([]Mapping{
		{SkillName: "Java"},
		{SkillName: "JavaScript"},
		{SkillName: "Python"},
	})

	similar := mapper.FindSimilarSkills("java", 10)
	assert.Contains(t, similar, "java")
	assert.Contains(t, similar, "javascript")
	assert.NotContains(t, similar, "python")
}

func TestFindSimilarSkills_RespectsLimit(t *testing.T) {
	mapper := NewMapper([]Mapping{
		{SkillName: "Java"},
		{SkillName: "JavaScript"},
		{SkillName: "Java EE"},
	})

	similar := mapper.FindSimilarSkills("java", 2)
	assert.Len(t, similar, 2)
}
