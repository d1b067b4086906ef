// Package taxonomy loads the external skill taxonomy and builds the
// immutable token index the matcher scans against.
package taxonomy

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// mappingSchema validates the taxonomy dataset before indexing. A dataset
// that fails validation degrades to an empty mapper; it never aborts the
// pipeline.
const mappingSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["skill_name"],
    "properties": {
      "skill_name": {"type": "string", "minLength": 1},
      "aliases": {"type": "array", "items": {"type": "string"}},
      "esco_id": {"type": "string"},
      "category": {"type": "string", "enum": ["technical", "soft", "domain"]},
      "skill_type": {"type": "string"}
    }
  }
}`

// Mapping is one canonical skill record from the taxonomy dataset
type Mapping struct {
	SkillName string   `json:"skill_name"`
	Aliases   []string `json:"aliases,omitempty"`
	ESCOID    string   `json:"esco_id,omitempty"`
	Category  string   `json:"category,omitempty"`
	SkillType string   `json:"skill_type,omitempty"`
}

// mappingFile supports the object form of the dataset ({"mappings": [...]})
type mappingFile struct {
	Mappings []Mapping `json:"mappings"`
}

// Mapper resolves skill names and aliases to taxonomy records
type Mapper struct {
	byName  map[string]*Mapping
	ordered []*Mapping
}

// NewMapper builds a mapper from in-memory mappings. Names and aliases are
// indexed case-insensitively; empty aliases are skipped.
func NewMapper(mappings []Mapping) *Mapper {
	m := &Mapper{byName: make(map[string]*Mapping)}
	for i := range mappings {
		mapping := &mappings[i]
		if mapping.SkillName == "" {
			continue
		}
		m.ordered = append(m.ordered, mapping)
		m.byName[strings.ToLower(mapping.SkillName)] = mapping
		for _, alias := range mapping.Aliases {
			if alias == "" {
				continue
			}
			m.byName[strings.ToLower(alias)] = mapping
		}
	}
	return m
}

// LoadMapper reads the taxonomy dataset from path. A missing, malformed, or
// schema-invalid dataset yields an empty mapper with a logged warning:
// matching against an empty index returns no matches but must not crash.
func LoadMapper(path string, logger *zap.Logger) *Mapper {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("taxonomy dataset not found, continuing with empty index",
			zap.String("path", path), zap.Error(err))
		return NewMapper(nil)
	}

	mappings, err := parseMappings(data)
	if err != nil {
		logger.Warn("taxonomy dataset rejected, continuing with empty index",
			zap.String("path", path), zap.Error(err))
		return NewMapper(nil)
	}

	logger.Info("loaded skill taxonomy", zap.Int("mappings", len(mappings)))
	return NewMapper(mappings)
}

// parseMappings accepts both the array form and the {"mappings": [...]} form
func parseMappings(data []byte) ([]Mapping, error) {
	var raw json.RawMessage = data

	var file mappingFile
	if err := json.Unmarshal(data, &file); err == nil && file.Mappings != nil {
		encoded, err := json.Marshal(file.Mappings)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(mappingSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		var sb strings.Builder
		sb.WriteString("taxonomy schema validation failed:")
		for _, desc := range result.Errors() {
			sb.WriteString(" " + desc.String() + ";")
		}
		return nil, &schemaError{message: sb.String()}
	}

	var mappings []Mapping
	if err := json.Unmarshal(raw, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

type schemaError struct {
	message string
}

func (e *schemaError) Error() string { return e.message }

// GetMapping returns the taxonomy record for a skill name or alias, or nil
func (m *Mapper) GetMapping(skillName string) *Mapping {
	return m.byName[strings.ToLower(skillName)]
}

// GetESCOID returns the external taxonomy identifier for a skill, or ""
func (m *Mapper) GetESCOID(skillName string) string {
	if mapping := m.GetMapping(skillName); mapping != nil {
		return mapping.ESCOID
	}
	return ""
}

// GetCategory returns the category for a skill, defaulting to "technical"
func (m *Mapper) GetCategory(skillName string) string {
	if mapping := m.GetMapping(skillName); mapping != nil && mapping.Category != "" {
		return mapping.Category
	}
	return "technical"
}

// FindSimilarSkills returns up to limit indexed names that contain, or are
// contained in, the given name
func (m *Mapper) FindSimilarSkills(skillName string, limit int) []string {
	lower := strings.ToLower(skillName)
	var matches []string
	for _, mapping := range m.ordered {
		for _, candidate := range m.namesFor(mapping) {
			if strings.Contains(candidate, lower) || strings.Contains(lower, candidate) {
				matches = append(matches, candidate)
				break
			}
		}
		if len(matches) >= limit {
			break
		}
	}
	return matches
}

func (m *Mapper) namesFor(mapping *Mapping) []string {
	names := []string{strings.ToLower(mapping.SkillName)}
	for _, alias := range mapping.Aliases {
		if alias != "" {
			names = append(names, strings.ToLower(alias))
		}
	}
	return names
}

// AllMappings returns the unique taxonomy records in dataset order
func (m *Mapper) AllMappings() []*Mapping {
	return m.ordered
}

// Len returns the number of unique taxonomy records
func (m *Mapper) Len() int {
	return len(m.ordered)
}
