package taxonomy

import (
	"regexp"
	"strings"
	"sync"
)

// TokenPattern is the single tokenization rule shared by index building and
// text scanning. Tokens are lowercase alphanumerics plus the symbols that
// appear in real skill names ("c++", "c#", "node.js").
var TokenPattern = regexp.MustCompile(`[a-z0-9+#.]+`)

// Entry is one canonical-skill x alias-token-variant pair. Entries are
// immutable once the index is built.
type Entry struct {
	CanonicalName   string
	Alias           string
	Normalized      string // whitespace-joined token sequence
	Tokens          []string
	ESCOID          string
	Category        string
	SkillType       string
	RequiresContext bool
}

// Index is the read-only structure the matcher scans against: entries
// keyed by first token, plus a direct normalized-phrase lookup for
// already-segmented structured-field values.
type Index struct {
	firstToken map[string][]*Entry
	normalized map[string]*Entry
	maxTokens  int
}

// BuildIndex expands every canonical skill and alias into token variants
// and indexes the resulting entries. Variants that normalize identically
// for the same canonical skill collapse to one entry.
func BuildIndex(mapper *Mapper) *Index {
	ix := &Index{
		firstToken: make(map[string][]*Entry),
		normalized: make(map[string]*Entry),
	}

	unique := make(map[[2]string]*Entry)
	for _, mapping := range mapper.AllMappings() {
		canonical := mapping.SkillName
		if canonical == "" {
			continue
		}

		aliases := append([]string{canonical}, mapping.Aliases...)
		for _, phrase := range aliases {
			for _, tokens := range GenerateTokenVariants(phrase) {
				normalized := strings.Join(tokens, " ")
				if normalized == "" {
					continue
				}

				key := [2]string{strings.ToLower(canonical), normalized}
				entry, seen := unique[key]
				if !seen {
					entry = &Entry{
						CanonicalName:   canonical,
						Alias:           phrase,
						Normalized:      normalized,
						Tokens:          tokens,
						ESCOID:          mapping.ESCOID,
						Category:        categoryOrDefault(mapping.Category),
						SkillType:       mapping.SkillType,
						RequiresContext: shouldRequireContext(tokens),
					}
					unique[key] = entry
					if len(tokens) > ix.maxTokens {
						ix.maxTokens = len(tokens)
					}
					ix.firstToken[tokens[0]] = append(ix.firstToken[tokens[0]], entry)
				}

				if _, exists := ix.normalized[normalized]; !exists {
					ix.normalized[normalized] = entry
				}
			}
		}
	}

	return ix
}

func categoryOrDefault(category string) string {
	if category == "" {
		return "technical"
	}
	return category
}

// Candidates returns the entries whose token sequence starts with token
func (ix *Index) Candidates(token string) []*Entry {
	return ix.firstToken[token]
}

// Lookup resolves a normalized phrase to its representative entry, or nil
func (ix *Index) Lookup(normalized string) *Entry {
	return ix.normalized[normalized]
}

// MaxTokens is the longest token sequence in the index, bounding scan lookahead
func (ix *Index) MaxTokens() int {
	return ix.maxTokens
}

// Empty reports whether the index holds no entries
func (ix *Index) Empty() bool {
	return len(ix.firstToken) == 0
}

// separatorReplacements are applied one at a time and in combination when
// expanding an alias into token variants ("ci/cd" also indexes as "ci cd").
var separatorReplacements = [][2]string{
	{"/", " "},
	{"-", " "},
	{"_", " "},
	{"&", " and "},
	{"+", " plus "},
}

// GenerateTokenVariants expands a phrase into the distinct token sequences
// it can be written as: each separator instance substituted independently,
// plus a dot-stripped variant for dotted names ("node.js" -> "node js").
func GenerateTokenVariants(phrase string) [][]string {
	if phrase == "" {
		return nil
	}

	variants := map[string]struct{}{strings.ToLower(phrase): {}}
	for _, repl := range separatorReplacements {
		updated := make([]string, 0, len(variants))
		for variant := range variants {
			if strings.Contains(variant, repl[0]) {
				updated = append(updated, strings.ReplaceAll(variant, repl[0], repl[1]))
			}
		}
		for _, v := range updated {
			variants[v] = struct{}{}
		}
	}

	dotted := make([]string, 0, len(variants))
	for variant := range variants {
		if strings.Contains(variant, ".") {
			dotted = append(dotted, strings.ReplaceAll(variant, ".", " "))
		}
	}
	for _, v := range dotted {
		variants[v] = struct{}{}
	}

	seen := make(map[string]struct{}, len(variants))
	var tokenSets [][]string
	for variant := range variants {
		tokens := TokenPattern.FindAllString(variant, -1)
		if len(tokens) == 0 {
			continue
		}
		normalized := strings.Join(tokens, " ")
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		tokenSets = append(tokenSets, tokens)
	}

	return tokenSets
}

// IndexCache builds the index at most once and shares it across matchers.
// Concurrent first use is serialized; the index is a pure function of the
// mapper, so a rebuild would be wasteful but never incorrect.
type IndexCache struct {
	once  sync.Once
	index *Index
}

// Get returns the cached index, building it from mapper on first use
func (c *IndexCache) Get(mapper *Mapper) *Index {
	c.once.Do(func() {
		c.index = BuildIndex(mapper)
	})
	return c.index
}
