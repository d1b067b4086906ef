package matching

import (
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/skillsense/internal/taxonomy"
)

// snippetRadius is how many characters of surrounding context are kept on
// each side of a match.
const snippetRadius = 60

// Match is one accepted occurrence of a taxonomy entry in scanned text.
// Offsets index into the scanned text; the entry is borrowed from the
// shared index, not owned.
type Match struct {
	Entry       *taxonomy.Entry
	Start       int
	End         int
	MatchedText string
	Snippet     string
}

// Matcher scans text against a shared read-only index. Scans are pure and
// safe to run in parallel; the per-matcher exclusion set is the only
// mutable state and is guarded by a mutex.
type Matcher struct {
	index *taxonomy.Index

	mu       sync.Mutex
	excluded map[string]struct{}
}

// NewMatcher creates a matcher over the given index with an initial set of
// excluded canonical names or phrases.
func NewMatcher(index *taxonomy.Index, excluded ...string) *Matcher {
	m := &Matcher{
		index:    index,
		excluded: make(map[string]struct{}, len(excluded)),
	}
	m.Exclude(excluded...)
	return m
}

// Exclude adds terms to the exclusion set. Safe for concurrent use.
func (m *Matcher) Exclude(terms ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, term := range terms {
		if term == "" {
			continue
		}
		m.excluded[strings.ToLower(term)] = struct{}{}
	}
}

// excludedSnapshot copies the exclusion set so a scan never observes a
// partial update.
func (m *Matcher) excludedSnapshot() map[string]struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make(map[string]struct{}, len(m.excluded))
	for term := range m.excluded {
		snapshot[term] = struct{}{}
	}
	return snapshot
}

// Scan returns the ordered, non-overlapping matches found in text.
// Empty text yields no matches; this is not an error condition.
func (m *Matcher) Scan(text string) []Match {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	tokenSpans := taxonomy.TokenPattern.FindAllStringIndex(lower, -1)
	if len(tokenSpans) == 0 {
		return nil
	}

	excluded := m.excludedSnapshot()

	// Sentence punctuation glues onto the last token ("Docker." scans as
	// one token); trailing dots are trimmed so the token still lines up
	// with the indexed form. Interior dots ("node.js") are kept.
	tokens := make([]string, len(tokenSpans))
	for i, span := range tokenSpans {
		for span[1] > span[0]+1 && lower[span[1]-1] == '.' {
			span[1]--
		}
		tokenSpans[i] = span
		tokens[i] = lower[span[0]:span[1]]
	}

	var raw []Match
	seenSpans := make(map[spanKey]struct{})

	for idx, token := range tokens {
		for _, entry := range m.index.Candidates(token) {
			length := len(entry.Tokens)
			if idx+length > len(tokens) {
				continue
			}

			candidate := strings.Join(tokens[idx:idx+length], " ")
			if candidate != entry.Normalized {
				continue
			}

			start := tokenSpans[idx][0]
			end := tokenSpans[idx+length-1][1]

			canonicalLower := strings.ToLower(entry.CanonicalName)
			if _, skip := excluded[canonicalLower]; skip {
				continue
			}
			if _, skip := excluded[entry.Normalized]; skip {
				continue
			}

			key := spanKey{canonical: canonicalLower, start: start, end: end}
			if _, dup := seenSpans[key]; dup {
				continue
			}

			if !spanLooksClean(text, start, end, text[start:end]) {
				continue
			}

			snippet := extractContext(text, start, end)
			if !contextValid(entry, snippet) {
				continue
			}

			raw = append(raw, Match{
				Entry:       entry,
				Start:       start,
				End:         end,
				MatchedText: text[start:end],
				Snippet:     snippet,
			})
			seenSpans[key] = struct{}{}
		}
	}

	if len(raw) == 0 {
		return nil
	}

	return resolveOverlaps(raw)
}

type spanKey struct {
	canonical  string
	start, end int
}

// resolveOverlaps keeps longer, more specific matches over shorter ones.
// Token-sequence length wins strictly before span length; this precedence
// is a fixed contract.
func resolveOverlaps(raw []Match) []Match {
	sort.SliceStable(raw, func(i, j int) bool {
		li, lj := len(raw[i].Entry.Tokens), len(raw[j].Entry.Tokens)
		if li != lj {
			return li > lj
		}
		return raw[i].End-raw[i].Start > raw[j].End-raw[j].Start
	})

	var accepted []Match
	for _, match := range raw {
		overlaps := false
		for _, existing := range accepted {
			if spansOverlap(match, existing) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, match)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

func spansOverlap(a, b Match) bool {
	return !(a.End <= b.Start || a.Start >= b.End)
}

func extractContext(text string, start, end int) string {
	snippetStart := start - snippetRadius
	if snippetStart < 0 {
		snippetStart = 0
	}
	snippetEnd := end + snippetRadius
	if snippetEnd > len(text) {
		snippetEnd = len(text)
	}
	return text[snippetStart:snippetEnd]
}

// ResolvePhrase resolves an already-segmented phrase (a structured-field
// skill value) directly against the index, trying the same token variants
// generated at build time. Returns nil when nothing resolves or the
// resolved skill is excluded.
func (m *Matcher) ResolvePhrase(phrase string) *taxonomy.Entry {
	if phrase == "" {
		return nil
	}

	excluded := m.excludedSnapshot()
	for _, tokens := range taxonomy.GenerateTokenVariants(phrase) {
		normalized := strings.Join(tokens, " ")
		entry := m.index.Lookup(normalized)
		if entry == nil {
			continue
		}
		if _, skip := excluded[strings.ToLower(entry.CanonicalName)]; skip {
			continue
		}
		return entry
	}
	return nil
}
