package extraction

import (
	"sort"
	"strings"
)

// FieldNode is one node of a structured resume field tree: exactly one of
// Value, List, or Map is meaningful. The tree mirrors the arbitrary
// string/list/map nesting that upstream field extraction produces.
type FieldNode struct {
	Value string
	List  []FieldNode
	Map   map[string]FieldNode
}

// NodeFromJSON converts decoded JSON (string / []any / map[string]any) into
// a FieldNode tree. Unsupported leaf types become empty nodes and are
// ignored by traversal.
func NodeFromJSON(v any) FieldNode {
	switch value := v.(type) {
	case string:
		return FieldNode{Value: value}
	case []any:
		node := FieldNode{}
		for _, item := range value {
			node.List = append(node.List, NodeFromJSON(item))
		}
		return node
	case map[string]any:
		node := FieldNode{Map: make(map[string]FieldNode, len(value))}
		for key, item := range value {
			node.Map[key] = NodeFromJSON(item)
		}
		return node
	default:
		return FieldNode{}
	}
}

// structuredLabelStopwords are section labels that show up as leaf strings
// in field trees but are never themselves skills.
var structuredLabelStopwords = map[string]struct{}{
	"skills":                {},
	"technical skills":      {},
	"programming skills":    {},
	"soft skills":           {},
	"programming languages": {},
	"languages":             {},
	"professional skills":   {},
	"tools":                 {},
	"tooling":               {},
	"frameworks":            {},
	"competencies":          {},
	"certifications":        {},
	"summary":               {},
	"professional summary":  {},
	"profile":               {},
	"experience":            {},
	"work experience":       {},
	"projects":              {},
}

// SkillStrings flattens a field tree into an ordered, deduplicated list of
// candidate skill strings, filtering out known section labels. Map keys are
// visited in sorted order so traversal is deterministic.
func SkillStrings(node FieldNode) []string {
	var collected []string
	walkFieldTree(node, &collected)

	seen := make(map[string]struct{}, len(collected))
	deduped := make([]string, 0, len(collected))
	for _, s := range collected {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		deduped = append(deduped, s)
	}
	return deduped
}

func walkFieldTree(node FieldNode, out *[]string) {
	if node.Value != "" {
		value := strings.TrimSpace(node.Value)
		if value == "" {
			return
		}
		if _, stop := structuredLabelStopwords[strings.ToLower(value)]; stop {
			return
		}
		*out = append(*out, value)
		return
	}

	for _, child := range node.List {
		walkFieldTree(child, out)
	}

	if len(node.Map) > 0 {
		keys := make([]string, 0, len(node.Map))
		for key := range node.Map {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			walkFieldTree(node.Map[key], out)
		}
	}
}
