package taxonomy

import "regexp"

// The tables below are declarative configuration for single-token
// disambiguation. They are kept apart from the scanning algorithm so they
// can be extended and tested independently.

// shortTokenWhitelist lists short acronyms that are legitimate skills on
// their own and never require surrounding context.
var shortTokenWhitelist = map[string]struct{}{
	"sql": {}, "aws": {}, "git": {}, "css": {}, "html": {},
	"ux": {}, "ui": {}, "qa": {}, "bi": {}, "sap": {},
	"sas": {}, "etl": {}, "crm": {},
}

// genericSingleTokens are office-suite style homonyms that collide with
// ordinary English and always require context.
var genericSingleTokens = map[string]struct{}{
	"excel": {}, "word": {}, "office": {}, "drive": {},
	"access": {}, "outlook": {}, "teams": {},
}

// StrictRule is a per-token disambiguation rule: the token only matches
// when one of Keywords appears in the surrounding snippet, or — when
// AllowList is set — when the snippet looks like a skills list. Negative,
// when present, vetoes the match even if a keyword is satisfied.
type StrictRule struct {
	Keywords  []string
	AllowList bool
	Negative  *regexp.Regexp
}

var strictContextRules = map[string]StrictRule{
	"excel": {
		Keywords:  []string{"microsoft", "ms office", "spreadsheet"},
		AllowList: true,
		Negative:  regexp.MustCompile(`\bexcel(?:led|s|ing)?\s+(?:at|in)\b`),
	},
	"word":    {Keywords: []string{"microsoft", "ms office", "document"}, AllowList: true},
	"office":  {Keywords: []string{"microsoft", "ms office", "suite"}, AllowList: true},
	"drive":   {Keywords: []string{"google", "g suite", "workspace"}, AllowList: true},
	"access":  {Keywords: []string{"microsoft", "database"}, AllowList: true},
	"outlook": {Keywords: []string{"microsoft", "ms"}, AllowList: true},
	"teams":   {Keywords: []string{"microsoft", "ms"}, AllowList: true},
	"google":  {Keywords: []string{"search", "engine", "seo", "ads", "results", "query"}},
	"yahoo":   {Keywords: []string{"search", "engine", "seo"}},
	"logic":   {Keywords: []string{"formal logic", "logical", "boolean", "symbolic", "circuit", "predicate"}},
	"report":  {Keywords: []string{"facts", "write", "writing", "prepare", "draft", "document", "statement"}},
	"source":  {Keywords: []string{"game", "engine", "valve", "hammer", "sdk"}},
}

// StrictRuleFor returns the strict disambiguation rule for a token, if any
func StrictRuleFor(token string) (StrictRule, bool) {
	rule, ok := strictContextRules[token]
	return rule, ok
}

// GeneralContextKeywords are professional-context words that validate an
// ambiguous match when no strict rule applies, and that raise evidence
// scores for free-text snippets.
var GeneralContextKeywords = []string{
	"experience", "experiences", "skill", "skills", "skilled",
	"proficient", "proficiency", "knowledge", "familiar", "familiarity",
	"using", "use", "utilized", "utilised", "expertise", "certified",
	"tools", "technologies", "technology", "framework", "frameworks",
	"stack", "worked", "hands-on", "hands on", "background", "projects",
	"responsible for", "competency", "competencies",
}

// ListSymbols are bullet glyphs that mark skills-list lines
var ListSymbols = []string{"•", "·", "-", "*"}

// shouldRequireContext decides at index-build time whether a token sequence
// is ambiguous enough to need surrounding context before it may match.
// Multi-token entries are specific enough on their own.
func shouldRequireContext(tokens []string) bool {
	if len(tokens) > 1 {
		return false
	}

	token := tokens[0]
	if _, ok := shortTokenWhitelist[token]; ok {
		return false
	}
	if len(token) <= 2 {
		return true
	}
	if _, ok := strictContextRules[token]; ok {
		return true
	}
	_, ok := genericSingleTokens[token]
	return ok
}
