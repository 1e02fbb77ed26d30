package faq

import (
	"regexp"
	"sort"
	"strings"
)

const (
	DefaultTopK = 2

	keywordWeight = 0.4
	overlapWeight = 0.2
	minScore      = 0.25
)

// Pattern is a known interviewer question and the knowledge area it points at.
type Pattern struct {
	Category       string   `json:"category"`
	Question       string   `json:"question"`
	Keywords       []string `json:"keywords"`
	ContextHint    string   `json:"context_hint"`
	RelevanceBoost float64  `json:"relevance_boost"`
}

type compiledPattern struct {
	Pattern
	keywordRes    []*regexp.Regexp
	questionWords map[string]struct{}
}

// Matcher scores queries against an immutable pattern catalog.
type Matcher struct {
	patterns []compiledPattern
}

var wordRe = regexp.MustCompile(`[a-z0-9]+(?:[.'-][a-z0-9]+)*`)

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "you": {}, "your": {}, "are": {}, "what": {}, "how": {}, "why": {},
	"who": {}, "with": {}, "have": {}, "for": {}, "about": {}, "tell": {}, "does": {}, "did": {},
	"can": {}, "any": {}, "this": {}, "that": {}, "our": {}, "was": {}, "were": {}, "what's": {},
	"which": {}, "when": {}, "where": {}, "would": {}, "should": {}, "from": {}, "into": {},
}

// NewMatcher compiles patterns once. A nil catalog falls back to the default one.
func NewMatcher(patterns []Pattern) *Matcher {
	if patterns == nil {
		patterns = DefaultCatalog()
	}
	m := &Matcher{patterns: make([]compiledPattern, 0, len(patterns))}
	for _, p := range patterns {
		cp := compiledPattern{Pattern: p, questionWords: significantWords(p.Question)}
		for _, kw := range p.Keywords {
			expr := `\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`
			cp.keywordRes = append(cp.keywordRes, regexp.MustCompile(expr))
		}
		m.patterns = append(m.patterns, cp)
	}
	return m
}

// Match returns up to topK patterns scoring above the floor, best first.
func (m *Matcher) Match(query string, topK int) []Pattern {
	if topK <= 0 {
		topK = DefaultTopK
	}
	lower := strings.ToLower(query)
	queryWords := significantWords(lower)

	type scored struct {
		pattern Pattern
		score   float64
	}
	var hits []scored
	for _, p := range m.patterns {
		if s := p.score(lower, queryWords); s > minScore {
			hits = append(hits, scored{pattern: p.Pattern, score: s})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > topK {
		hits = hits[:topK]
	}

	out := make([]Pattern, len(hits))
	for i, h := range hits {
		out[i] = h.pattern
	}
	return out
}

func (p compiledPattern) score(lowerQuery string, queryWords map[string]struct{}) float64 {
	keywordMatches := 0
	for _, re := range p.keywordRes {
		if re.MatchString(lowerQuery) {
			keywordMatches++
		}
	}

	overlap := 0
	for w := range queryWords {
		if _, ok := p.questionWords[w]; ok {
			overlap++
		}
	}

	return (float64(keywordMatches)*keywordWeight + float64(overlap)*overlapWeight) * p.RelevanceBoost
}

func significantWords(text string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) < 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

// FocusBlock renders hints as short focus-area lines for the system prompt.
func FocusBlock(hints []Pattern) string {
	if len(hints) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("FOCUS AREAS (likely interview topic, answer from context only):\n")
	for _, h := range hints {
		sb.WriteString("- ")
		sb.WriteString(h.Category)
		sb.WriteString(": ")
		sb.WriteString(h.ContextHint)
		sb.WriteString("\n")
	}
	return sb.String()
}
