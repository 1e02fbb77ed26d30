package preprocess

import (
	"regexp"
	"strings"
)

// Stage names reported by Preprocess when a correction pass changed the text.
const (
	StageWhitespace  = "whitespace"
	StagePunctuation = "punctuation"
	StageTextSpeak   = "text_speak"
	StageTypos       = "typos"
	StageDomainTerms = "domain_terms"
)

// Result is the outcome of running the full normalization pipeline.
type Result struct {
	Original   string   `json:"original"`
	Normalized string   `json:"normalized"`
	Stages     []string `json:"stages,omitempty"`
}

// Changed reports whether any stage altered the query.
func (r Result) Changed() bool {
	return len(r.Stages) > 0
}

var (
	whitespaceRe      = regexp.MustCompile(`\s+`)
	spaceBeforePunct  = regexp.MustCompile(`\s+([.,!?])`)
	missingSpaceAfter = regexp.MustCompile(`([,!?])([a-zA-Z])`)
	trailingPunct     = regexp.MustCompile(`[.,!?;:]+$`)

	// A period only starts a new sentence before a capital, so "next.js" survives.
	missingSpaceAfterPeriod = regexp.MustCompile(`(\.)([A-Z])`)
)

// Preprocess runs every stage in order and records which ones fired.
func Preprocess(raw string) Result {
	res := Result{Original: raw}

	text := collapseWhitespace(raw)
	if text != raw {
		res.Stages = append(res.Stages, StageWhitespace)
	}

	if fixed := fixPunctuation(text); fixed != text {
		res.Stages = append(res.Stages, StagePunctuation)
		text = fixed
	}

	if fixed := fixTextSpeak(text); fixed != text {
		res.Stages = append(res.Stages, StageTextSpeak)
		text = fixed
	}

	if fixed := fixWords(text); fixed != text {
		res.Stages = append(res.Stages, StageTypos)
		text = fixed
	}

	if fixed := CorrectKeyTerms(text); fixed != text {
		res.Stages = append(res.Stages, StageDomainTerms)
		text = fixed
	}

	res.Normalized = text
	return res
}

// Normalize trims, collapses whitespace and repairs spacing around punctuation.
func Normalize(raw string) string {
	return fixPunctuation(collapseWhitespace(raw))
}

// FixTypos applies text-speak phrase substitution followed by the word dictionary.
func FixTypos(s string) string {
	return fixWords(fixTextSpeak(s))
}

// CorrectKeyTerms replaces known misspellings of professional vocabulary.
// Matching is exact per word; unknown words are left alone.
func CorrectKeyTerms(s string) string {
	return mapWords(s, domainTerms)
}

func collapseWhitespace(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

func fixPunctuation(s string) string {
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = missingSpaceAfter.ReplaceAllString(s, "$1 $2")
	return missingSpaceAfterPeriod.ReplaceAllString(s, "$1 $2")
}

func fixTextSpeak(s string) string {
	for _, p := range phraseCorrections {
		s = p.pattern.ReplaceAllString(s, p.replacement)
	}
	return s
}

func fixWords(s string) string {
	return mapWords(s, typoCorrections)
}

// mapWords looks each word up in dict, keeping trailing punctuation intact.
func mapWords(s string, dict map[string]string) string {
	if s == "" {
		return s
	}
	words := strings.Split(s, " ")
	for i, word := range words {
		suffix := trailingPunct.FindString(word)
		clean := strings.TrimSuffix(word, suffix)
		if clean == "" {
			continue
		}
		if fixed, ok := dict[strings.ToLower(clean)]; ok {
			words[i] = fixed + suffix
		}
	}
	return strings.Join(words, " ")
}
