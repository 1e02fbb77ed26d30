package search

import (
	"sort"
	"strings"

	"digital-twin-be/pkg/vectorstore"
)

const (
	boostFactor = 1.15
	maxScore    = 1.0
)

type intent struct {
	queryTerms    []string
	categoryTerms []string
	titleTerms    []string
}

var intents = []intent{
	{
		queryTerms:    []string{"technical", "programming", "code"},
		categoryTerms: []string{"technical"},
		titleTerms:    []string{"skill", "project"},
	},
	{
		queryTerms:    []string{"project", "built", "application"},
		categoryTerms: []string{"project"},
		titleTerms:    []string{"project"},
	},
	{
		queryTerms:    []string{"education", "university", "degree"},
		categoryTerms: []string{"education"},
		titleTerms:    []string{"education"},
	},
}

type candidate struct {
	match   vectorstore.Match
	boosted float64
}

// Boost returns the intent-adjusted score of m for query, capped at 1.0.
func Boost(query string, m vectorstore.Match) float64 {
	lowerQuery := strings.ToLower(query)
	category := strings.ToLower(m.Metadata.Category)
	title := strings.ToLower(m.Metadata.Title)

	for _, in := range intents {
		if !containsAny(lowerQuery, in.queryTerms) {
			continue
		}
		if containsAny(category, in.categoryTerms) || containsAny(title, in.titleTerms) {
			return min(m.Score*boostFactor, maxScore)
		}
	}
	return m.Score
}

// Rerank orders matches by boosted score. Raw scores are left untouched.
func Rerank(query string, matches []vectorstore.Match) []vectorstore.Match {
	cands := make([]candidate, len(matches))
	for i, m := range matches {
		cands[i] = candidate{match: m, boosted: Boost(query, m)}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].boosted > cands[j].boosted
	})

	out := make([]vectorstore.Match, len(cands))
	for i, c := range cands {
		out[i] = c.match
	}
	return out
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
