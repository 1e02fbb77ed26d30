package search

import (
	"regexp"
	"strings"
)

const minRelevanceScore = 0.6

// Relevance is the verdict of ValidateRelevance.
type Relevance struct {
	IsRelevant bool    `json:"is_relevant"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

var (
	timelineQueryRe = regexp.MustCompile(`how long|timeline|duration|time frame|hours|days|weeks|months`)
	timelineProofRe = regexp.MustCompile(`(?i)\b(?:\d+\s*(?:hours?|days?|weeks?|months?|years?)|took|spent|duration|timeline)\b`)

	metricsQueryRe = regexp.MustCompile(`how many|users|downloads|visits|metrics|stats|numbers`)
	// "%" is matched outside the word-boundary group so "40% faster" counts.
	metricsProofRe = regexp.MustCompile(`(?i)\b\d+\s*%|\b(?:\d+\s*(?:users?|visits?|downloads?|percent|million|thousand)|traffic|revenue|conversion)\b`)
)

// ValidateRelevance checks that the retrieved context carries the kind of
// evidence the question shape asks for, not just a high similarity score.
func ValidateRelevance(query, contextText string, ragScore float64) Relevance {
	if ragScore < minRelevanceScore {
		return Relevance{
			IsRelevant: false,
			Reason:     "Low semantic similarity score",
			Confidence: 0.9,
		}
	}

	lower := strings.ToLower(query)

	if timelineQueryRe.MatchString(lower) && !timelineProofRe.MatchString(contextText) {
		return Relevance{
			IsRelevant: false,
			Reason:     "Context lacks timeline information for timeline question",
			Confidence: 0.8,
		}
	}

	if metricsQueryRe.MatchString(lower) && !metricsProofRe.MatchString(contextText) {
		return Relevance{
			IsRelevant: false,
			Reason:     "Context lacks metrics for metrics question",
			Confidence: 0.8,
		}
	}

	return Relevance{
		IsRelevant: true,
		Reason:     "Context appears to address the query",
		Confidence: min(ragScore, 0.85),
	}
}
