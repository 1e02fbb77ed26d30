package validation

import "strings"

var metaPhrases = []string{
	"what can you", "what do you do", "how do you work", "what are you",
	"who made you", "how were you built", "what's your purpose", "how does this work",
}

// IsMetaQuery reports whether the query asks about the assistant itself.
func IsMetaQuery(query string) bool {
	return containsAny(strings.ToLower(query), metaPhrases...)
}

// EnhanceQuery widens vague questions so retrieval has more to match on.
// The result is only used as search text.
func EnhanceQuery(query string) string {
	lower := strings.ToLower(strings.TrimSpace(query))

	switch {
	case strings.Contains(lower, "tell me about yourself") || lower == "about you":
		return query + " - include technical skills, projects, education, achievements"
	case strings.Contains(lower, "what can you do") || strings.Contains(lower, "capabilities"):
		return "technical skills, programming languages, frameworks, projects, achievements"
	case strings.Contains(lower, "experience") && !strings.Contains(lower, "work") && !strings.Contains(lower, "project"):
		return query + " work experience and projects"
	default:
		return query
	}
}
