package persona

import "strings"

const (
	maxWords         = 100
	maxTokens        = 500
	followUpMinWords = 40
)

// LengthInstruction is appended to every composed system prompt.
const LengthInstruction = "\nLENGTH: 2-4 sentences (simple Q), 4-6 sentences (complex Q). Use bullet points for lists. Be specific (names, tech, numbers). Quality > length."

// LengthReport describes a generated response's size.
type LengthReport struct {
	WordCount      int    `json:"word_count"`
	TokenEstimate  int    `json:"token_estimate"`
	NeedsAttention bool   `json:"needs_attention"`
	Suggestion     string `json:"suggestion,omitempty"`
}

// EstimateTokens assumes roughly four bytes per token.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CheckLength flags responses that ran well past the guidance. It never
// truncates.
func CheckLength(response string) LengthReport {
	r := LengthReport{
		WordCount:     CountWords(response),
		TokenEstimate: EstimateTokens(response),
	}

	switch {
	case r.WordCount > maxWords:
		r.NeedsAttention = true
		r.Suggestion = "Consider breaking into bullet points or suggesting user ask for specifics"
	case r.TokenEstimate > maxTokens:
		r.NeedsAttention = true
		r.Suggestion = "Response too long - aim for more concise summary"
	}
	return r
}

// AddFollowUp appends a topic hint to longer responses.
func AddFollowUp(response string) string {
	if CountWords(response) < followUpMinWords {
		return response
	}

	lower := strings.ToLower(response)
	var followUp string
	switch {
	case strings.Contains(lower, "project") || strings.Contains(lower, "built"):
		followUp = "\n\n💡 *Ask me for more details about specific projects or technical implementation choices.*"
	case strings.Contains(lower, "skill") || strings.Contains(lower, "programming"):
		followUp = "\n\n💡 *Feel free to ask about specific technologies, frameworks, or my proficiency levels.*"
	case strings.Contains(lower, "experience") || strings.Contains(lower, "work"):
		followUp = "\n\n💡 *I can elaborate on specific experiences, responsibilities, or achievements.*"
	case strings.Contains(lower, "competition") || strings.Contains(lower, "achievement"):
		followUp = "\n\n💡 *Ask about specific competitions or what I learned from them.*"
	}
	return response + followUp
}
