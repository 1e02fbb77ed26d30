package feedback

import (
	"fmt"
	"strings"
)

const historyLimit = 5

const (
	LengthDefault = "default"
	LengthShorter = "shorter"
	LengthLonger  = "longer"

	DetailDefault      = "default"
	DetailMoreSpecific = "more_specific"
	DetailHighLevel    = "high_level"

	ToneDefault       = "default"
	ToneMoreHumble    = "more_humble"
	ToneMoreConfident = "more_confident"
)

// Preferences are the style settings learned within one session.
type Preferences struct {
	ResponseLength string     `json:"response_length,omitempty"`
	DetailLevel    string     `json:"detail_level,omitempty"`
	Tone           string     `json:"tone,omitempty"`
	Examples       int        `json:"examples,omitempty"`
	History        []Feedback `json:"feedback"`
}

func NewPreferences() Preferences {
	return Preferences{
		ResponseLength: LengthDefault,
		DetailLevel:    DetailDefault,
		Tone:           ToneDefault,
		History:        []Feedback{},
	}
}

// Apply returns prefs updated with fb. Unprofessional feedback is only
// recorded in the history.
func Apply(prefs Preferences, fb Feedback) Preferences {
	next := prefs
	history := make([]Feedback, 0, len(prefs.History)+1)
	history = append(history, prefs.History...)
	history = append(history, fb)
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	next.History = history

	if !fb.IsProfessional {
		return next
	}
	if r := ruleFor(fb); r != nil {
		r.apply(&next)
	}
	return next
}

// BuildInstruction renders directive lines for every non-default
// preference. Default preferences produce an empty string.
func BuildInstruction(prefs Preferences) string {
	var lines []string

	switch prefs.ResponseLength {
	case LengthShorter:
		lines = append(lines, "User wants: SHORT (1-2 sentences)")
	case LengthLonger:
		lines = append(lines, "User wants: MORE DETAIL")
	}

	switch prefs.DetailLevel {
	case DetailMoreSpecific:
		examples := prefs.Examples
		if examples == 0 {
			examples = 2
		}
		lines = append(lines, fmt.Sprintf("USER PREFERENCE: Be SPECIFIC - include concrete examples, numbers, and details (aim for %d examples)", examples))
	case DetailHighLevel:
		lines = append(lines, "USER PREFERENCE: High-level overview only - skip granular details")
	}

	switch prefs.Tone {
	case ToneMoreHumble:
		lines = append(lines, `USER FEEDBACK: BE MORE HUMBLE - avoid boastful language, use "I learned" not "I mastered", acknowledge growth areas`)
	case ToneMoreConfident:
		lines = append(lines, "USER FEEDBACK: BE MORE CONFIDENT - highlight achievements clearly, don't undersell yourself")
	}

	if len(lines) == 0 {
		return ""
	}
	return "\n\nADAPTIVE FEEDBACK (Learn from user's preferences):\n" +
		strings.Join(lines, "\n") +
		"\n(These preferences learned from user feedback in this session)\n"
}
