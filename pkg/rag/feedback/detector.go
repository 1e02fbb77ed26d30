package feedback

import (
	"regexp"
	"strings"
	"time"
)

type Type string

const (
	TypeLength  Type = "length"
	TypeDetail  Type = "detail"
	TypeTone    Type = "tone"
	TypeInvalid Type = "invalid"
)

// Feedback is a single style instruction detected in a user message.
type Feedback struct {
	Type           Type      `json:"type"`
	Instruction    string    `json:"instruction"`
	IsProfessional bool      `json:"is_professional"`
	Timestamp      time.Time `json:"timestamp"`
}

type rule struct {
	kind        Type
	apply       func(*Preferences)
	instruction string
	matcher     *regexp.Regexp
}

var now = time.Now

// Invalid requests are recorded but never change behaviour.
var invalidPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:ignore|forget|disregard).{0,20}(?:previous|instruction|rule|prompt|system)`),
	regexp.MustCompile(`(?i)(?:pretend|act like|roleplay)`),
	regexp.MustCompile(`(?i)(?:make up|fabricate|lie|fake).{0,20}(?:information|data|facts)`),
	regexp.MustCompile(`(?i)(?:tell me|write).{0,30}(?:joke|poem|story|song)`),
}

// Order matters: length, then detail, then tone. First match wins.
var rules = []rule{
	{
		kind:        TypeLength,
		instruction: "Keep responses shorter and more concise",
		matcher:     regexp.MustCompile(`(?i)(?:too long|make it shorter|be more concise|less wordy|keep it brief|shorter response)`),
		apply:       func(p *Preferences) { p.ResponseLength = LengthShorter },
	},
	{
		kind:        TypeLength,
		instruction: "Provide more detailed and comprehensive responses",
		matcher:     regexp.MustCompile(`(?i)(?:too short|more detail|elaborate|expand on|tell me more|more context)`),
		apply:       func(p *Preferences) { p.ResponseLength = LengthLonger },
	},
	{
		kind:        TypeDetail,
		instruction: "Be more specific with examples and concrete details",
		matcher:     regexp.MustCompile(`(?i)(?:more specific|be more detailed|give examples|can you elaborate|explain more|what do you mean)`),
		apply: func(p *Preferences) {
			p.DetailLevel = DetailMoreSpecific
			p.Examples = 2
		},
	},
	{
		kind:        TypeDetail,
		instruction: "Provide high-level overview without too many details",
		matcher:     regexp.MustCompile(`(?i)(?:high level|overview|summary|just the basics|simplified)`),
		apply: func(p *Preferences) {
			p.DetailLevel = DetailHighLevel
			p.Examples = 0
		},
	},
	{
		kind:        TypeTone,
		instruction: "Be more humble and less boastful in responses",
		matcher:     regexp.MustCompile(`(?i)(?:you sounded? (?:too )?boastful|(?:too )?arrogant|(?:be )?more humble|(?:be )?less cocky|(?:sound )?(?:less )?overconfident|(?:don't )?brag)`),
		apply:       func(p *Preferences) { p.Tone = ToneMoreHumble },
	},
	{
		kind:        TypeTone,
		instruction: "Be more confident and assertive about achievements",
		matcher:     regexp.MustCompile(`(?i)(?:too humble|more confident|don't undersell|sell yourself better)`),
		apply:       func(p *Preferences) { p.Tone = ToneMoreConfident },
	},
}

// Detect returns the feedback carried by message, or nil when there is none.
func Detect(message string) *Feedback {
	if IsInvalid(message) {
		return &Feedback{
			Type:           TypeInvalid,
			Instruction:    message,
			IsProfessional: false,
			Timestamp:      now(),
		}
	}

	if r := matchRule(message); r != nil {
		return &Feedback{
			Type:           r.kind,
			Instruction:    r.instruction,
			IsProfessional: true,
			Timestamp:      now(),
		}
	}
	return nil
}

// IsInvalid reports whether message asks for role play, fabrication,
// instruction overrides or off-topic creative writing.
func IsInvalid(message string) bool {
	lower := strings.ToLower(message)
	for _, re := range invalidPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// IsProfessional reports whether message is a valid style request.
func IsProfessional(message string) bool {
	fb := Detect(message)
	return fb != nil && fb.IsProfessional
}

func matchRule(message string) *rule {
	for i := range rules {
		if rules[i].matcher.MatchString(message) {
			return &rules[i]
		}
	}
	return nil
}

func ruleFor(fb Feedback) *rule {
	for i := range rules {
		if rules[i].kind == fb.Type && rules[i].instruction == fb.Instruction {
			return &rules[i]
		}
	}
	return nil
}
