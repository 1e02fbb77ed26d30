package validation

import (
	"strings"
	"unicode/utf8"
)

// ErrorType classifies why a query was rejected.
type ErrorType string

const (
	Unrelated       ErrorType = "unrelated"
	Manipulation    ErrorType = "manipulation"
	TooShort        ErrorType = "too_short"
	TechPreferences ErrorType = "tech_preferences"
	Entertainment   ErrorType = "entertainment"
	Personal        ErrorType = "personal"
	Inappropriate   ErrorType = "inappropriate"
	KnowledgeGap    ErrorType = "knowledge_gap"
)

// Accepted query categories.
const (
	CategoryGreeting        = "greeting"
	CategorySuggested       = "suggested"
	CategoryFeedback        = "feedback"
	CategoryTechnicalSkills = "technical_skills"
	CategoryProjects        = "projects"
	CategoryEducation       = "education"
	CategoryExperience      = "experience"
	CategoryAchievements    = "achievements"
	CategoryGeneral         = "general"
)

// Calibrated confidences for each decision path.
const (
	confidenceCertain      = 1.0
	confidenceManipulation = 0.98
	confidenceRejection    = 0.95
	confidenceKnowledgeGap = 0.85
	confidenceUnrelated    = 0.8
	acceptThreshold        = 0.65
)

// Result is the verdict for one query. ErrorType is empty whenever IsValid is true.
type Result struct {
	IsValid      bool      `json:"is_valid"`
	Confidence   float64   `json:"confidence"`
	Category     string    `json:"category,omitempty"`
	ErrorType    ErrorType `json:"error_type,omitempty"`
	SpecificType string    `json:"specific_type,omitempty"`
}

// DefaultSuggestedQuestions are the prompts offered by the chat widget.
var DefaultSuggestedQuestions = []string{
	"Tell me about yourself",
	"What are your technical skills?",
	"What projects have you built?",
	"What's your educational background?",
	"What are your career goals?",
	"What are your biggest achievements?",
	"Why should we hire you?",
	"What programming languages do you know?",
	"Tell me about your work experience",
	"What is your tech stack?",
}

// Validator decides whether a query is in scope for the portfolio assistant.
type Validator struct {
	suggested map[string]struct{}
}

// NewValidator builds a validator whose whitelist is the given suggested
// questions, or DefaultSuggestedQuestions when none are given.
func NewValidator(suggested ...string) *Validator {
	if len(suggested) == 0 {
		suggested = DefaultSuggestedQuestions
	}
	set := make(map[string]struct{}, len(suggested))
	for _, q := range suggested {
		set[whitelistKey(q)] = struct{}{}
	}
	return &Validator{suggested: set}
}

// Validate classifies query. The first matching check wins:
// too short, suggested question, greeting, manipulation, rejection
// categories, knowledge gaps, then professional relevance scoring.
func (v *Validator) Validate(query string) Result {
	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < 2 {
		return reject(TooShort, "", confidenceCertain)
	}
	if !utf8.ValidString(trimmed) {
		return reject(Unrelated, "unreadable", confidenceUnrelated)
	}

	if _, ok := v.suggested[whitelistKey(trimmed)]; ok {
		return accept(CategorySuggested, confidenceCertain)
	}

	if greetingRe.MatchString(trimmed) {
		return accept(CategoryGreeting, confidenceCertain)
	}

	if r, ok := firstMatch(manipulationRules, trimmed); ok {
		return reject(r.Tag, r.Specific, confidenceManipulation)
	}

	if r, ok := firstMatch(rejectionRules, trimmed); ok {
		return reject(r.Tag, r.Specific, confidenceRejection)
	}

	if r, ok := firstMatch(knowledgeGapRules, trimmed); ok {
		return reject(r.Tag, r.Specific, confidenceKnowledgeGap)
	}

	confidence := professionalConfidence(trimmed)
	if confidence >= acceptThreshold {
		return accept(categorize(strings.ToLower(trimmed)), confidence)
	}
	return reject(Unrelated, "off_topic", confidenceUnrelated)
}

// ProfessionalMatches counts distinct professional keywords in text.
func ProfessionalMatches(text string) int {
	seen := make(map[string]struct{})
	for _, re := range professionalRes {
		for _, m := range re.FindAllString(text, -1) {
			seen[strings.ToLower(m)] = struct{}{}
		}
	}
	return len(seen)
}

func professionalConfidence(text string) float64 {
	matches := ProfessionalMatches(text)
	switch {
	case matches >= 3:
		return 0.95
	case matches >= 2:
		return 0.85
	case matches >= 1:
		return 0.75
	case questionWordsRe.MatchString(text) || inquiryWordsRe.MatchString(text):
		return 0.65
	default:
		return 0.5
	}
}

func categorize(lower string) string {
	switch {
	case containsAny(lower, "skill", "programming", "language"):
		return CategoryTechnicalSkills
	case containsAny(lower, "project", "built", "portfolio"):
		return CategoryProjects
	case containsAny(lower, "education", "university"):
		return CategoryEducation
	case containsAny(lower, "experience", "work"):
		return CategoryExperience
	case containsAny(lower, "achievement", "competition"):
		return CategoryAchievements
	default:
		return CategoryGeneral
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func whitelistKey(q string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(q)), "?!. ")
}

func accept(category string, confidence float64) Result {
	return Result{IsValid: true, Confidence: confidence, Category: category}
}

func reject(t ErrorType, specific string, confidence float64) Result {
	return Result{IsValid: false, Confidence: confidence, ErrorType: t, SpecificType: specific}
}
