package validation

import (
	"regexp"
	"sort"
	"strings"
)

// Rule is one tagged pattern in a classification table. Tables are scanned
// in ascending Priority; the first matching rule decides.
type Rule struct {
	Tag      ErrorType
	Specific string
	Matcher  *regexp.Regexp
	Priority int
}

func rule(tag ErrorType, specific string, priority int, expr string) Rule {
	return Rule{
		Tag:      tag,
		Specific: specific,
		Matcher:  regexp.MustCompile(`(?i)` + expr),
		Priority: priority,
	}
}

func ordered(rules ...Rule) []Rule {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
	return rules
}

func firstMatch(rules []Rule, text string) (Rule, bool) {
	for _, r := range rules {
		if r.Matcher.MatchString(text) {
			return r, true
		}
	}
	return Rule{}, false
}

var greetingRe = regexp.MustCompile(`(?i)^(?:hi|hello|hey|hiya|greetings|good (?:morning|afternoon|evening)|sup|yo|howdy)(?: there)?[\s!.?]*$`)

var manipulationRules = ordered(
	rule(Manipulation, "instruction_override", 10, `\bignore (?:all |any |the |your )?(?:previous|prior|above|earlier|instructions|rules)\b`),
	rule(Manipulation, "instruction_override", 11, `\bignore all\b`),
	rule(Manipulation, "instruction_override", 12, `\bforget (?:everything|all|your (?:instructions|rules|prompt))\b`),
	rule(Manipulation, "instruction_override", 13, `\bdisregard\b.{0,20}\b(?:instructions?|rules?|prompt)\b`),
	rule(Manipulation, "instruction_override", 14, `\b(?:new|updated) instructions\b`),
	rule(Manipulation, "prompt_extraction", 20, `\bsystem prompt\b`),
	rule(Manipulation, "prompt_extraction", 21, `\breveal (?:your|the) (?:instructions|prompt|rules)\b`),
	rule(Manipulation, "role_play", 30, `\bact (?:as|like)\b`),
	rule(Manipulation, "role_play", 31, `\bpretend\b`),
	rule(Manipulation, "role_play", 32, `\brole-?play\b`),
	rule(Manipulation, "role_play", 33, `\byou are now\b`),
	rule(Manipulation, "jailbreak", 40, `\bjailbreak\b`),
	rule(Manipulation, "jailbreak", 41, `\b(?:developer|dan) mode\b`),
	rule(Manipulation, "jailbreak", 42, `\b(?:bypass|override)\b`),
)

var rejectionRules = ordered(
	rule(Inappropriate, "harmful", 10, `\b(?:hack(?:ing)? into|hack|illegal|cheat(?:ing)?|steal(?:ing)?|pirat(?:e|ed|ing)|crack(?:ed|ing)? (?:software|passwords?|accounts?))\b`),
	rule(Inappropriate, "explicit", 11, `\b(?:nsfw|porn\w*|nudes?|sexy|sex|drugs?)\b`),

	rule(Personal, "relationships", 20, `\b(?:girlfriend|boyfriend|wife|husband|dating|crush|relationship status|are you (?:single|married))\b`),
	rule(Personal, "family", 21, `\b(?:family|parents|siblings?|father|mother|brother|sister)\b`),
	rule(Personal, "contact_details", 22, `\b(?:home address|where do you live|phone number|bank account|credit card|password|ssn|social security)\b`),
	rule(Personal, "identity", 23, `\b(?:how old are you|your age|religion|religious|your weight|your height)\b`),

	rule(TechPreferences, "editor_wars", 30, `\b(?:tabs (?:vs\.?|or|versus) spaces|spaces (?:vs\.?|or|versus) tabs|vim (?:vs\.?|or|versus) emacs|emacs (?:vs\.?|or|versus) vim)\b`),
	rule(TechPreferences, "platform_wars", 31, `\b(?:mac|macos|windows|linux|iphone|android) (?:vs\.?|or|versus) (?:mac|macos|windows|linux|iphone|android)\b`),
	rule(TechPreferences, "theme", 32, `\b(?:dark (?:mode|theme) (?:vs\.?|or|versus) light|favou?rite (?:ide|editor|theme|font|keyboard|browser|operating system|os))\b`),
	rule(TechPreferences, "best_language", 33, `\b(?:which|what) is the best (?:programming )?language\b|\b(?:is|are) \w+ better than \w+\b`),

	// Media rules target consumption and taste phrasing only; "movie app"
	// or "music player project" are portfolio questions.
	rule(Entertainment, "media", 40, `\b(?:watch(?:ing)? (?:movies?|films?|tv|shows?|netflix|anime)|listen(?:ing)? to (?:music|songs?|podcasts?)|play(?:ing)? video games|celebrit(?:y|ies)|gossip)\b`),
	rule(Entertainment, "media", 43, `\bwhat (?:kind of |type of )?(?:movies?|films?|music|songs?|bands?|shows?|anime|games?) do you (?:like|watch|listen to|play|enjoy)\b`),
	rule(Entertainment, "media", 44, `\b(?:recommend|suggest)(?: me)? (?:a |some )?(?:good )?(?:movies?|films?|shows?|songs?|music|anime|games?)\b`),
	rule(Entertainment, "favourites", 41, `\bfavou?rite (?:game|movie|show|band|song|artist|food|colou?r)\b`),
	rule(Entertainment, "creative_request", 42, `\b(?:jokes?|poems?|riddles?|bedtime story|rap)\b`),

	rule(Unrelated, "small_talk", 50, `\b(?:weather|horoscope|zodiac|lottery|capital of|translate)\b`),
	rule(Unrelated, "sports", 51, `\b(?:sports? scores?|football|basketball|soccer|nba)\b`),
	rule(Unrelated, "politics", 52, `\b(?:politics|political|elections?)\b`),
	rule(Unrelated, "cooking", 53, `\b(?:recipes?|cooking)\b`),
	rule(Unrelated, "advice", 54, `\b(?:medical advice|diagnos(?:e|is)|symptoms?|legal advice|lawyer|lawsuit|financial advice|invest(?:ment|ing)?|stocks?|crypto(?:currency)?|bitcoin)\b`),
)

var knowledgeGapRules = ordered(
	rule(KnowledgeGap, "timeline", 10, `\bhow long did (?:it|that|this|you|the [a-z0-9 -]{1,40}?) take\b`),
	rule(KnowledgeGap, "timeline", 11, `\bhow (?:many|much) (?:hours|days|weeks|months|time) did\b`),
	rule(KnowledgeGap, "timeline", 12, `\b(?:exact (?:timeline|duration|dates?)|when exactly did)\b`),
	rule(KnowledgeGap, "metrics", 20, `\bhow many (?:users|visitors|visits|downloads|customers|clients|stars|page ?views)\b`),
	rule(KnowledgeGap, "metrics", 21, `\b(?:traffic|revenue|conversion rate|daily active users|monthly active users|dau|mau|user (?:count|numbers|metrics))\b`),
	rule(KnowledgeGap, "private_data", 30, `\b(?:current salary|how much (?:do|did) you (?:make|earn)|your income|net worth|bank balance|gpa)\b`),
	rule(KnowledgeGap, "too_vague", 40, `^(?:tell me |say )?(?:everything|anything|something|stuff)[\s.?!]*$`),
	rule(KnowledgeGap, "too_vague", 41, `\b(?:tell me everything|everything (?:you know|about (?:you|yourself)))\b`),
)

// professional vocabulary per semantic category
var professionalKeywords = map[string][]string{
	"technical": {
		"programming", "code", "coding", "development", "developer", "software", "web", "apps", "app",
		"applications", "application", "frontend", "backend", "fullstack", "full-stack", "databases",
		"database", "apis", "api", "frameworks", "framework", "library", "javascript", "typescript",
		"python", "java", "react", "next.js", "nextjs", "nodejs", "node", "github", "git", "vercel",
		"deployment", "deploy", "testing", "debugging", "debug", "oauth", "prisma", "postgresql", "groq",
		"upstash", "vector", "rag", "ai", "ml", "tailwind", "framer", "laravel", "php", "mysql",
		"tech stack", "stack", "languages", "language", "technologies", "technology", "tools",
	},
	"skills": {
		"skills", "skill", "knowledge", "proficiency", "expertise", "ability", "familiar", "experienced",
		"proficient", "advanced", "beginner", "intermediate", "learning", "learn", "strengths", "strength",
		"weaknesses", "weakness",
	},
	"projects": {
		"projects", "project", "portfolio", "built", "build", "created", "create", "developed", "develop",
		"deployed", "achievements", "achievement", "awards", "award", "competitions", "competition",
		"contest", "certificates", "certificate", "accomplishments", "accomplishment",
	},
	"career": {
		"work", "experience", "internship", "ojt", "job", "role", "position", "responsibilities",
		"responsibility", "interview", "hire", "hiring", "salary", "compensation", "remote", "location",
		"career", "goals", "goal", "ambition", "future", "plans", "plan", "challenges", "challenge",
		"team", "background",
	},
	"education": {
		"education", "university", "college", "degree", "graduate", "student", "studying", "study",
		"coursework", "course", "school",
	},
}

var (
	questionWordsRe = regexp.MustCompile(`(?i)\b(?:what|why|how|when|where|who|which|can|could|do|does|did|are|is|have|has|would|will)\b`)
	inquiryWordsRe  = regexp.MustCompile(`(?i)\b(?:tell|describe|explain|share|walk me through|about|yourself|introduce|overview)\b`)

	professionalRes = compileKeywordTables(professionalKeywords)
)

func compileKeywordTables(tables map[string][]string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(tables))
	for category, words := range tables {
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		out[category] = regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	}
	return out
}
