package persona

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const genzPassScore = 35

var genzSlang = []string{
	"bet", "no cap", "cap", "fr", "ngl", "tbh", "lowkey", "highkey", "bruh", "bro", "dude",
	"valid", "idk", "say less", "literally", "wild", "crazy",
	"it's giving", "ate", "delulu", "npc", "main character", "rizz", "touch grass",
	"iykyk", "smh", "mid", "sus", "vibe", "fire", "goated",
	"slaps", "goes hard", "built different", "real", "fax", "on god", "deadass",
	"w", "l", "ratio", "based", "cringe", "cope", "seethe", "mald",
}

var casualStarters = []string{"yo", "aight", "so like", "okay so", "real talk", "ngl", "tbh", "bruh", "hey"}

var professionalBlacklist = []string{"yo", "ngl", "fr fr", "bussin", "ate", "deadass", "lowkey", "highkey"}

var (
	genzSlangRes             = termPatterns(genzSlang)
	professionalBlacklistRes = termPatterns(professionalBlacklist)
	lowkeyRe                 = regexp.MustCompile(`lowkey`)
	contractionRe            = regexp.MustCompile(`\w+'\w+`)
)

// Terms match on word boundaries so "yo" does not fire on "you" and
// "ate" does not fire on "create".
func termPatterns(terms []string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(terms))
	for _, t := range terms {
		out[t] = regexp.MustCompile(`\b` + regexp.QuoteMeta(t) + `\b`)
	}
	return out
}

type MoodDetails struct {
	HasSlang       bool     `json:"has_slang"`
	HasEmoji       bool     `json:"has_emoji"`
	HasCasualStart bool     `json:"has_casual_start"`
	SlangCount     int      `json:"slang_count"`
	EmojiCount     int      `json:"emoji_count"`
	Warnings       []string `json:"warnings,omitempty"`
}

// MoodResult is advisory; it never gates a response.
type MoodResult struct {
	Compliant bool        `json:"compliant"`
	Score     int         `json:"score"`
	Reason    string      `json:"reason,omitempty"`
	Details   MoodDetails `json:"details"`
}

// ValidateMood scores how well response matches the requested mood.
func ValidateMood(response string, mood Mood) MoodResult {
	if mood == GenZ {
		return validateGenZ(response)
	}
	return validateProfessional(response)
}

func validateGenZ(response string) MoodResult {
	lower := strings.ToLower(response)
	d := MoodDetails{}

	for _, re := range genzSlangRes {
		if re.MatchString(lower) {
			d.SlangCount++
		}
	}
	d.HasSlang = d.SlangCount > 0

	if n := len(lowkeyRe.FindAllStringIndex(lower, -1)); n > 2 {
		d.Warnings = append(d.Warnings, fmt.Sprintf("Overusing \"lowkey\" (%d times) - need variety", n))
	}

	d.EmojiCount = CountEmoji(response)
	d.HasEmoji = d.EmojiCount > 0
	d.HasCasualStart = hasCasualStart(lower)

	score := 0
	if d.HasSlang {
		score += min(50, d.SlangCount*20)
	}
	if d.HasEmoji {
		score += min(30, d.EmojiCount*15)
	}
	if d.HasCasualStart {
		score += 20
	}
	if lowercaseRatio(response, 30) > 0.6 {
		score += 15
	}
	if contractionRe.MatchString(response) {
		score += 10
	}
	score = min(score, 100)

	if score < genzPassScore {
		reason := "Response needs more casual energy"
		if !d.HasSlang && !d.HasEmoji {
			reason = "Missing GenZ vibe - needs slang, emojis, or casual style"
		}
		return MoodResult{Compliant: false, Score: score, Reason: reason, Details: d}
	}

	return MoodResult{
		Compliant: true,
		Score:     score,
		Reason:    strings.Join(d.Warnings, "; "),
		Details:   d,
	}
}

func validateProfessional(response string) MoodResult {
	lower := strings.ToLower(response)
	d := MoodDetails{EmojiCount: CountEmoji(response)}
	d.HasEmoji = d.EmojiCount > 0

	var casual []string
	for _, term := range professionalBlacklist {
		if professionalBlacklistRes[term].MatchString(lower) {
			casual = append(casual, term)
		}
	}
	if len(casual) > 0 {
		d.Warnings = append(d.Warnings, "Too casual for professional mode: "+strings.Join(casual, ", "))
		return MoodResult{
			Compliant: false,
			Score:     30,
			Reason:    "Response too casual for professional mode",
			Details:   d,
		}
	}

	if d.EmojiCount > 3 {
		d.Warnings = append(d.Warnings, fmt.Sprintf("Too many emojis (%d) for professional mode", d.EmojiCount))
		return MoodResult{
			Compliant: true,
			Score:     85,
			Reason:    strings.Join(d.Warnings, "; "),
			Details:   d,
		}
	}

	return MoodResult{Compliant: true, Score: 100, Details: d}
}

var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x26FF, Stride: 1},
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F191, Hi: 0x1F251, Stride: 1}, // includes regional indicators
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1},
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
	},
}

// CountEmoji counts runes in the common emoji blocks.
func CountEmoji(s string) int {
	n := 0
	for _, r := range s {
		if unicode.Is(emojiRanges, r) {
			n++
		}
	}
	return n
}

func hasCasualStart(lower string) bool {
	for _, starter := range casualStarters {
		if !strings.HasPrefix(lower, starter) {
			continue
		}
		rest := lower[len(starter):]
		if rest == "" {
			return true
		}
		r := []rune(rest)[0]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// lowercaseRatio looks at the first n runes and ignores whitespace.
func lowercaseRatio(s string, n int) float64 {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}

	total, lower := 0, 0
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.ToLower(r) == r {
			lower++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(lower) / float64(total)
}
