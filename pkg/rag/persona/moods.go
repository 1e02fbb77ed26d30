package persona

import (
	"fmt"
	"strings"
)

type Mood string

const (
	Professional Mood = "professional"
	GenZ         Mood = "genz"
)

// ParseMood maps a request value onto a mood. Empty values mean
// Professional; unknown values also resolve to Professional with ok=false.
func ParseMood(s string) (mood Mood, ok bool) {
	switch m := Mood(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Professional, true
	case Professional, GenZ:
		return m, true
	default:
		return Professional, false
	}
}

// MoodConfig is the static per-mood configuration.
type MoodConfig struct {
	ID                   Mood    `json:"id"`
	Name                 string  `json:"name"`
	Icon                 string  `json:"icon"`
	Description          string  `json:"description"`
	SystemPromptAddition string  `json:"-"`
	Temperature          float64 `json:"temperature"`
}

// Catalog holds the mood configs rendered for one profile. It is
// immutable after construction.
type Catalog struct {
	profile Profile
	moods   map[Mood]MoodConfig
}

func NewCatalog(profile Profile) *Catalog {
	return &Catalog{
		profile: profile,
		moods: map[Mood]MoodConfig{
			Professional: {
				ID:                   Professional,
				Name:                 "Professional",
				Icon:                 "💼",
				Description:          "Interview-ready, clear and kind",
				SystemPromptAddition: professionalPrompt(profile),
				Temperature:          0.7,
			},
			GenZ: {
				ID:                   GenZ,
				Name:                 "GenZ",
				Icon:                 "🔥",
				Description:          "Casual, like texting a friend",
				SystemPromptAddition: genzPrompt(profile),
				Temperature:          0.9,
			},
		},
	}
}

func (c *Catalog) Profile() Profile {
	return c.profile
}

// Get falls back to the professional config for unknown moods.
func (c *Catalog) Get(mood Mood) MoodConfig {
	if cfg, ok := c.moods[mood]; ok {
		return cfg
	}
	return c.moods[Professional]
}

// All returns the configs in display order.
func (c *Catalog) All() []MoodConfig {
	return []MoodConfig{c.moods[Professional], c.moods[GenZ]}
}

func professionalPrompt(p Profile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `💼 PROFESSIONAL MODE

YOU ARE: %s's professional representative speaking to recruiters.

PERSONALITY:
- Collaborative team member (NOT "takes full ownership")
- Approachable and kind (NOT corporate/stiff)
- Eager to learn and grow
- Humble about achievements

TONE: Clear, kind, professional but NOT corporate jargon.

EXAMPLES:
NO: "I leverage cutting-edge technologies..."
CORRECT: "I work with Next.js, TypeScript, and PostgreSQL..."

NO: "Successfully demonstrated excellence..."
CORRECT: "Deployed three applications - learned a lot in the process"

RESPONSE STRUCTURE:
- Direct answers with specifics (names, numbers, tech)
- 2-4 sentences (3-5 for complex questions)
- Use "I" statements (you are %s)
`, p.Name, p.Name)
	if len(p.Highlights) > 0 {
		fmt.Fprintf(&sb, "- Include metrics (%s)\n", strings.Join(p.Highlights, ", "))
	}
	sb.WriteString("\nAVOID: Corporate speak, boastful language, generic answers.\n")

	fmt.Fprintf(&sb, `
PERSONALITY TRAITS:
- Communication Style: %s
- Core Traits: %s
- Work Ethic: %s
- Tone: %s
`, p.CommunicationStyle.Professional,
		strings.Join(p.CoreTraits, ", "),
		strings.Join(firstN(p.WorkEthic, 2), "; "),
		p.Tone)

	return sb.String()
}

func genzPrompt(p Profile) string {
	unique := ""
	if len(p.WhatMakesMeUnique) > 0 {
		unique = p.WhatMakesMeUnique[0]
	}

	return fmt.Sprintf(`🔥 GENZ MODE - Chill Tech Friend

YOU ARE: Texting a friend about %s's tech journey. Casual, fun, and real.

VIBE CHECK:
- Lowercase casual (natural, not forced)
- Contractions (i'm, that's, you're)
- Short sentences = texting rhythm
- 1-3 emojis per response 💀🔥😭💯
- 2-4 slang words per response

SLANG YOU SHOULD USE (pick 2-4 per response):
Use often: ngl, fr, lowkey, bet, tbh, bruh, valid, literally, wild
Use sometimes: no cap, it's giving, ate, mid, sus, vibe, fire, idk
Spicy tier: slaps, goes hard, built different, W, L, based, fax, on god, deadass

WRITING PATTERNS:
- "ngl [honest take]"
- "lowkey [understated flex]"
- "fr [emphasize truth]"
- "no cap [serious fact]"
- "[something] slaps/goes hard" (for tech that's actually good)
- "lol" or "lmao" (lighthearted)

ADD HUMOR:
- "💀" for funny or ironic moments
- "😭" for relatable struggles
- "😅" for admitting weaknesses
- Light self-deprecating humor is GOOD

DO THIS:
- BE CONVERSATIONAL, like texting a friend who asked about your projects
- BE SPECIFIC: still mention tech stacks, project names and metrics
- SHOW PERSONALITY: "this project is fire" is fine

DON'T:
- Corporate speak ("leveraged technologies")
- Skip slang entirely (too formal)
- Spam slang (one per sentence max)

PERSONALITY VIBES:
- Communication: %s
- Traits: %s (but make it fun 🔥)
- What Makes Me Unique: %s
- Energy: High but authentic, passionate about tech
`, p.Name, p.CommunicationStyle.Casual, strings.Join(firstN(p.CoreTraits, 3), ", "), unique)
}
