package persona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMood(t *testing.T) {
	tests := []struct {
		in   string
		want Mood
		ok   bool
	}{
		{"", Professional, true},
		{"professional", Professional, true},
		{" GenZ ", GenZ, true},
		{"pirate", Professional, false},
	}
	for _, tt := range tests {
		got, ok := ParseMood(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestCatalog(t *testing.T) {
	profile := DefaultProfile()
	profile.Name = "Ada"
	c := NewCatalog(profile)

	assert.InDelta(t, 0.7, c.Get(Professional).Temperature, 1e-9)
	assert.InDelta(t, 0.9, c.Get(GenZ).Temperature, 1e-9)
	assert.Equal(t, Professional, c.Get("unknown").ID)
	assert.Equal(t, "💼", c.Get(Professional).Icon)
	assert.Equal(t, "🔥", c.Get(GenZ).Icon)

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, Professional, all[0].ID)
	assert.Equal(t, GenZ, all[1].ID)

	assert.Contains(t, c.Get(Professional).SystemPromptAddition, "YOU ARE: Ada's professional representative")
	assert.Contains(t, c.Get(Professional).SystemPromptAddition, "4th/118 teams")
	assert.Contains(t, c.Get(GenZ).SystemPromptAddition, "Ada's tech journey")
}

func TestLoadProfile(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile().Name, p.Name)

	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"Ada","highlights":["1st place"]}`), 0o644))

	p, err = LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, []string{"1st place"}, p.Highlights)
	assert.Equal(t, DefaultProfile().CoreTraits, p.CoreTraits)

	_, err = LoadProfile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestResponder(t *testing.T) {
	profile := DefaultProfile()
	profile.Name = "Ada"
	r := NewResponder(profile, func(n int) int { return 2 })

	assert.Equal(t, "I maintain professional standards. Please ask about Ada's development experience, technical skills, or career goals.",
		r.Response(KindManipulation, Professional))
	assert.Equal(t, "Lol that's outta pocket 😭 Let's talk about my portfolio tho - what you wanna know?",
		r.Response(KindManipulation, GenZ))
	assert.Equal(t, "yo slow down 😭 gimme a sec to catch up, then ask again", r.Response(KindRateLimit, GenZ))
	assert.Equal(t, r.Response(KindUnrelated, Professional), r.Response("bogus", Professional))

	kinds := []Kind{
		KindNoContext, KindUnrelated, KindTechPreferences, KindEntertainment, KindPersonal,
		KindInappropriate, KindManipulation, KindRateLimit, KindError, KindTooShort, KindKnowledgeGap,
	}
	for _, k := range kinds {
		assert.NotEmpty(t, r.Response(k, Professional), k)
		assert.NotEmpty(t, r.Response(k, GenZ), k)
		assert.NotContains(t, r.Response(k, Professional), "{name}", k)
	}
}

func TestResponder_GenZManipulationVariants(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		idx := i
		r := NewResponder(DefaultProfile(), func(n int) int { return idx % n })
		seen[r.Response(KindManipulation, GenZ)] = true
	}
	assert.Len(t, seen, 4)
}

func TestSmartFallback(t *testing.T) {
	r := NewResponder(DefaultProfile(), nil)

	assert.Equal(t, r.Response(KindKnowledgeGap, Professional), r.SmartFallback("How long did it take?", Professional))
	assert.Equal(t, r.Response(KindKnowledgeGap, GenZ), r.SmartFallback("what's your salary", GenZ))
	assert.Equal(t, r.Response(KindNoContext, Professional), r.SmartFallback("tell me about your robotics work", Professional))
}

func TestValidateMood_GenZ(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		compliant bool
		score     int
		warnings  int
	}{
		{"full vibe capped", "ngl this project slaps fr 🔥💀", true, 100, 0},
		{"formal text", "I have built several applications using React and Node.", false, 15, 0},
		{"lowkey overuse", "lowkey this is lowkey fire, lowkey", true, 55, 1},
		{"you is not yo", "you're right", false, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateMood(tt.response, GenZ)

			assert.Equal(t, tt.compliant, got.Compliant)
			assert.Equal(t, tt.score, got.Score)
			assert.Len(t, got.Details.Warnings, tt.warnings)
		})
	}
}

func TestValidateMood_Professional(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		compliant bool
		score     int
	}{
		{"clean", "I created three apps using Go.", true, 100},
		{"slang", "ngl, I built it.", false, 30},
		{"too many emoji warns only", "Great work 🚀🔥💯✨", true, 85},
		{"one emoji", "Thanks! 😊", true, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateMood(tt.response, Professional)

			assert.Equal(t, tt.compliant, got.Compliant)
			assert.Equal(t, tt.score, got.Score)
		})
	}
}

func TestLengthHelpers(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
	assert.Equal(t, 3, CountWords("  a b \n c "))

	assert.False(t, CheckLength("short answer").NeedsAttention)

	manyWords := strings.Repeat("word ", 101)
	got := CheckLength(manyWords)
	assert.True(t, got.NeedsAttention)
	assert.Equal(t, 101, got.WordCount)
	assert.Contains(t, got.Suggestion, "bullet points")

	longWords := strings.Repeat(strings.Repeat("x", 40)+" ", 60)
	got = CheckLength(longWords)
	assert.True(t, got.NeedsAttention)
	assert.Contains(t, got.Suggestion, "concise")
}

func TestAddFollowUp(t *testing.T) {
	short := "I built a chat app."
	assert.Equal(t, short, AddFollowUp(short))

	long := "I built " + strings.Repeat("things ", 40)
	assert.True(t, strings.HasSuffix(AddFollowUp(long), "technical implementation choices.*"))

	neutral := strings.Repeat("hello ", 45)
	assert.Equal(t, neutral, AddFollowUp(neutral))
}
