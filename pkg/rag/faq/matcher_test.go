package faq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questions(patterns []Pattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.Question
	}
	return out
}

func TestMatch_BestPatternFirst(t *testing.T) {
	m := NewMatcher(nil)

	got := m.Match("what programming languages do you know", 2)

	require.Len(t, got, 1)
	assert.Equal(t, "What programming languages do you know?", got[0].Question)
	assert.Equal(t, "technical", got[0].Category)
}

func TestMatch_TopKTruncation(t *testing.T) {
	m := NewMatcher(nil)
	query := "tell me about your projects and achievements"

	assert.Equal(t, []string{
		"What are your biggest achievements?",
		"Tell me about your projects",
	}, questions(m.Match(query, 2)))

	// non-positive topK uses the default of 2
	assert.Len(t, m.Match(query, 0), DefaultTopK)

	assert.Equal(t, []string{
		"What are your biggest achievements?",
		"Tell me about your projects",
		"Tell me about yourself",
	}, questions(m.Match(query, 5)))
}

func TestMatch_ScoreFloor(t *testing.T) {
	m := NewMatcher(nil)

	// a single keyword on a 0.8 boost pattern clears the floor
	assert.Equal(t, []string{"What development tools do you use?"}, questions(m.Match("explain your workflow", 3)))

	// a lone overlapping word does not
	assert.Empty(t, m.Match("what is your favourite challenging hobby", 3))
	assert.Empty(t, m.Match("", 3))
}

func TestMatch_CustomCatalog(t *testing.T) {
	m := NewMatcher([]Pattern{
		{Category: "a", Question: "Alpha question", Keywords: []string{"alpha"}, ContextHint: "alpha", RelevanceBoost: 1},
		{Category: "b", Question: "Beta question", Keywords: []string{"beta"}, ContextHint: "beta", RelevanceBoost: 0.4},
	})

	got := m.Match("alpha and beta", 2)

	// alpha: (0.4+0.2)*1 = 0.6, beta: (0.4+0.2)*0.4 = 0.24 (below floor)
	assert.Equal(t, []string{"Alpha question"}, questions(got))
}

func TestDefaultCatalog_IsCopy(t *testing.T) {
	c := DefaultCatalog()
	c[0].Question = "mutated"

	assert.NotEqual(t, "mutated", DefaultCatalog()[0].Question)
	for _, p := range DefaultCatalog() {
		assert.Greater(t, p.RelevanceBoost, 0.0)
		assert.LessOrEqual(t, p.RelevanceBoost, 1.0)
		assert.NotEmpty(t, p.ContextHint)
	}
}

func TestFocusBlock(t *testing.T) {
	assert.Equal(t, "", FocusBlock(nil))

	block := FocusBlock([]Pattern{{Category: "projects", ContextHint: "project names"}})
	assert.Contains(t, block, "FOCUS AREAS")
	assert.Contains(t, block, "- projects: project names\n")
}
