package prompt

import (
	"strings"
	"testing"

	"digital-twin-be/pkg/rag/faq"
	"digital-twin-be/pkg/rag/feedback"
	"digital-twin-be/pkg/rag/persona"
	"digital-twin-be/pkg/rag/search"
	"digital-twin-be/pkg/rag/session"

	"github.com/stretchr/testify/assert"
)

func TestSystemBuilder_MinimalPrompt(t *testing.T) {
	catalog := persona.NewCatalog(persona.DefaultProfile())

	got := NewSystemBuilder(Inputs{
		Mood:        catalog.Get(persona.Professional),
		OwnerName:   "Ada",
		Preferences: feedback.NewPreferences(),
	}).Build()

	assert.True(t, strings.HasPrefix(got, catalog.Get(persona.Professional).SystemPromptAddition))
	assert.Contains(t, got, "You speak as Ada")
	assert.Contains(t, got, persona.LengthInstruction)
	assert.NotContains(t, got, "RELEVANT CONTEXT")
	assert.NotContains(t, got, "CONVERSATION HISTORY")
	assert.NotContains(t, got, "ADAPTIVE FEEDBACK")
	assert.NotContains(t, got, "FOCUS AREAS")
}

func TestSystemBuilder_SectionOrder(t *testing.T) {
	catalog := persona.NewCatalog(persona.DefaultProfile())
	prefs := feedback.Apply(feedback.NewPreferences(), *feedback.Detect("make it shorter"))

	got := NewSystemBuilder(Inputs{
		Mood:        catalog.Get(persona.GenZ),
		Hints:       []faq.Pattern{{Category: "projects", ContextHint: "Deployed apps"}},
		Preferences: prefs,
		Context: search.Context{
			Chunks:       []search.Chunk{{Title: "Planner", Content: "Built with Next.js", Score: 0.9}},
			AverageScore: 0.9,
			TopScore:     0.9,
			ChunksUsed:   1,
		},
		History: []session.Message{
			{Role: session.RoleUser, Content: "tell me about your projects"},
			{Role: session.RoleAssistant, Content: "I built a planner."},
		},
	}).Build()

	order := []string{"GENZ MODE", "GUIDELINES", "LENGTH:", "FOCUS AREAS", "ADAPTIVE FEEDBACK", "RELEVANT CONTEXT", "CONVERSATION HISTORY"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(got, marker)
		assert.Greater(t, idx, last, marker)
		last = idx
	}
	assert.Contains(t, got, "User: tell me about your projects")
	assert.Contains(t, got, "the portfolio owner")
}
