package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRelevance(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		context    string
		score      float64
		relevant   bool
		confidence float64
	}{
		{"low score always irrelevant", "what are your skills", "Go, TypeScript, PostgreSQL", 0.55, false, 0.9},
		{"timeline without duration", "how long did the project take", "Built a portfolio site with Next.js and Tailwind.", 0.79, false, 0.8},
		{"timeline with duration", "how long did the project take", "The MVP took 3 weeks to ship.", 0.79, true, 0.79},
		{"timeline with spent", "what was the timeline", "I spent most of the summer on it.", 0.8, true, 0.8},
		{"metrics without numbers", "how many users does it have", "A chat assistant for recruiters.", 0.9, false, 0.8},
		{"metrics with count", "how many users does it have", "Served 1200 users in the first month.", 0.9, true, 0.85},
		{"metrics with percentage", "what are the stats", "Cut load time by 40% after caching.", 0.7, true, 0.7},
		{"plain question", "what frameworks do you use", "React, Next.js, Fiber", 0.95, true, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRelevance(tt.query, tt.context, tt.score)

			assert.Equal(t, tt.relevant, got.IsRelevant)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestBuildContextPrompt(t *testing.T) {
	assert.Equal(t, "", BuildContextPrompt(Context{}))

	ctx := buildContextForTest()
	got := BuildContextPrompt(ctx)

	assert.True(t, strings.HasPrefix(got, "\n\n=== RELEVANT CONTEXT (2 chunks, avg relevance: 80.0%) ===\n"))
	assert.Contains(t, got, "[Skills] (technical) [Relevance: 82.0%]\nGo and TypeScript")
	assert.Contains(t, got, "\n\n---\n\n[Information] [Relevance: 78.0%]\nFreelance work")
	assert.Contains(t, got, "=== END CONTEXT ===")
	assert.Contains(t, got, "USE THIS CONTEXT")
}

func TestContextText_UsesRawContent(t *testing.T) {
	ctx := buildContextForTest()

	assert.Equal(t, "Go and TypeScript\n\nFreelance work", ctx.Text())
	assert.NotContains(t, ctx.Text(), "Relevance")
}

func buildContextForTest() Context {
	return Context{
		Chunks: []Chunk{
			{ID: "1", Title: "Skills", Category: "technical", Content: "Go and TypeScript", Score: 0.82},
			{ID: "2", Content: "Freelance work", Score: 0.78},
		},
		AverageScore: 0.80,
		TopScore:     0.82,
		ChunksUsed:   2,
		Categories:   []string{"technical"},
	}
}
