package search

import (
	"context"
	"errors"
	"testing"

	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	matches []vectorstore.Match
	err     error

	gotQuery string
	gotTopK  int
}

func (f *fakeIndex) Search(ctx context.Context, queryText string, topK int, includeMetadata bool) ([]vectorstore.Match, error) {
	f.gotQuery = queryText
	f.gotTopK = topK
	return f.matches, f.err
}

func match(id string, score float64, title, category string) vectorstore.Match {
	return vectorstore.Match{
		ID:    id,
		Score: score,
		Metadata: vectorstore.Metadata{
			Title:    title,
			Content:  "content of " + id,
			Category: category,
		},
	}
}

func newRetriever(idx vectorstore.Index) *Retriever {
	return NewRetriever(idx, logger.NewNopLogger(), DefaultConfig())
}

func TestSearch_KeepsOnlyAboveThreshold(t *testing.T) {
	idx := &fakeIndex{matches: []vectorstore.Match{
		match("langs", 0.82, "Programming Languages", "technical"),
		match("hobby", 0.3, "Hobbies", "personal"),
	}}

	got := newRetriever(idx).Search(context.Background(), "what programming languages do you know")

	require.Len(t, got.Chunks, 1)
	assert.Equal(t, "langs", got.Chunks[0].ID)
	assert.Equal(t, 1, got.ChunksUsed)
	assert.InDelta(t, 0.82, got.AverageScore, 1e-9)
	assert.InDelta(t, 0.82, got.TopScore, 1e-9)
	assert.Equal(t, []string{"technical"}, got.Categories)
	assert.Equal(t, DefaultTopK, idx.gotTopK)
}

func TestSearch_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		scores  []float64
		wantIDs []string
	}{
		{"top two above floor", []float64{0.7, 0.68, 0.66}, []string{"m0", "m1"}},
		{"only first above floor", []float64{0.7, 0.6, 0.5}, []string{"m0"}},
		{"all below floor", []float64{0.64, 0.5, 0.1}, nil},
		{"unsorted input", []float64{0.5, 0.66, 0.7}, []string{"m2", "m1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var matches []vectorstore.Match
			for i, s := range tt.scores {
				matches = append(matches, match("m"+string(rune('0'+i)), s, "", "misc"))
			}

			got := newRetriever(&fakeIndex{matches: matches}).Search(context.Background(), "anything")

			var ids []string
			for _, c := range got.Chunks {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(got.Chunks), got.ChunksUsed)
			if len(tt.wantIDs) == 0 {
				assert.True(t, got.Empty())
				assert.Zero(t, got.AverageScore)
				assert.Zero(t, got.TopScore)
			}
		})
	}
}

func TestSearch_RerankOrdersButThresholdsUseRawScore(t *testing.T) {
	idx := &fakeIndex{matches: []vectorstore.Match{
		match("general", 0.85, "About", "personal"),
		match("proj", 0.80, "Project Alpha", "projects"),
		// boosted to 0.805 but raw score is below the threshold
		match("weak-proj", 0.70, "Project Beta", "projects"),
	}}

	got := newRetriever(idx).Search(context.Background(), "what projects have you built")

	require.Len(t, got.Chunks, 2)
	assert.Equal(t, "proj", got.Chunks[0].ID)
	assert.Equal(t, "general", got.Chunks[1].ID)
	assert.InDelta(t, 0.80, got.Chunks[0].Score, 1e-9)
	assert.InDelta(t, 0.825, got.AverageScore, 1e-9)
	assert.InDelta(t, 0.85, got.TopScore, 1e-9)
	assert.Equal(t, []string{"projects", "personal"}, got.Categories)
}

func TestSearch_IndexErrorDegradesToEmpty(t *testing.T) {
	idx := &fakeIndex{err: errors.New("connection refused")}

	got := newRetriever(idx).Search(context.Background(), "skills")

	assert.True(t, got.Empty())
	assert.Equal(t, 0, got.ChunksUsed)
}

func TestSearchWith_OverridesConfig(t *testing.T) {
	idx := &fakeIndex{matches: []vectorstore.Match{match("a", 0.5, "", "")}}

	got := newRetriever(idx).SearchWith(context.Background(), "q", Config{TopK: 3, MinScore: 0.4})

	assert.Equal(t, 3, idx.gotTopK)
	assert.Len(t, got.Chunks, 1)
}

func TestSearch_CategoriesDeduplicated(t *testing.T) {
	idx := &fakeIndex{matches: []vectorstore.Match{
		match("a", 0.9, "", "technical"),
		match("b", 0.8, "", "technical"),
		match("c", 0.78, "", ""),
	}}

	got := newRetriever(idx).Search(context.Background(), "stack")

	assert.Equal(t, []string{"technical"}, got.Categories)
	assert.Equal(t, 3, got.ChunksUsed)
}

func TestBoost(t *testing.T) {
	tests := []struct {
		name  string
		query string
		m     vectorstore.Match
		want  float64
	}{
		{"technical query on skills title", "technical background", match("x", 0.8, "Skills", "misc"), 0.92},
		{"project query on project category", "apps you built", match("x", 0.8, "", "projects"), 0.92},
		{"education query", "which university", match("x", 0.8, "Education", ""), 0.92},
		{"capped", "code samples", match("x", 0.95, "", "technical"), 1.0},
		{"no intent", "hello there", match("x", 0.8, "Skills", "technical"), 0.8},
		{"intent without matching chunk", "degree", match("x", 0.8, "Skills", "technical"), 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Boost(tt.query, tt.m), 1e-9)
		})
	}
}
