package search

import (
	"context"
	"sort"

	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/pkg/vectorstore"
)

const (
	DefaultTopK     = 5
	DefaultMinScore = 0.75

	// Used only when nothing clears the main threshold.
	fallbackSize  = 2
	fallbackFloor = 0.65
)

// Chunk is a retrieved knowledge chunk kept for the prompt.
type Chunk struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Score    float64  `json:"score"`
}

// Context is the outcome of one retrieval. ChunksUsed always equals len(Chunks).
type Context struct {
	Chunks       []Chunk  `json:"chunks"`
	AverageScore float64  `json:"average_score"`
	TopScore     float64  `json:"top_score"`
	ChunksUsed   int      `json:"chunks_used"`
	Categories   []string `json:"categories"`
}

func (c Context) Empty() bool {
	return len(c.Chunks) == 0
}

type Config struct {
	TopK     int
	MinScore float64
}

func DefaultConfig() Config {
	return Config{
		TopK:     DefaultTopK,
		MinScore: DefaultMinScore,
	}
}

// Retriever runs thresholded similarity search over the knowledge index.
type Retriever struct {
	index  vectorstore.Index
	logger logger.ILogger
	config Config
}

func NewRetriever(index vectorstore.Index, log logger.ILogger, config Config) *Retriever {
	if config.TopK <= 0 {
		config.TopK = DefaultTopK
	}
	if config.MinScore <= 0 {
		config.MinScore = DefaultMinScore
	}
	return &Retriever{
		index:  index,
		logger: log,
		config: config,
	}
}

// Search uses the retriever's configured topK and minScore.
func (r *Retriever) Search(ctx context.Context, query string) Context {
	return r.SearchWith(ctx, query, r.config)
}

// SearchWith never fails: index errors are logged and yield an empty Context.
func (r *Retriever) SearchWith(ctx context.Context, query string, cfg Config) Context {
	if cfg.TopK <= 0 {
		cfg.TopK = r.config.TopK
	}
	if cfg.MinScore <= 0 {
		cfg.MinScore = r.config.MinScore
	}

	matches, err := r.index.Search(ctx, query, cfg.TopK, true)
	if err != nil {
		r.logger.Warn("Retriever", "Vector search failed, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return Context{}
	}
	if len(matches) == 0 {
		return Context{}
	}

	kept := selectMatches(Rerank(query, matches), matches, cfg.MinScore)

	r.logger.Debug("Retriever", "Search completed", map[string]interface{}{
		"raw_results": len(matches),
		"kept":        len(kept),
		"min_score":   cfg.MinScore,
	})

	return buildContext(kept)
}

// selectMatches applies the main threshold over the reranked order and
// falls back to the best two raw results above the secondary floor.
func selectMatches(reranked, raw []vectorstore.Match, minScore float64) []vectorstore.Match {
	var kept []vectorstore.Match
	for _, m := range reranked {
		if m.Score >= minScore {
			kept = append(kept, m)
		}
	}
	if len(kept) > 0 {
		return kept
	}

	byScore := make([]vectorstore.Match, len(raw))
	copy(byScore, raw)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].Score > byScore[j].Score
	})
	if len(byScore) > fallbackSize {
		byScore = byScore[:fallbackSize]
	}
	for _, m := range byScore {
		if m.Score >= fallbackFloor {
			kept = append(kept, m)
		}
	}
	return kept
}

func buildContext(kept []vectorstore.Match) Context {
	if len(kept) == 0 {
		return Context{}
	}

	out := Context{
		Chunks:     make([]Chunk, len(kept)),
		Categories: []string{},
	}
	seen := make(map[string]struct{})
	var total float64
	for i, m := range kept {
		out.Chunks[i] = Chunk{
			ID:       m.ID,
			Title:    m.Metadata.Title,
			Content:  m.Metadata.Content,
			Category: m.Metadata.Category,
			Tags:     m.Metadata.Tags,
			Score:    m.Score,
		}
		total += m.Score
		out.TopScore = max(out.TopScore, m.Score)

		if c := m.Metadata.Category; c != "" {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				out.Categories = append(out.Categories, c)
			}
		}
	}
	out.ChunksUsed = len(out.Chunks)
	out.AverageScore = total / float64(len(kept))
	return out
}
