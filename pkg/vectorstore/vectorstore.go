package vectorstore

import (
	"context"
	"fmt"

	"digital-twin-be/pkg/embedding"
)

// Metadata is the payload stored alongside every knowledge chunk.
type Metadata struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// Match is one nearest-neighbour hit. Score is cosine similarity in [0,1].
type Match struct {
	ID       string   `json:"id"`
	Score    float64  `json:"score"`
	Metadata Metadata `json:"metadata"`
}

// Chunk is a knowledge chunk ready for ingest.
type Chunk struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// EmbeddingText is the text a chunk is embedded as.
func (c Chunk) EmbeddingText() string {
	if c.Title == "" {
		return c.Content
	}
	return c.Title + ": " + c.Content
}

// Index answers text similarity queries.
type Index interface {
	Search(ctx context.Context, queryText string, topK int, includeMetadata bool) ([]Match, error)
}

// Writer loads chunks into an index.
type Writer interface {
	Upsert(ctx context.Context, chunks []Chunk) error
}

// Backend is a raw vector store: it knows nothing about embeddings.
type Backend interface {
	SearchVector(ctx context.Context, vector []float32, topK int, withPayload bool) ([]Match, error)
	UpsertVectors(ctx context.Context, chunks []Chunk, vectors [][]float32) error
	Count(ctx context.Context) (int64, error)
	Close() error
}

// EmbeddedIndex turns a Backend into a text Index by embedding queries first.
type EmbeddedIndex struct {
	embedder embedding.EmbeddingProvider
	backend  Backend
}

func NewIndex(embedder embedding.EmbeddingProvider, backend Backend) *EmbeddedIndex {
	return &EmbeddedIndex{embedder: embedder, backend: backend}
}

func (i *EmbeddedIndex) Search(ctx context.Context, queryText string, topK int, includeMetadata bool) ([]Match, error) {
	res, err := i.embedder.Generate(ctx, queryText, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return i.backend.SearchVector(ctx, res.Embedding.Values, topK, includeMetadata)
}

func (i *EmbeddedIndex) Upsert(ctx context.Context, chunks []Chunk) error {
	vectors := make([][]float32, len(chunks))
	for n, c := range chunks {
		res, err := i.embedder.Generate(ctx, c.EmbeddingText(), embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("embed chunk %q: %w", c.ID, err)
		}
		vectors[n] = res.Embedding.Values
	}
	return i.backend.UpsertVectors(ctx, chunks, vectors)
}

// Count reports how many chunks the backend holds.
func (i *EmbeddedIndex) Count(ctx context.Context) (int64, error) {
	return i.backend.Count(ctx)
}

func (i *EmbeddedIndex) Close() error {
	return i.backend.Close()
}

var (
	_ Index  = (*EmbeddedIndex)(nil)
	_ Writer = (*EmbeddedIndex)(nil)
)
