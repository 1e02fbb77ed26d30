package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"digital-twin-be/internal/bootstrap"
	"digital-twin-be/internal/config"
	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/pkg/utils"
	"digital-twin-be/pkg/vectorstore"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	ingestBatchSize = 32

	// long documents are split before embedding
	maxChunkRunes     = 1500
	chunkOverlapRunes = 150
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the vector collection or pgvector table if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		backend, err := bootstrap.NewVectorBackend(cmd.Context(), cfg, logger.NewNopLogger())
		if err != nil {
			return err
		}
		defer backend.Close()

		n, err := backend.Count(cmd.Context())
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%s backend is ready (%d chunks)\n", cfg.Vector.Provider, n)
		return nil
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [chunks.json]",
	Short: "Embed and upsert knowledge chunks from a JSON array",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	chunks, err := readChunks(f)
	if err != nil {
		return err
	}
	chunks = splitChunks(chunks)

	cfg := config.Load()
	ctx := cmd.Context()

	embedder, err := bootstrap.NewEmbeddingProvider(cfg.Ai)
	if err != nil {
		return err
	}
	backend, err := bootstrap.NewVectorBackend(ctx, cfg, logger.NewNopLogger())
	if err != nil {
		return err
	}
	index := vectorstore.NewIndex(embedder, backend)
	defer index.Close()

	out := cmd.OutOrStdout()
	for start := 0; start < len(chunks); start += ingestBatchSize {
		end := min(start+ingestBatchSize, len(chunks))
		if err := index.Upsert(ctx, chunks[start:end]); err != nil {
			return fmt.Errorf("upsert chunks %d-%d: %w", start, end-1, err)
		}
		fmt.Fprintf(out, "upserted %d/%d\n", end, len(chunks))
	}

	total, err := index.Count(ctx)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(out, "ingested %d chunks, index now holds %d\n", len(chunks), total)
	return nil
}

// readChunks decodes a JSON array of chunks. Chunks without an id get a
// random one; chunks without content are an error.
func readChunks(r io.Reader) ([]vectorstore.Chunk, error) {
	var chunks []vectorstore.Chunk
	if err := json.NewDecoder(r).Decode(&chunks); err != nil {
		return nil, fmt.Errorf("decode chunks: %w", err)
	}
	for i := range chunks {
		if chunks[i].Content == "" {
			return nil, fmt.Errorf("chunk %d has no content", i)
		}
		if chunks[i].ID == "" {
			chunks[i].ID = uuid.NewString()
		}
	}
	return chunks, nil
}

// splitChunks breaks oversized chunks into overlapping parts. Parts keep
// the source metadata and get "<id>-<n>" ids.
func splitChunks(chunks []vectorstore.Chunk) []vectorstore.Chunk {
	out := make([]vectorstore.Chunk, 0, len(chunks))
	for _, c := range chunks {
		parts := utils.SplitText(c.Content, maxChunkRunes, chunkOverlapRunes)
		if len(parts) == 1 {
			out = append(out, c)
			continue
		}
		for n, part := range parts {
			p := c
			p.ID = fmt.Sprintf("%s-%d", c.ID, n+1)
			p.Content = part
			out = append(out, p)
		}
	}
	return out
}
