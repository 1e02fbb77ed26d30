package implementation

import (
	"context"
	"testing"

	"digital-twin-be/internal/model"
	"digital-twin-be/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB builds statements without ever connecting.
func newDryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=twin dbname=twin sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, SkipDefaultTransaction: true})
	require.NoError(t, err)

	var captured string
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	}))
	return db, &captured
}

func TestUpsertVectors_Validation(t *testing.T) {
	repo := NewKnowledgeChunkRepository(nil)
	ctx := context.Background()

	err := repo.UpsertVectors(ctx, []vectorstore.Chunk{{ID: "a", Content: "x"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 chunks but 0 vectors")

	assert.NoError(t, repo.UpsertVectors(ctx, nil, nil))
}

func TestUpsertVectors_OnConflictUpdates(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewKnowledgeChunkRepository(db)

	err := repo.UpsertVectors(context.Background(),
		[]vectorstore.Chunk{{ID: "p1", Title: "Movie App", Content: "Laravel", Category: "projects", Tags: []string{"php"}}},
		[][]float32{{0.6, 0.8}})
	require.NoError(t, err)

	assert.Contains(t, *captured, `INSERT INTO "knowledge_chunks"`)
	assert.Contains(t, *captured, `ON CONFLICT ("id") DO UPDATE SET`)
	assert.Contains(t, *captured, `"embedding_value"="excluded"."embedding_value"`)
}

func TestKnowledgeChunk_TableName(t *testing.T) {
	assert.Equal(t, "knowledge_chunks", model.KnowledgeChunk{}.TableName())
}
