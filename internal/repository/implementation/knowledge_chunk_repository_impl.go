package implementation

import (
	"context"
	"fmt"

	"digital-twin-be/internal/model"
	"digital-twin-be/pkg/database"
	"digital-twin-be/pkg/vectorstore"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KnowledgeChunkRepositoryImpl is the pgvector backend for the knowledge index.
type KnowledgeChunkRepositoryImpl struct {
	db *gorm.DB
}

func NewKnowledgeChunkRepository(db *gorm.DB) *KnowledgeChunkRepositoryImpl {
	return &KnowledgeChunkRepositoryImpl{db: db}
}

// Migrate enables pgvector and creates the knowledge_chunks table.
func (r *KnowledgeChunkRepositoryImpl) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := database.EnableVector(db); err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	return db.AutoMigrate(&model.KnowledgeChunk{})
}

func (r *KnowledgeChunkRepositoryImpl) SearchVector(ctx context.Context, vector []float32, topK int, withPayload bool) ([]vectorstore.Match, error) {
	if topK <= 0 {
		topK = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity.
	type result struct {
		model.KnowledgeChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table(model.KnowledgeChunk{}.TableName()).
		Select("id, title, content, category, tags, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Order(gorm.Expr("embedding_value <=> ?", queryVector)).
		Limit(topK).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	matches := make([]vectorstore.Match, len(results))
	for i, res := range results {
		matches[i] = vectorstore.Match{
			ID:    res.Id,
			Score: res.Similarity,
		}
		if withPayload {
			matches[i].Metadata = vectorstore.Metadata{
				Title:    res.Title,
				Content:  res.Content,
				Category: res.Category,
				Tags:     res.Tags,
			}
		}
	}
	return matches, nil
}

func (r *KnowledgeChunkRepositoryImpl) UpsertVectors(ctx context.Context, chunks []vectorstore.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("pgvector upsert: %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	models := make([]*model.KnowledgeChunk, len(chunks))
	for i, c := range chunks {
		models[i] = &model.KnowledgeChunk{
			Id:             c.ID,
			Title:          c.Title,
			Content:        c.Content,
			Category:       c.Category,
			Tags:           c.Tags,
			EmbeddingValue: pgvector.NewVector(vectors[i]),
		}
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "content", "category", "tags", "embedding_value", "updated_at"}),
		}).
		Create(models).Error
}

func (r *KnowledgeChunkRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.KnowledgeChunk{}).Count(&count).Error
	return count, err
}

func (r *KnowledgeChunkRepositoryImpl) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ vectorstore.Backend = (*KnowledgeChunkRepositoryImpl)(nil)
