package qdrant

import (
	"testing"

	"digital-twin-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{"no url", Config{CollectionName: "kb"}, "url is required"},
		{"no collection", Config{URL: "localhost:6334"}, "collection is required"},
		{"bad port", Config{URL: "http://localhost:grpc", CollectionName: "kb"}, "port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestPointID(t *testing.T) {
	existing := uuid.NewString()
	assert.Equal(t, existing, pointID(existing))

	a := pointID("projects-movie-app")
	assert.Equal(t, a, pointID("projects-movie-app"))
	assert.NotEqual(t, a, pointID("projects-movie-app-2"))
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestPayloadMetadata(t *testing.T) {
	chunk := vectorstore.Chunk{
		ID:       "p1",
		Title:    "Movie App",
		Content:  "Built with Laravel",
		Category: "projects",
		Tags:     []string{"laravel", "php"},
	}

	payload := qdrant.NewValueMap(chunkPayload(chunk))
	assert.Equal(t, "p1", payload["chunk_id"].GetStringValue())

	md := metadataFromPayload(payload)
	assert.Equal(t, vectorstore.Metadata{
		Title:    "Movie App",
		Content:  "Built with Laravel",
		Category: "projects",
		Tags:     []string{"laravel", "php"},
	}, md)

	assert.Equal(t, vectorstore.Metadata{}, metadataFromPayload(map[string]*qdrant.Value{}))
}
