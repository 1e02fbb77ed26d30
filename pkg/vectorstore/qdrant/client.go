package qdrant

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"digital-twin-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// Config holds Qdrant connection configuration.
type Config struct {
	// URL is the Qdrant gRPC address, e.g. "https://example.qdrant.io:6334".
	URL string

	CollectionName string
	APIKey         string

	// Dimensions is used only when the collection has to be created.
	Dimensions int
}

// Client implements vectorstore.Backend for Qdrant.
type Client struct {
	client         *qdrant.Client
	collectionName string
	dimensions     int
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("qdrant url is required")
	}
	if cfg.CollectionName == "" {
		return nil, fmt.Errorf("qdrant collection is required")
	}

	parsedURL := cfg.URL
	if !strings.HasPrefix(parsedURL, "http://") && !strings.HasPrefix(parsedURL, "https://") {
		parsedURL = "https://" + parsedURL
	}

	u, err := url.Parse(parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse qdrant url: %w", err)
	}

	port := 6334
	if u.Port() != "" {
		p, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		port = p
	}

	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host:   u.Hostname(),
		Port:   port,
		APIKey: cfg.APIKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &Client{
		client:         qdrantClient,
		collectionName: cfg.CollectionName,
		dimensions:     cfg.Dimensions,
	}, nil
}

// EnsureCollection creates the collection with cosine distance if it is missing.
func (c *Client) EnsureCollection(ctx context.Context) error {
	exists, err := c.client.CollectionExists(ctx, c.collectionName)
	if err != nil {
		return fmt.Errorf("qdrant collection check failed: %w", err)
	}
	if exists {
		return nil
	}
	if c.dimensions <= 0 {
		return fmt.Errorf("qdrant collection %q missing and no dimensions configured", c.collectionName)
	}

	return c.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: c.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(c.dimensions),
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (c *Client) SearchVector(ctx context.Context, vector []float32, topK int, withPayload bool) ([]vectorstore.Match, error) {
	limit := uint64(topK)
	points, err := c.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(withPayload),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}

	matches := make([]vectorstore.Match, 0, len(points))
	for _, point := range points {
		m := vectorstore.Match{Score: float64(point.Score)}

		if point.Id != nil {
			if id := point.Id.GetUuid(); id != "" {
				m.ID = id
			} else {
				m.ID = strconv.FormatUint(point.Id.GetNum(), 10)
			}
		}

		if point.Payload != nil {
			if v, ok := point.Payload["chunk_id"]; ok && v.GetStringValue() != "" {
				m.ID = v.GetStringValue()
			}
			m.Metadata = metadataFromPayload(point.Payload)
		}

		matches = append(matches, m)
	}

	return matches, nil
}

func (c *Client) UpsertVectors(ctx context.Context, chunks []vectorstore.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("qdrant upsert: %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, len(chunks))
	for i, chunk := range chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(chunk.ID)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(chunkPayload(chunk)),
		}
	}

	wait := true
	if _, err := c.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: c.collectionName,
		Wait:           &wait,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (c *Client) Count(ctx context.Context) (int64, error) {
	exact := true
	n, err := c.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: c.collectionName,
		Exact:          &exact,
	})
	if err != nil {
		return 0, fmt.Errorf("qdrant count failed: %w", err)
	}
	return int64(n), nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Qdrant only accepts UUID or integer point ids, so free-form chunk ids
// are mapped onto a stable name-based UUID.
func pointID(chunkID string) string {
	if _, err := uuid.Parse(chunkID); err == nil {
		return chunkID
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(chunkID)).String()
}

func chunkPayload(chunk vectorstore.Chunk) map[string]any {
	tags := make([]any, len(chunk.Tags))
	for i, t := range chunk.Tags {
		tags[i] = t
	}
	return map[string]any{
		"chunk_id": chunk.ID,
		"title":    chunk.Title,
		"content":  chunk.Content,
		"category": chunk.Category,
		"tags":     tags,
	}
}

func metadataFromPayload(payload map[string]*qdrant.Value) vectorstore.Metadata {
	md := vectorstore.Metadata{
		Title:    payload["title"].GetStringValue(),
		Content:  payload["content"].GetStringValue(),
		Category: payload["category"].GetStringValue(),
	}
	for _, v := range payload["tags"].GetListValue().GetValues() {
		if s := v.GetStringValue(); s != "" {
			md.Tags = append(md.Tags, s)
		}
	}
	return md
}

var _ vectorstore.Backend = (*Client)(nil)
