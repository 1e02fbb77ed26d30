package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digital-twin-be/internal/config"
	"digital-twin-be/internal/controller"
	"digital-twin-be/internal/handler"
	"digital-twin-be/internal/pkg/logger"
	"digital-twin-be/internal/repository/implementation"
	"digital-twin-be/internal/repository/memory"
	redisrepo "digital-twin-be/internal/repository/redis"
	"digital-twin-be/internal/service"
	"digital-twin-be/internal/websocket"
	"digital-twin-be/pkg/database"
	"digital-twin-be/pkg/embedding"
	"digital-twin-be/pkg/kvstore"
	"digital-twin-be/pkg/llm/factory"
	pktNats "digital-twin-be/pkg/nats"
	"digital-twin-be/pkg/rag/faq"
	"digital-twin-be/pkg/rag/persona"
	"digital-twin-be/pkg/rag/pipeline"
	"digital-twin-be/pkg/rag/search"
	"digital-twin-be/pkg/rag/session"
	"digital-twin-be/pkg/rag/validation"
	"digital-twin-be/pkg/vectorstore"
	"digital-twin-be/pkg/vectorstore/qdrant"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	ChatController    controller.IChatController
	ChatSocketHandler *handler.ChatSocketHandler

	// Core, exposed for the CLI
	ChatService service.IChatService
	Pipeline    *pipeline.PipelineExecutor
	Index       *vectorstore.EmbeddedIndex

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	closers []func() error
}

// NewContainer wires the application. Optional infrastructure (NATS,
// Redis when the memory store is selected) degrades with a warning;
// required infrastructure fails construction.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// 1. Loggers
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())
	eventLogger := logger.NewIsolatedLogger(cfg.App.EventLogFilePath)
	c.Logger = sysLogger
	// zap reports EINVAL syncing a console; a failed flush is not fatal
	c.closers = append(c.closers,
		func() error { _ = sysLogger.Sync(); return nil },
		func() error { _ = eventLogger.Sync(); return nil },
	)

	// 2. Knowledge index
	embedder, err := NewEmbeddingProvider(cfg.Ai)
	if err != nil {
		return nil, err
	}
	backend, err := NewVectorBackend(ctx, cfg, sysLogger)
	if err != nil {
		return nil, err
	}
	c.Index = vectorstore.NewIndex(embedder, backend)
	c.closers = append(c.closers, c.Index.Close)

	retriever := search.NewRetriever(c.Index, sysLogger, search.Config{
		TopK:     cfg.Vector.TopK,
		MinScore: cfg.Vector.MinScore,
	})

	// 3. Session memory
	var rdb *redis.Client
	var store kvstore.Store
	switch cfg.Session.Store {
	case "redis":
		rdb, err = redisrepo.NewClient(ctx, cfg.Session.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		c.closers = append(c.closers, rdb.Close)
		store = redisrepo.NewSessionRepository(rdb)
	default:
		store = memory.NewSessionRepository(time.Duration(cfg.Session.TTLSeconds) * time.Second)
	}
	sessions := session.NewMemory(store, sysLogger, session.Config{
		TTL:         time.Duration(cfg.Session.TTLSeconds) * time.Second,
		ShortWindow: cfg.Session.ShortWindow,
	})

	// 4. Persona
	profile, err := persona.LoadProfile(cfg.Persona.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("persona profile: %w", err)
	}
	if cfg.Persona.OwnerName != "" {
		profile.Name = cfg.Persona.OwnerName
	}
	catalog := persona.NewCatalog(profile)
	responder := persona.NewResponder(profile, nil)

	// 5. Generation
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	c.Pipeline = pipeline.NewPipelineExecutor(
		validation.NewValidator(),
		faq.NewMatcher(faq.DefaultCatalog()),
		retriever,
		sessions,
		llmProvider,
		catalog,
		responder,
		sysLogger,
	)

	// 6. Event bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, pubSub.Close)

	c.WebSocketHub = websocket.NewHub(rdb, sysLogger)
	forwarders := service.Forwarders{c.WebSocketHub}
	if cfg.Events.NatsEnabled {
		natsPub, err := pktNats.NewPublisher(cfg.Events.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS unavailable, events stay in-process", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
			forwarders = append(forwarders, natsPub)
		}
	}
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Events.Topic, eventLogger, forwarders, sysLogger)

	// 7. Service + transport
	c.ChatService = service.NewChatService(c.Pipeline, sessions, catalog, responder, pubSub, cfg.Events.Topic, sysLogger)
	c.ChatController = controller.NewChatController(c.ChatService, sysLogger, cfg.App.RateLimitPerMinute)
	c.ChatSocketHandler = handler.NewChatSocketHandler(c.ChatService, c.WebSocketHub, sysLogger)

	return c, nil
}

// Start runs the background workers until ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	return c.ConsumerService.Consume(ctx)
}

// Close releases infrastructure in reverse construction order.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func NewEmbeddingProvider(cfg config.AIConfig) (embedding.EmbeddingProvider, error) {
	switch cfg.EmbeddingProvider {
	case "ollama", "":
		return embedding.NewOllamaProvider(cfg.EmbeddingBaseURL, cfg.EmbeddingModel), nil
	case "openai":
		if cfg.EmbeddingAPIKey == "" {
			return nil, fmt.Errorf("embedding provider openai requires EMBEDDING_API_KEY")
		}
		return embedding.NewOpenAIProvider(cfg.EmbeddingAPIKey, cfg.EmbeddingBaseURL, cfg.EmbeddingModel), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.EmbeddingProvider)
	}
}

// NewVectorBackend connects the configured store and makes sure its schema
// exists.
func NewVectorBackend(ctx context.Context, cfg *config.Config, log logger.ILogger) (vectorstore.Backend, error) {
	switch cfg.Vector.Provider {
	case "pgvector":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.App.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("pgvector: %w", err)
		}
		repo := implementation.NewKnowledgeChunkRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("pgvector migrate: %w", err)
		}
		log.Info("Bootstrap", "Vector backend ready", map[string]interface{}{"provider": "pgvector"})
		return repo, nil

	case "qdrant", "":
		client, err := qdrant.New(qdrant.Config{
			URL:            cfg.Vector.QdrantURL,
			CollectionName: cfg.Vector.QdrantCollection,
			APIKey:         cfg.Vector.QdrantAPIKey,
			Dimensions:     cfg.Vector.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		if err := client.EnsureCollection(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("qdrant collection: %w", err)
		}
		log.Info("Bootstrap", "Vector backend ready", map[string]interface{}{
			"provider":   "qdrant",
			"collection": cfg.Vector.QdrantCollection,
		})
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported vector provider: %s", cfg.Vector.Provider)
	}
}
