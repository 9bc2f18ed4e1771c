// ABOUTME: Shared service assembly for CLI commands
// ABOUTME: Builds the OpenAI client, Qdrant store, and pipeline services from config
package commands

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/ragpipe/internal/config"
	"github.com/harper/ragpipe/internal/core"
	"github.com/harper/ragpipe/internal/ingest"
	"github.com/harper/ragpipe/internal/llm"
	"github.com/harper/ragpipe/internal/query"
	"github.com/harper/ragpipe/internal/vector"
)

// stack bundles the wired-up services a command needs.
type stack struct {
	cfg      *config.Config
	client   *llm.OpenAIClient
	store    vector.Store
	ingestor *ingest.Service
	querier  *query.Service
}

// newStack loads configuration and assembles the full pipeline.
func newStack(ctx context.Context) (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	store, err := vector.NewQdrantStore(cfg.QdrantAddr, cfg.Collection, cfg.VectorDim)
	if err != nil {
		return nil, fmt.Errorf("initializing vector store: %w", err)
	}
	if err := store.EnsureCollection(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("preparing collection: %w", err)
	}

	scheduler := core.NewBatchScheduler(cfg.BatchSize, cfg.BatchDelay)
	annotator := core.NewAnnotator(client, cfg.AnnotationOptions())
	synthesizer := core.NewSynthesizer(annotator, scheduler)

	ingestor, err := ingest.NewService(synthesizer, client, store, scheduler, ingest.Config{
		ChunkSize:             cfg.ChunkSize,
		ChunkOverlap:          cfg.ChunkOverlap,
		AllowUncontextualized: cfg.AllowUncontextualized,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("initializing ingestion service: %w", err)
	}

	querier := query.NewService(client, store, client, query.Config{
		Limit:     cfg.SearchLimit,
		Threshold: float32(cfg.ScoreThreshold),
	})

	return &stack{
		cfg:      cfg,
		client:   client,
		store:    store,
		ingestor: ingestor,
		querier:  querier,
	}, nil
}

// Close releases the stack's resources.
func (s *stack) Close() {
	_ = s.store.Close()
}
