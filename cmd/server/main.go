// ABOUTME: Main entry point for the standalone ragpipe HTTP server
// ABOUTME: Initializes config, OpenAI client, Qdrant store, and the API
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/ragpipe/internal/config"
	"github.com/harper/ragpipe/internal/core"
	"github.com/harper/ragpipe/internal/ingest"
	"github.com/harper/ragpipe/internal/llm"
	"github.com/harper/ragpipe/internal/query"
	"github.com/harper/ragpipe/internal/server"
	"github.com/harper/ragpipe/internal/vector"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	store, err := vector.NewQdrantStore(cfg.QdrantAddr, cfg.Collection, cfg.VectorDim)
	if err != nil {
		log.Fatalf("Failed to initialize vector store: %v", err)
	}
	defer store.Close()

	if err := store.EnsureCollection(ctx); err != nil {
		log.Fatalf("Failed to prepare collection: %v", err)
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
		log.Fatalf("Failed to initialize ingestion service: %v", err)
	}

	querier := query.NewService(client, store, client, query.Config{
		Limit:     cfg.SearchLimit,
		Threshold: float32(cfg.ScoreThreshold),
	})

	api := server.New(ingestor, querier)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Handler(),
	}

	go func() {
		log.Printf("ragpipe HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
