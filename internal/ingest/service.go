// ABOUTME: Ingestion service runs the window -> contextualize -> embed -> store pipeline
// ABOUTME: Prepends each synthesized context to its chunk before embedding
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/harper/ragpipe/internal/core"
	"github.com/harper/ragpipe/internal/models"
	"github.com/harper/ragpipe/internal/vector"
)

// ErrEmptyDocument is returned when the submitted content contains no
// non-whitespace text.
var ErrEmptyDocument = errors.New("cannot ingest empty document")

// Embedder maps text to an embedding vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Contextualizer produces one situating context string per chunk.
type Contextualizer interface {
	Synthesize(ctx context.Context, chunks []models.Chunk, metadata map[string]string) ([]string, error)
}

// Config holds the windowing parameters and fallback policy for
// ingestion.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	// AllowUncontextualized stores raw chunks when context synthesis
	// fails for the document instead of failing the ingestion.
	AllowUncontextualized bool
}

// Validate rejects windowing parameters the windower treats as
// precondition violations.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("chunk overlap must be non-negative, got %d", c.ChunkOverlap)
	}
	return nil
}

// Service ingests documents into the vector store.
type Service struct {
	synth     Contextualizer
	embedder  Embedder
	store     vector.Store
	scheduler core.Scheduler
	cfg       Config
}

// NewService creates an ingestion service. The scheduler paces the
// embedding fan-out the same way it paces annotation calls.
func NewService(synth Contextualizer, embedder Embedder, store vector.Store, scheduler core.Scheduler, cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		synth:     synth,
		embedder:  embedder,
		store:     store,
		scheduler: scheduler,
		cfg:       cfg,
	}, nil
}

// IngestText windows content, synthesizes a context per chunk, embeds
// the context-prefixed chunks, and stores them. Metadata is read-only
// here; title, source, and type feed both the annotation prompts and
// the stored payload.
func (s *Service) IngestText(ctx context.Context, content string, metadata map[string]string) (*models.Document, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyDocument
	}

	chunks := core.WindowWords(content, s.cfg.ChunkSize, s.cfg.ChunkOverlap)

	contexts, err := s.synth.Synthesize(ctx, chunks, metadata)
	if err != nil {
		if !s.cfg.AllowUncontextualized {
			return nil, fmt.Errorf("contextualization failed for document: %w", err)
		}
		log.Printf("[ingest] contextualization failed, storing raw chunks: %v", err)
		contexts = make([]string, len(chunks))
	}

	docID := uuid.New().String()

	points, err := core.RunBatched(ctx, s.scheduler, chunks, func(ctx context.Context, chunk models.Chunk) (vector.Point, error) {
		text := chunk.Content
		if chunkContext := contexts[chunk.Index]; chunkContext != "" {
			text = chunkContext + "\n\n" + chunk.Content
		}

		vec, err := s.embedder.GenerateEmbedding(ctx, text)
		if err != nil {
			return vector.Point{}, fmt.Errorf("embedding chunk %d: %w", chunk.Index, err)
		}

		return vector.Point{
			ID:         uuid.New().String(),
			Vector:     vec,
			Content:    text,
			DocumentID: docID,
			ChunkIndex: chunk.Index,
			Metadata:   metadata,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Upsert(ctx, points); err != nil {
		return nil, fmt.Errorf("storing document %s: %w", docID, err)
	}

	return models.NewDocument(docID, metadata, len(chunks)), nil
}

// Delete removes every stored chunk of a document.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("document id is required")
	}
	return s.store.DeleteDocument(ctx, documentID)
}
