// ABOUTME: Query service for semantic search and retrieval-augmented answers
// ABOUTME: Embeds the query, searches the vector store, and streams grounded answers
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/ragpipe/internal/models"
	"github.com/harper/ragpipe/internal/vector"
)

const answerSystemPrompt = `You are a helpful assistant that answers questions using the provided document excerpts.
Ground every claim in the excerpts. If they do not contain the answer, say so instead of guessing.`

// Embedder maps text to an embedding vector.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Answerer streams a completion for a grounded prompt.
type Answerer interface {
	StreamAnswer(ctx context.Context, system, prompt string, onDelta func(delta string)) (string, error)
}

// Config holds retrieval defaults.
type Config struct {
	Limit     int
	Threshold float32
}

// Service answers search and question requests against the store.
type Service struct {
	embedder Embedder
	store    vector.Store
	answerer Answerer
	cfg      Config
}

// NewService creates a query service.
func NewService(embedder Embedder, store vector.Store, answerer Answerer, cfg Config) *Service {
	if cfg.Limit <= 0 {
		cfg.Limit = 5
	}
	return &Service{
		embedder: embedder,
		store:    store,
		answerer: answerer,
		cfg:      cfg,
	}
}

// Search embeds the query and returns the most similar stored chunks.
// limit <= 0 and threshold < 0 fall back to the configured defaults.
func (s *Service) Search(ctx context.Context, query string, limit int, threshold float32) ([]models.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required")
	}
	if limit <= 0 {
		limit = s.cfg.Limit
	}
	if threshold < 0 {
		threshold = s.cfg.Threshold
	}

	queryVector, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := s.store.Search(ctx, queryVector, limit, threshold)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}

	return results, nil
}

// Ask retrieves relevant chunks and streams an answer grounded in them,
// invoking onDelta per fragment. The assembled answer is returned once
// the stream ends.
func (s *Service) Ask(ctx context.Context, question string, limit int, onDelta func(delta string)) (string, error) {
	results, err := s.Search(ctx, question, limit, -1)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no relevant chunks found for question")
	}

	prompt := buildAnswerPrompt(question, results)

	answer, err := s.answerer.StreamAnswer(ctx, answerSystemPrompt, prompt, onDelta)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}

	return answer, nil
}

// buildAnswerPrompt formats retrieved chunks into a grounded prompt.
func buildAnswerPrompt(question string, results []models.SearchResult) string {
	var sb strings.Builder
	sb.WriteString("DOCUMENT EXCERPTS:\n")

	for i, result := range results {
		sb.WriteString(fmt.Sprintf("\nExcerpt %d (relevance: %.2f", i+1, result.Score))
		if result.Title != "" {
			sb.WriteString(", from: " + result.Title)
		}
		sb.WriteString("):\n")
		sb.WriteString(result.Content)
		sb.WriteString("\n")
	}

	sb.WriteString("\nQUESTION:\n")
	sb.WriteString(question)

	return sb.String()
}
