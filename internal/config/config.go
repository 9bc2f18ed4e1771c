// ABOUTME: Centralized configuration for the ragpipe services
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/harper/ragpipe/internal/models"
)

// Config holds all configuration for the pipeline and its services.
type Config struct {
	// OpenAI settings
	OpenAIKey      string        `env:"OPENAI_API_KEY"`
	ChatModel      string        `env:"RAGPIPE_CHAT_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel string        `env:"RAGPIPE_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	Timeout        time.Duration `env:"OPENAI_TIMEOUT" envDefault:"30s"`
	MaxRetries     int           `env:"OPENAI_MAX_RETRIES" envDefault:"3"`
	RetryDelay     time.Duration `env:"OPENAI_RETRY_DELAY" envDefault:"2s"`

	// Qdrant settings
	QdrantAddr string `env:"QDRANT_ADDR" envDefault:"localhost:6334"`
	Collection string `env:"RAGPIPE_COLLECTION" envDefault:"ragpipe_chunks"`
	VectorDim  int    `env:"RAGPIPE_VECTOR_DIM" envDefault:"1536"`

	// Chunking settings (word units)
	ChunkSize    int `env:"RAGPIPE_CHUNK_SIZE" envDefault:"800"`
	ChunkOverlap int `env:"RAGPIPE_CHUNK_OVERLAP" envDefault:"100"`

	// Annotation settings
	ContextWindow         int           `env:"RAGPIPE_CONTEXT_WINDOW" envDefault:"5"`
	MaxOutputTokens       int           `env:"RAGPIPE_MAX_OUTPUT_TOKENS" envDefault:"150"`
	Temperature           float64       `env:"RAGPIPE_TEMPERATURE" envDefault:"0.3"`
	BatchSize             int           `env:"RAGPIPE_BATCH_SIZE" envDefault:"5"`
	BatchDelay            time.Duration `env:"RAGPIPE_BATCH_DELAY" envDefault:"1s"`
	AllowUncontextualized bool          `env:"RAGPIPE_ALLOW_UNCONTEXTUALIZED" envDefault:"false"`

	// Retrieval settings
	SearchLimit    int     `env:"RAGPIPE_SEARCH_LIMIT" envDefault:"5"`
	ScoreThreshold float64 `env:"RAGPIPE_SCORE_THRESHOLD" envDefault:"0.25"`

	// HTTP settings
	HTTPAddr string `env:"RAGPIPE_HTTP_ADDR" envDefault:":8080"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects parameter combinations the pipeline treats as
// precondition violations.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("RAGPIPE_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("RAGPIPE_CHUNK_OVERLAP must be non-negative, got %d", c.ChunkOverlap)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("RAGPIPE_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("RAGPIPE_MAX_OUTPUT_TOKENS must be positive, got %d", c.MaxOutputTokens)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("RAGPIPE_BATCH_SIZE must be positive, got %d", c.BatchSize)
	}
	if c.BatchDelay < 0 {
		return fmt.Errorf("RAGPIPE_BATCH_DELAY must be non-negative, got %s", c.BatchDelay)
	}
	if c.ContextWindow < 0 {
		return fmt.Errorf("RAGPIPE_CONTEXT_WINDOW must be non-negative, got %d", c.ContextWindow)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("OPENAI_RETRY_DELAY must be non-negative, got %s", c.RetryDelay)
	}
	if c.VectorDim <= 0 {
		return fmt.Errorf("RAGPIPE_VECTOR_DIM must be positive, got %d", c.VectorDim)
	}
	return nil
}

// AnnotationOptions returns the annotation options derived from the
// configuration.
func (c *Config) AnnotationOptions() models.AnnotationOptions {
	return models.AnnotationOptions{
		Model:           c.ChatModel,
		MaxOutputTokens: c.MaxOutputTokens,
		Temperature:     float32(c.Temperature),
		WindowSize:      c.ContextWindow,
	}
}
