// ABOUTME: Store defines the narrow vector database interface the services use
// ABOUTME: Keeps qdrant behind an interface so tests can substitute a fake
package vector

import (
	"context"

	"github.com/harper/ragpipe/internal/models"
)

// Point is one embedded chunk ready for storage.
type Point struct {
	ID         string
	Vector     []float32
	Content    string
	DocumentID string
	ChunkIndex int
	Metadata   map[string]string
}

// Store is the interface for vector database operations.
type Store interface {
	// EnsureCollection creates the backing collection if it does not exist.
	EnsureCollection(ctx context.Context) error

	// Upsert inserts or updates a batch of points.
	Upsert(ctx context.Context, points []Point) error

	// Search finds the chunks most similar to the query vector,
	// discarding results scoring below threshold.
	Search(ctx context.Context, queryVector []float32, limit int, threshold float32) ([]models.SearchResult, error)

	// DeleteDocument removes every point belonging to a document.
	DeleteDocument(ctx context.Context, documentID string) error

	// Close releases resources used by the store.
	Close() error
}
