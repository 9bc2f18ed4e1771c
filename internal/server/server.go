// ABOUTME: HTTP API for document ingestion, search, and streamed answers
// ABOUTME: Thin gin layer over the ingest and query services
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harper/ragpipe/internal/models"
)

// Ingestor is the ingestion surface the API depends on.
type Ingestor interface {
	IngestText(ctx context.Context, content string, metadata map[string]string) (*models.Document, error)
	Delete(ctx context.Context, documentID string) error
}

// Searcher is the retrieval surface the API depends on.
type Searcher interface {
	Search(ctx context.Context, query string, limit int, threshold float32) ([]models.SearchResult, error)
	Ask(ctx context.Context, question string, limit int, onDelta func(delta string)) (string, error)
}

// Server wires the HTTP routes to the services.
type Server struct {
	ingestor Ingestor
	searcher Searcher
	engine   *gin.Engine
}

// New creates the HTTP server and registers all routes.
func New(ingestor Ingestor, searcher Searcher) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		ingestor: ingestor,
		searcher: searcher,
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api")
	api.POST("/documents", s.handleIngest)
	api.DELETE("/documents/:id", s.handleDelete)
	api.POST("/search", s.handleSearch)
	api.POST("/ask", s.handleAsk)

	return s
}

// Handler exposes the underlying handler for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}
