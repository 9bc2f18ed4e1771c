// ABOUTME: CLI command that runs the HTTP API server
// ABOUTME: Serves ingestion, search, and streaming ask endpoints with graceful shutdown
package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/ragpipe/internal/server"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Endpoints:
  POST   /api/documents      ingest a document
  DELETE /api/documents/:id  delete a document's chunks
  POST   /api/search         semantic search
  POST   /api/ask            ask a question (SSE stream)
  GET    /healthz            health check

Example:
  ragpipe serve --addr :8080`,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (defaults to RAGPIPE_HTTP_ADDR)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := newStack(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	addr := serveAddr
	if addr == "" {
		addr = s.cfg.HTTPAddr
	}

	api := server.New(s.ingestor, s.querier)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: api.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("ragpipe HTTP server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
