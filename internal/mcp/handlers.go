// ABOUTME: MCP tool handler implementations for the ragpipe server
// ABOUTME: Wraps the ingest and query services with MCP result formatting
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/ragpipe/internal/models"
)

// Ingestor is the ingestion surface the MCP tools depend on.
type Ingestor interface {
	IngestText(ctx context.Context, content string, metadata map[string]string) (*models.Document, error)
	Delete(ctx context.Context, documentID string) error
}

// Searcher is the retrieval surface the MCP tools depend on.
type Searcher interface {
	Search(ctx context.Context, query string, limit int, threshold float32) ([]models.SearchResult, error)
}

// Handlers contains the handler functions for all MCP tools.
type Handlers struct {
	ingestor Ingestor
	searcher Searcher
}

// IngestDocument handles the ingest_document tool.
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	metadata := map[string]string{}
	if title := request.GetString("title", ""); title != "" {
		metadata[models.MetaTitle] = title
	}
	if source := request.GetString("source", ""); source != "" {
		metadata[models.MetaSource] = source
	}
	if docType := request.GetString("type", ""); docType != "" {
		metadata[models.MetaType] = docType
	}

	doc, err := h.ingestor.IngestText(ctx, content, metadata)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ingestion failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Ingested document %s (%d chunks)", doc.ID, doc.ChunkCount)), nil
}

// SearchChunks handles the search_chunks tool.
func (h *Handlers) SearchChunks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 5)

	results, err := h.searcher.Search(ctx, query, maxResults, -1)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No matching chunks found."), nil
	}

	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("formatting results: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}

// DeleteDocument handles the delete_document tool.
func (h *Handlers) DeleteDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id argument is required and must be a string"), nil
	}

	if err := h.ingestor.Delete(ctx, documentID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted document %s", documentID)), nil
}
