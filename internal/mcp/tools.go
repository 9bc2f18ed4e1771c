// ABOUTME: MCP tool definitions and registration for the ragpipe server
// ABOUTME: Defines JSON schemas for the ingest, search, and delete tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server.
func RegisterTools(server *mcpserver.MCPServer, ingestor Ingestor, searcher Searcher) *Handlers {
	handlers := &Handlers{
		ingestor: ingestor,
		searcher: searcher,
	}

	// 1. ingest_document - chunk, contextualize, embed, and store a document
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Ingest a document: split it into overlapping chunks, generate a situating context per chunk, and store the contextualized chunks for retrieval.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Full document text to ingest",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Optional document title",
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Optional document source (URL, filename, ...)",
				},
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Optional document type (article, manual, ...)",
				},
			},
			Required: []string{"content"},
		},
	}, handlers.IngestDocument)

	// 2. search_chunks - semantic search over stored chunks
	server.AddTool(mcp.Tool{
		Name:        "search_chunks",
		Description: "Search stored document chunks by semantic similarity to a query.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchChunks)

	// 3. delete_document - remove a document's chunks
	server.AddTool(mcp.Tool{
		Name:        "delete_document",
		Description: "Delete every stored chunk belonging to a document.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the document to delete",
				},
			},
			Required: []string{"document_id"},
		},
	}, handlers.DeleteDocument)

	return handlers
}
