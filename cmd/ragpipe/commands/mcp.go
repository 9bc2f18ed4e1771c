// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to ingest and search documents via stdio
package commands

import (
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/ragpipe/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs ragpipe as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to ingest, search, and delete documents
via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by the agent host)
  ragpipe mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "ragpipe": {
  #       "command": "ragpipe",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server on stdio
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	s, err := newStack(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	server := mcpserver.NewMCPServer(
		"Ragpipe Contextual Retrieval",
		"0.1.0",
	)
	mcp.RegisterTools(server, s.ingestor, s.querier)

	log.Println("ragpipe MCP server starting on stdio...")
	return mcpserver.ServeStdio(server)
}
