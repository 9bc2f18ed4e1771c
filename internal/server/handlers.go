// ABOUTME: HTTP handler implementations for the document API
// ABOUTME: Ask streams the answer to the client as server-sent events
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harper/ragpipe/internal/ingest"
)

type ingestRequest struct {
	Content string `json:"content" binding:"required"`
	Title   string `json:"title"`
	Source  string `json:"source"`
	Type    string `json:"type"`
}

type searchRequest struct {
	Query     string  `json:"query" binding:"required"`
	Limit     int     `json:"limit"`
	Threshold float32 `json:"threshold"`
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
	Limit    int    `json:"limit"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleIngest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metadata := map[string]string{}
	if req.Title != "" {
		metadata["title"] = req.Title
	}
	if req.Source != "" {
		metadata["source"] = req.Source
	}
	if req.Type != "" {
		metadata["type"] = req.Type
	}

	doc, err := s.ingestor.IngestText(c.Request.Context(), req.Content, metadata)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ingest.ErrEmptyDocument) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (s *Server) handleDelete(c *gin.Context) {
	documentID := c.Param("id")
	if err := s.ingestor.Delete(c.Request.Context(), documentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": documentID})
}

func (s *Server) handleSearch(c *gin.Context) {
	// An omitted threshold must fall back to the configured default;
	// an explicit 0 disables filtering.
	req := searchRequest{Threshold: -1}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := s.searcher.Search(c.Request.Context(), req.Query, req.Limit, req.Threshold)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) handleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	_, err := s.searcher.Ask(c.Request.Context(), req.Question, req.Limit, func(delta string) {
		c.SSEvent("delta", delta)
		c.Writer.Flush()
	})
	if err != nil {
		c.SSEvent("error", err.Error())
		c.Writer.Flush()
		return
	}

	c.SSEvent("done", "")
	c.Writer.Flush()
}
