// ABOUTME: Document describes one ingested document and its metadata
// ABOUTME: Metadata keys title, source, and type feed annotation prompts
package models

import "time"

// Well-known metadata keys consumed by annotation prompt construction.
const (
	MetaTitle  = "title"
	MetaSource = "source"
	MetaType   = "type"
)

// Document summarizes one ingestion run. Chunks themselves are held in
// memory only for the duration of the run; the vector store keeps the
// contextualized text.
type Document struct {
	ID         string    `json:"id"`
	Title      string    `json:"title,omitempty"`
	Source     string    `json:"source,omitempty"`
	Type       string    `json:"type,omitempty"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewDocument builds a Document summary from free-form metadata.
func NewDocument(id string, metadata map[string]string, chunkCount int) *Document {
	return &Document{
		ID:         id,
		Title:      metadata[MetaTitle],
		Source:     metadata[MetaSource],
		Type:       metadata[MetaType],
		ChunkCount: chunkCount,
		CreatedAt:  time.Now(),
	}
}
