// ABOUTME: SearchResult carries one scored chunk returned from the vector store
// ABOUTME: Score is cosine similarity as reported by the store
package models

// SearchResult is one retrieved chunk with its similarity score.
type SearchResult struct {
	ID         string  `json:"id"`
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
	Content    string  `json:"content"`
	Score      float32 `json:"score"`
	Title      string  `json:"title,omitempty"`
	Source     string  `json:"source,omitempty"`
}
