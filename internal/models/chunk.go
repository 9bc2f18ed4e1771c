// ABOUTME: Chunk represents one overlapping window of a document's text
// ABOUTME: Offsets are indices into the tokenized content, not byte offsets
package models

// Chunk is a contiguous slice of a document in tokenized-unit space.
// Start and End are indices into the tokenization (word count for the
// word windower, rune count for the character windower). Chunks for a
// document form an ordered sequence with strictly increasing Start.
type Chunk struct {
	Content string `json:"content"`
	Index   int    `json:"chunk_index"`
	Start   int    `json:"start_offset"`
	End     int    `json:"end_offset"`
}

// Units returns the number of tokenized units the chunk covers.
func (c Chunk) Units() int {
	return c.End - c.Start
}

// AnnotationOptions controls how chunk contexts are generated.
type AnnotationOptions struct {
	Model           string  `json:"model"`
	MaxOutputTokens int     `json:"max_output_tokens"`
	Temperature     float32 `json:"temperature"`
	// WindowSize bounds how many preceding chunk summaries the
	// contextualizer may see for a given chunk.
	WindowSize int `json:"window_size"`
}

// DefaultAnnotationOptions returns the options used when the caller
// does not override them.
func DefaultAnnotationOptions() AnnotationOptions {
	return AnnotationOptions{
		Model:           "gpt-4o-mini",
		MaxOutputTokens: 150,
		Temperature:     0.3,
		WindowSize:      5,
	}
}
