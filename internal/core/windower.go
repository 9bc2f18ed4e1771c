// ABOUTME: Windower splits raw text into ordered overlapping chunks
// ABOUTME: Word-based and character-based variants with offset bookkeeping
package core

import (
	"strings"

	"github.com/harper/ragpipe/internal/models"
)

// wordTokens is the tokenization policy for the word windower: split on
// maximal runs of whitespace. An input with no non-whitespace content
// (including the empty string) yields no tokens; the windower turns
// that into exactly one empty chunk. That single-empty-chunk behavior
// for blank input is kept on purpose for compatibility with existing
// ingestion callers, so it lives here where it is visible and testable
// rather than buried in the loop.
func wordTokens(content string) []string {
	return strings.Fields(content)
}

// emptyDocumentChunks is what both windowers return for input that
// tokenizes to nothing: one chunk with empty content and zero offsets.
func emptyDocumentChunks() []models.Chunk {
	return []models.Chunk{{Content: "", Index: 0, Start: 0, End: 0}}
}

// WindowWords splits content into overlapping windows of unitSize words
// with the given word overlap between consecutive windows. Offsets are
// word indices. unitSize must be positive; that is the caller's
// precondition and is not checked here.
//
// If overlap >= unitSize the natural advance would never move forward,
// so the next window instead starts at the current window's end. Start
// offsets are strictly increasing either way, which guarantees
// termination.
func WindowWords(content string, unitSize, overlap int) []models.Chunk {
	words := wordTokens(content)
	if len(words) == 0 {
		return emptyDocumentChunks()
	}

	var chunks []models.Chunk
	index := 0
	for start := 0; start < len(words); {
		end := start + unitSize
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, models.Chunk{
			Content: strings.Join(words[start:end], " "),
			Index:   index,
			Start:   start,
			End:     end,
		})
		index++

		step := unitSize - overlap
		if step <= 0 {
			start = end
		} else {
			start += step
		}
	}

	return chunks
}

// WindowChars is the character-based sibling of WindowWords: the same
// algorithm over runes, with unitSize and overlap expressed in runes.
// Useful when a caller wants offset granularity finer than whole words,
// e.g. for capacity estimation.
func WindowChars(content string, unitSize, overlap int) []models.Chunk {
	runes := []rune(content)
	if len(runes) == 0 {
		return emptyDocumentChunks()
	}

	var chunks []models.Chunk
	index := 0
	for start := 0; start < len(runes); {
		end := start + unitSize
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, models.Chunk{
			Content: string(runes[start:end]),
			Index:   index,
			Start:   start,
			End:     end,
		})
		index++

		step := unitSize - overlap
		if step <= 0 {
			start = end
		} else {
			start += step
		}
	}

	return chunks
}
