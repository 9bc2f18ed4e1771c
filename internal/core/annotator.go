// ABOUTME: Annotator produces per-chunk summaries and situating contexts
// ABOUTME: Talks to an injected text-generation capability, never a global
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/ragpipe/internal/models"
)

// summaryMaxTokens caps summary length. Summaries are intentionally
// terser than contexts, so this is fixed rather than taken from
// AnnotationOptions.MaxOutputTokens.
const summaryMaxTokens = 60

const summarizeSystemPrompt = `You summarize document passages for a retrieval index.
Reply with exactly one concise sentence naming the main topics and entities of the passage. No preamble.`

const contextualizeSystemPrompt = `You situate a passage within its parent document for a retrieval index.
Reply with 1-2 short sentences of context that explain what this passage covers and how it relates to the document. Reply with the context only.`

// GenerateRequest is one request to the external text-generation
// capability.
type GenerateRequest struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Generator is the text-generation capability the annotator depends on.
// Implementations are expected to be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Annotator issues single-chunk requests against a Generator.
type Annotator struct {
	gen  Generator
	opts models.AnnotationOptions
}

// NewAnnotator creates an Annotator bound to a generation capability
// and annotation options.
func NewAnnotator(gen Generator, opts models.AnnotationOptions) *Annotator {
	return &Annotator{gen: gen, opts: opts}
}

// Summarize asks for a single concise sentence capturing the topics and
// entities of chunkText. The result is whitespace-trimmed.
func (a *Annotator) Summarize(ctx context.Context, chunkText string) (string, error) {
	out, err := a.gen.Generate(ctx, GenerateRequest{
		System:      summarizeSystemPrompt,
		Prompt:      chunkText,
		Model:       a.opts.Model,
		MaxTokens:   summaryMaxTokens,
		Temperature: a.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Contextualize asks for a 1-2 sentence context situating the chunk
// within its document. The prompt sees a document descriptor built from
// metadata, a 1-based position marker, the sliding window of prior
// summaries, and the chunk's own text. The result is
// whitespace-trimmed.
func (a *Annotator) Contextualize(ctx context.Context, chunkText string, chunkIndex int, priorSummaries []string, metadata map[string]string) (string, error) {
	prompt := a.buildContextPrompt(chunkText, chunkIndex, priorSummaries, metadata)

	out, err := a.gen.Generate(ctx, GenerateRequest{
		System:      contextualizeSystemPrompt,
		Prompt:      prompt,
		Model:       a.opts.Model,
		MaxTokens:   a.opts.MaxOutputTokens,
		Temperature: a.opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("contextualize chunk %d: %w", chunkIndex, err)
	}
	return strings.TrimSpace(out), nil
}

func (a *Annotator) buildContextPrompt(chunkText string, chunkIndex int, priorSummaries []string, metadata map[string]string) string {
	var sb strings.Builder

	sb.WriteString(describeDocument(metadata))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Chunk %d\n", chunkIndex+1))

	window := slidingWindow(priorSummaries, chunkIndex, a.opts.WindowSize)
	if len(window) > 0 {
		sb.WriteString("\nSummaries of the preceding chunks:\n")
		for _, summary := range window {
			if summary == "" {
				continue
			}
			sb.WriteString("- ")
			sb.WriteString(summary)
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nChunk text:\n")
	sb.WriteString(chunkText)

	return sb.String()
}

// describeDocument assembles a short descriptor from the title, type,
// and source metadata fields, omitting absent ones. With no fields
// present it falls back to the generic label.
func describeDocument(metadata map[string]string) string {
	var parts []string
	if title := metadata[models.MetaTitle]; title != "" {
		parts = append(parts, fmt.Sprintf("titled %q", title))
	}
	if docType := metadata[models.MetaType]; docType != "" {
		parts = append(parts, "of type "+docType)
	}
	if source := metadata[models.MetaSource]; source != "" {
		parts = append(parts, "from "+source)
	}

	if len(parts) == 0 {
		return "Document"
	}
	return "Document " + strings.Join(parts, ", ")
}

// slidingWindow returns the last min(windowSize, chunkIndex) entries of
// priorSummaries ending at, but excluding, chunkIndex.
func slidingWindow(priorSummaries []string, chunkIndex, windowSize int) []string {
	if chunkIndex > len(priorSummaries) {
		chunkIndex = len(priorSummaries)
	}
	if windowSize <= 0 || chunkIndex <= 0 {
		return nil
	}

	start := chunkIndex - windowSize
	if start < 0 {
		start = 0
	}
	return priorSummaries[start:chunkIndex]
}
