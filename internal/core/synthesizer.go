// ABOUTME: Two-pass synthesizer generates a situating context per chunk
// ABOUTME: Pass 1 summarizes every chunk, pass 2 contextualizes with a sliding window
package core

import (
	"context"
	"fmt"

	"github.com/harper/ragpipe/internal/models"
)

// FailurePolicy controls how a synthesis pass reacts when a single
// chunk's external request fails.
type FailurePolicy int

const (
	// AbortOnError fails the whole pass on the first chunk error.
	AbortOnError FailurePolicy = iota
	// ContinueOnError substitutes an empty string for the failed
	// chunk and keeps going.
	ContinueOnError
)

// Synthesizer orchestrates the annotator across all chunks of one
// document in two passes. Pass 2's history is built from the short
// pass-1 summaries rather than full chunk text, which bounds prompt
// size to O(windowSize) regardless of chunk size.
//
// SummarizePolicy defaults to ContinueOnError and ContextualizePolicy
// to AbortOnError: one bad summary costs only its own history entry,
// while a missing context would leave a chunk silently degraded in the
// index, so the default is to fail the document instead. Both are
// exported so callers can change either pass.
type Synthesizer struct {
	annotator *Annotator
	scheduler Scheduler

	SummarizePolicy     FailurePolicy
	ContextualizePolicy FailurePolicy
}

// NewSynthesizer creates a Synthesizer with the default per-pass
// failure policies.
func NewSynthesizer(annotator *Annotator, scheduler Scheduler) *Synthesizer {
	return &Synthesizer{
		annotator:           annotator,
		scheduler:           scheduler,
		SummarizePolicy:     ContinueOnError,
		ContextualizePolicy: AbortOnError,
	}
}

// Synthesize returns one context string per input chunk, index-aligned
// with chunks. Pass 2 does not start until pass 1 has completed for all
// chunks. With the default policies pass 1 always completes (failed
// chunks get empty summaries) and any pass-2 failure fails the whole
// call with no contexts returned.
func (s *Synthesizer) Synthesize(ctx context.Context, chunks []models.Chunk, metadata map[string]string) ([]string, error) {
	summaries := make([]string, len(chunks))
	err := s.scheduler.Run(ctx, len(chunks), func(ctx context.Context, i int) error {
		summary, err := s.annotator.Summarize(ctx, chunks[i].Content)
		if err != nil {
			if s.SummarizePolicy == ContinueOnError {
				summaries[i] = ""
				return nil
			}
			return fmt.Errorf("chunk %d: %w", i, err)
		}
		summaries[i] = summary
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("summarize pass: %w", err)
	}

	contexts := make([]string, len(chunks))
	err = s.scheduler.Run(ctx, len(chunks), func(ctx context.Context, i int) error {
		chunkContext, err := s.annotator.Contextualize(ctx, chunks[i].Content, chunks[i].Index, summaries, metadata)
		if err != nil {
			if s.ContextualizePolicy == ContinueOnError {
				contexts[i] = ""
				return nil
			}
			return err
		}
		contexts[i] = chunkContext
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("contextualize pass: %w", err)
	}

	return contexts, nil
}
