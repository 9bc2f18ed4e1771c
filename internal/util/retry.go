// ABOUTME: Retry helpers for external API calls with exponential backoff
// ABOUTME: Shared by the OpenAI client for generation and embedding requests
package util

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// maxBackoff caps a single backoff sleep.
const maxBackoff = 30 * time.Second

// CalculateBackoff returns exponential backoff with jitter. The base
// delay is doubled each attempt, with random jitter of up to 25% in
// either direction.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap the shift to avoid overflow.
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff {
		backoff = maxBackoff
	}
	// A zero base delay means retry immediately; sub-nanosecond jitter
	// ranges would also make Int64N panic.
	half := int64(backoff) / 2
	if half <= 0 {
		return backoff
	}
	jitter := time.Duration(rand.Int64N(half)) - backoff/4
	return backoff + jitter
}

// Retry runs op up to maxRetries+1 times, sleeping a jittered
// exponential backoff before each retry. It stops early if ctx is
// cancelled and returns the last error wrapped with the attempt count.
func Retry(ctx context.Context, maxRetries int, baseDelay time.Duration, op func() error) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(CalculateBackoff(baseDelay, attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if lastErr = op(); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("after %d attempts: %w", maxRetries+1, lastErr)
}
