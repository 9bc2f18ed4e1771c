// ABOUTME: Tests for retry and backoff helpers
// ABOUTME: Verifies attempt counts, jitter bounds, and context cancellation

package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	tests := []struct {
		name    string
		attempt int
		center  time.Duration
	}{
		{"first retry", 1, 200 * time.Millisecond},
		{"second retry", 2, 400 * time.Millisecond},
		{"third retry", 3, 800 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Jitter is up to 25% in either direction.
			lo := tt.center - tt.center/4
			hi := tt.center + tt.center/4
			for range 50 {
				got := CalculateBackoff(base, tt.attempt)
				if got < lo || got > hi {
					t.Fatalf("CalculateBackoff(%v, %d) = %v, want within [%v, %v]", base, tt.attempt, got, lo, hi)
				}
			}
		})
	}
}

func TestCalculateBackoff_ZeroAttempt(t *testing.T) {
	if got := CalculateBackoff(time.Second, 0); got != 0 {
		t.Errorf("CalculateBackoff(_, 0) = %v, want 0", got)
	}
}

func TestCalculateBackoff_ZeroBaseDelay(t *testing.T) {
	for _, attempt := range []int{1, 2, 5} {
		if got := CalculateBackoff(0, attempt); got != 0 {
			t.Errorf("CalculateBackoff(0, %d) = %v, want 0", attempt, got)
		}
	}
}

func TestCalculateBackoff_TinyBaseDelay(t *testing.T) {
	// A backoff too small to jitter is returned as-is.
	if got := CalculateBackoff(time.Nanosecond, 0); got != 0 {
		t.Errorf("CalculateBackoff(1ns, 0) = %v, want 0", got)
	}
	for _, attempt := range []int{1, 2} {
		got := CalculateBackoff(time.Nanosecond, attempt)
		if got < 0 || got > 4*time.Nanosecond {
			t.Errorf("CalculateBackoff(1ns, %d) = %v, out of range", attempt, got)
		}
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	for _, attempt := range []int{10, 30, 100} {
		got := CalculateBackoff(time.Second, attempt)
		if got > maxBackoff+maxBackoff/4 {
			t.Errorf("CalculateBackoff(1s, %d) = %v, exceeds cap plus jitter", attempt, got)
		}
	}
}

func TestRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
}

func TestRetry_ZeroBaseDelayRetriesImmediately(t *testing.T) {
	// A zero base delay must retry a failing op without panicking.
	wantErr := errors.New("always fails")
	calls := 0
	err := Retry(context.Background(), 2, 0, func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Retry() error = %v, want wrapped %v", err, wantErr)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	wantErr := errors.New("persistent")
	calls := 0
	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Retry() error = %v, want wrapped %v", err, wantErr)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want maxRetries+1 = 3", calls)
	}
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Retry() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("op called %d times after cancellation, want 1", calls)
	}
}
