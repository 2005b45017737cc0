// ABOUTME: Tests for backoff calculation
// ABOUTME: Verifies exponential growth, jitter bounds, and the 30s cap

package util

import (
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroForFirstAttempt(t *testing.T) {
	if got := CalculateBackoff(time.Second, 0); got != 0 {
		t.Errorf("CalculateBackoff(1s, 0) = %v, want 0", got)
	}
	if got := CalculateBackoff(time.Second, -1); got != 0 {
		t.Errorf("CalculateBackoff(1s, -1) = %v, want 0", got)
	}
}

func TestCalculateBackoff_GrowsWithinJitterBounds(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 1; attempt <= 4; attempt++ {
		expected := base * time.Duration(1<<uint(attempt))
		lo := expected - expected/4
		hi := expected + expected/4

		for i := 0; i < 20; i++ {
			got := CalculateBackoff(base, attempt)
			if got < lo || got > hi {
				t.Errorf("attempt %d: backoff %v outside [%v, %v]", attempt, got, lo, hi)
			}
		}
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	// Large attempt numbers must not overflow and must respect the 30s cap
	// plus at most 25% jitter.
	for _, attempt := range []int{10, 30, 100} {
		got := CalculateBackoff(2*time.Second, attempt)
		if got > 30*time.Second+30*time.Second/4 {
			t.Errorf("attempt %d: backoff %v exceeds capped range", attempt, got)
		}
		if got <= 0 {
			t.Errorf("attempt %d: backoff %v should be positive", attempt, got)
		}
	}
}
